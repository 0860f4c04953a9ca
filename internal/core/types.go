package core

// Cloud provider names as they appear in records and suggestions.
const (
	CloudAWS     = "AWS"
	CloudAzure   = "Azure"
	CloudGoogle  = "Google Cloud"
	CloudUnknown = "Unknown"
)

// Category is the coarse service category used by the rule engine.
type Category string

const (
	CategoryCompute Category = "COMPUTE"
	CategoryStorage Category = "STORAGE"
	CategoryDB      Category = "DB"
	CategoryOther   Category = "OTHER"
)

// Priority labels a suggestion by the size of its saving.
type Priority string

const (
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
	PriorityLow    Priority = "LOW"
)

// Defaults applied to analysis columns that are absent from an upload.
const (
	DefaultDays            = 7
	DefaultStorageIdleDays = 0
	DefaultStorageClass    = "STANDARD"
	DefaultDiscountType    = "OnDemand"
	UnknownService         = "Unknown"
)

// File is one uploaded billing export.
type File struct {
	Name string // Original file name, used for cloud inference and as the record source
	Data []byte // Raw file content (UTF-8, UTF-8 with BOM, or EUC-KR)
}

// Column identifies an optional analysis column in a source table.
type Column uint8

const (
	ColumnCPUAvg Column = 1 << iota
	ColumnDays
	ColumnStorageIdleDays
	ColumnStorageClass
	ColumnDiscountType
)

// ColumnSet is the set of optional analysis columns a table provided.
type ColumnSet uint8

// Has reports whether every column in c is in the set.
func (s ColumnSet) Has(c Column) bool {
	return s&ColumnSet(c) == ColumnSet(c)
}

// Record is one normalized billing row.
//
// Every field except CPUAvg is always populated after normalization, with
// defaults standing in for absent columns. Columns records which optional
// columns the source table actually had, so rules that need real data for
// a column can skip rows where only a default is present.
type Record struct {
	Cloud           string
	Category        Category
	Service         string
	ResourceID      string
	Cost            float64
	CPUAvg          *float64 // nil when the table has no cpu_avg column
	Days            int
	StorageIdleDays int
	StorageClass    string
	DiscountType    string
	Source          string
	Columns         ColumnSet
}

// Suggestion is a single cost-saving recommendation produced by one rule.
type Suggestion struct {
	Cloud           string   `json:"cloud"`
	Category        Category `json:"category"`
	Service         string   `json:"service"`
	ResourceID      string   `json:"resource_id"`
	Action          string   `json:"action"`
	Reason          string   `json:"reason"`
	CurrentCost     float64  `json:"current_cost"`
	EstimatedSaving float64  `json:"estimated_saving"`
	Source          string   `json:"source"`
	Priority        Priority `json:"priority"`
}

// Summary holds the headline totals of an analysis.
type Summary struct {
	TotalCost   float64 `json:"total_cost"`
	TotalSaving float64 `json:"total_saving"`
	SavingRate  float64 `json:"saving_rate"`
}

// CloudCost is total cost for one cloud.
type CloudCost struct {
	Cloud string  `json:"cloud"`
	Cost  float64 `json:"cost"`
}

// CloudSaving is total estimated saving for one cloud.
type CloudSaving struct {
	Cloud           string  `json:"cloud"`
	EstimatedSaving float64 `json:"estimated_saving"`
}

// CategorySaving is total estimated saving for one category.
type CategorySaving struct {
	Category        Category `json:"category"`
	EstimatedSaving float64  `json:"estimated_saving"`
}

// CloudBreakdown groups cost and saving by cloud.
type CloudBreakdown struct {
	Cost   []CloudCost   `json:"cost"`
	Saving []CloudSaving `json:"saving"`
}

// CategoryBreakdown groups saving by category.
type CategoryBreakdown struct {
	Saving []CategorySaving `json:"saving"`
}

// Analysis is the complete result of analyzing a set of uploads.
type Analysis struct {
	Summary     Summary           `json:"summary"`
	ByCloud     CloudBreakdown    `json:"by_cloud"`
	ByCategory  CategoryBreakdown `json:"by_category"`
	Suggestions []Suggestion      `json:"suggestions"`
}
