package core

// normalize.go maps heterogeneous vendor exports onto the Record shape.
//
// Column presence is checked once per table when the column plan is built.
// After that every row is converted with the same plan, so downstream code
// (the rule engine and the aggregator) never has to ask whether a column
// exists. Absent columns get fixed defaults; absent cpu_avg stays nil.

import (
	"fmt"
	"strings"
)

// serviceAliases are searched in order when a table has no service column.
var serviceAliases = []string{
	"lineItem/ProductCode",
	"product/ProductName",
	"ProductName",
	"ServiceName",
	"MeterCategory",
	"ConsumedService",
	"Service description",
	"service_description",
}

// costCandidates are searched in order when a table has no cost column.
var costCandidates = []string{
	"lineItem/UnblendedCost",
	"UnblendedCost",
	"lineItem/BlendedCost",
	"BlendedCost",
	"CostInBillingCurrency",
	"PreTaxCost",
	"Cost (USD)",
	"cost_usd",
	"amount",
}

// resourceIDAliases are searched in order when a table has no resource_id column.
var resourceIDAliases = []string{
	"lineItem/ResourceId",
	"ResourceId",
	"InstanceId",
}

// categoryKeywords is checked top to bottom; the first category with a
// keyword contained in the lowercased service name wins.
var categoryKeywords = []struct {
	category Category
	keywords []string
}{
	{CategoryCompute, []string{
		"ec2", "compute", "virtual machine", "vm", "instance", "lambda", "function",
		"container", "kubernetes", "eks", "aks", "gke", "fargate",
	}},
	{CategoryStorage, []string{
		"s3", "storage", "blob", "bucket", "ebs", "disk", "glacier", "archive", "gcs", "file",
	}},
	{CategoryDB, []string{
		"rds", "database", "db", "sql", "dynamo", "aurora", "cosmos", "spanner",
		"bigtable", "redis", "cache",
	}},
}

// InferCloud derives the cloud provider from an upload's file name.
// Matching is case-insensitive and checked in the order aws, azure, gcp/google.
func InferCloud(filename string) string {
	name := strings.ToLower(filename)
	switch {
	case strings.Contains(name, "aws"):
		return CloudAWS
	case strings.Contains(name, "azure"):
		return CloudAzure
	case strings.Contains(name, "gcp"), strings.Contains(name, "google"):
		return CloudGoogle
	default:
		return CloudUnknown
	}
}

// canonicalCloud maps common spellings of an explicit cloud cell onto the
// canonical provider names. Unrecognized values are kept as written.
func canonicalCloud(value string) string {
	switch strings.ToLower(value) {
	case "aws", "amazon", "amazon web services":
		return CloudAWS
	case "azure", "microsoft azure":
		return CloudAzure
	case "gcp", "google", "google cloud", "googlecloud", "google cloud platform":
		return CloudGoogle
	case "unknown":
		return CloudUnknown
	}
	return value
}

// InferCategory derives a service category from free-text service names.
func InferCategory(service string) Category {
	s := strings.ToLower(service)
	for _, group := range categoryKeywords {
		for _, kw := range group.keywords {
			if strings.Contains(s, kw) {
				return group.category
			}
		}
	}
	return CategoryOther
}

// columnPlan records, once per table, where each semantic column lives.
// A position of -1 means the column is absent.
type columnPlan struct {
	cloud        int
	category     int
	service      int
	resourceID   int
	cost         int
	cpuAvg       int
	days         int
	idleDays     int
	storageClass int
	discountType int
}

func position(idx HeaderIndex, names ...string) int {
	if pos, ok := idx.Lookup(names...); ok {
		return pos
	}
	return -1
}

// planColumns resolves every semantic column of t.
// Returns a *ColumnError when no cost column can be found.
func planColumns(t *Table) (columnPlan, error) {
	p := columnPlan{
		cloud:        position(t.Index, "cloud"),
		category:     position(t.Index, "category"),
		service:      position(t.Index, append([]string{"service"}, serviceAliases...)...),
		resourceID:   position(t.Index, append([]string{"resource_id"}, resourceIDAliases...)...),
		cost:         position(t.Index, append([]string{"cost"}, costCandidates...)...),
		cpuAvg:       position(t.Index, "cpu_avg"),
		days:         position(t.Index, "days"),
		idleDays:     position(t.Index, "storage_idle_days"),
		storageClass: position(t.Index, "storage_class"),
		discountType: position(t.Index, "discount_type"),
	}

	if p.cost < 0 {
		return p, &ColumnError{
			File:       t.Source,
			Column:     "cost",
			Candidates: append([]string{"cost"}, costCandidates...),
		}
	}
	return p, nil
}

// columns reports which optional analysis columns the plan resolved.
func (p columnPlan) columns() ColumnSet {
	var set ColumnSet
	for _, c := range []struct {
		pos int
		col Column
	}{
		{p.cpuAvg, ColumnCPUAvg},
		{p.days, ColumnDays},
		{p.idleDays, ColumnStorageIdleDays},
		{p.storageClass, ColumnStorageClass},
		{p.discountType, ColumnDiscountType},
	} {
		if c.pos >= 0 {
			set |= ColumnSet(c.col)
		}
	}
	return set
}

func cellAt(row []string, pos int) string {
	if pos < 0 || pos >= len(row) {
		return ""
	}
	return CleanCell(row[pos])
}

// record converts one row using the plan. Every field except CPUAvg is
// populated; CPUAvg is set only when the table has a cpu_avg column.
// Days defaults to 7 so the downsize rule applies to exports that only
// carry a CPU average.
func (p columnPlan) record(row []string, source string) Record {
	rec := Record{
		Cloud:           canonicalCloud(cellAt(row, p.cloud)),
		Service:         cellAt(row, p.service),
		ResourceID:      cellAt(row, p.resourceID),
		Cost:            ToFloat(cellAt(row, p.cost)),
		Days:            DefaultDays,
		StorageIdleDays: DefaultStorageIdleDays,
		StorageClass:    cellAt(row, p.storageClass),
		DiscountType:    cellAt(row, p.discountType),
		Source:          source,
		Columns:         p.columns(),
	}

	if rec.Cloud == "" {
		rec.Cloud = InferCloud(source)
	}
	if rec.Service == "" {
		rec.Service = UnknownService
	}
	if category := strings.ToUpper(cellAt(row, p.category)); category != "" {
		rec.Category = Category(category)
	} else {
		rec.Category = InferCategory(rec.Service)
	}
	if rec.Cost < 0 {
		rec.Cost = 0
	}
	if p.cpuAvg >= 0 {
		cpu := ToFloat(cellAt(row, p.cpuAvg))
		rec.CPUAvg = &cpu
	}
	if p.days >= 0 {
		rec.Days = ToInt(cellAt(row, p.days))
	}
	if p.idleDays >= 0 {
		rec.StorageIdleDays = ToInt(cellAt(row, p.idleDays))
	}
	if rec.StorageClass == "" {
		rec.StorageClass = DefaultStorageClass
	}
	if rec.DiscountType == "" {
		rec.DiscountType = DefaultDiscountType
	}

	return rec
}

// NormalizeTable converts every row of t into a Record.
func NormalizeTable(t *Table) ([]Record, error) {
	plan, err := planColumns(t)
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(t.Rows))
	for _, row := range t.Rows {
		records = append(records, plan.record(row, t.Source))
	}
	return records, nil
}

// Normalize reads, normalizes and concatenates uploads in order.
// Defaults are applied per table before concatenation, so records from a
// table without cpu_avg keep a nil CPUAvg even when another table has one.
func Normalize(files []File) ([]Record, error) {
	if len(files) == 0 {
		return nil, ErrNoFiles
	}

	var all []Record
	for _, f := range files {
		table, err := ReadTable(f)
		if err != nil {
			return nil, err
		}
		records, err := NormalizeTable(table)
		if err != nil {
			return nil, fmt.Errorf("normalize %s: %w", f.Name, err)
		}
		all = append(all, records...)
	}

	if len(all) == 0 {
		return nil, fmt.Errorf("%w: %d file(s) contained no billing rows", ErrNoValidData, len(files))
	}
	return all, nil
}
