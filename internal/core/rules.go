package core

// rules.go implements the savings heuristics.
//
// Each Rule is a declarative filter-and-score pass over the full record set.
// Rules are independent: a record can match several of them and then gets
// one suggestion per matching rule. Rule output order follows record order.
//
// A rule is skipped for records whose source table lacked the columns it
// inspects, so a defaulted discount_type never triggers reserved pricing.

import (
	"strings"

	"github.com/samber/lo"
)

// Rule is a single savings heuristic.
type Rule struct {
	Name     string                 // Stable identifier for logs and tests
	Action   string                 // Fixed action label shown to users
	Reason   string                 // Fixed human-readable explanation
	Factor   float64                // Share of current cost that can be saved
	Match    func(Record) bool      // Selects the records the rule applies to
	Priority func(float64) Priority // Labels a suggestion by its saving
}

// Apply evaluates the rule over records and returns one suggestion per match.
func (r Rule) Apply(records []Record) []Suggestion {
	matched := lo.Filter(records, func(rec Record, _ int) bool {
		return r.Match(rec)
	})
	return lo.Map(matched, func(rec Record, _ int) Suggestion {
		saving := rec.Cost * r.Factor
		return Suggestion{
			Cloud:           rec.Cloud,
			Category:        rec.Category,
			Service:         rec.Service,
			ResourceID:      rec.ResourceID,
			Action:          r.Action,
			Reason:          r.Reason,
			CurrentCost:     rec.Cost,
			EstimatedSaving: saving,
			Source:          rec.Source,
			Priority:        r.Priority(saving),
		}
	})
}

// highAtLeast returns a priority function that labels savings at or above
// threshold HIGH and everything below MEDIUM.
func highAtLeast(threshold float64) func(float64) Priority {
	return func(saving float64) Priority {
		if saving >= threshold {
			return PriorityHigh
		}
		return PriorityMedium
	}
}

func always(p Priority) func(float64) Priority {
	return func(float64) Priority { return p }
}

// DownsizeRule flags compute resources with very low CPU over at least a week.
var DownsizeRule = Rule{
	Name:   "downsize",
	Action: "다운사이징 추천",
	Reason: "CPU 3% 미만 장기 유지",
	Factor: 0.4,
	Match: func(r Record) bool {
		return r.Category == CategoryCompute && r.CPUAvg != nil && *r.CPUAvg < 3 && r.Days >= 7
	},
	Priority: highAtLeast(30),
}

// DeleteIdleStorageRule flags storage untouched for 30 days or more.
var DeleteIdleStorageRule = Rule{
	Name:   "delete_idle_storage",
	Action: "미사용 스토리지 삭제",
	Reason: "30일 이상 접근 기록 없음",
	Factor: 1.0,
	Match: func(r Record) bool {
		return r.Category == CategoryStorage &&
			r.Columns.Has(ColumnStorageIdleDays) &&
			r.StorageIdleDays >= 30
	},
	Priority: highAtLeast(20),
}

// ArchiveTierRule flags STANDARD-class storage idle for 90 days or more.
var ArchiveTierRule = Rule{
	Name:   "archive_tier",
	Action: "아카이브 스토리지 전환",
	Reason: "90일 이상 미사용 STANDARD 스토리지",
	Factor: 0.5,
	Match: func(r Record) bool {
		return r.Category == CategoryStorage &&
			r.Columns.Has(ColumnStorageIdleDays) &&
			strings.EqualFold(r.StorageClass, "STANDARD") &&
			r.StorageIdleDays >= 90
	},
	Priority: always(PriorityMedium),
}

// ReservedPricingRule flags sizeable on-demand spend.
var ReservedPricingRule = Rule{
	Name:   "reserved_pricing",
	Action: "약정 할인(RI/SP) 적용",
	Reason: "온디맨드 요금으로 높은 비용 발생",
	Factor: 0.3,
	Match: func(r Record) bool {
		return r.Columns.Has(ColumnDiscountType) &&
			strings.EqualFold(r.DiscountType, "ONDEMAND") &&
			r.Cost >= 50
	},
	Priority: always(PriorityHigh),
}

// DefaultRules is the fixed rule set, in output order.
var DefaultRules = []Rule{
	DownsizeRule,
	DeleteIdleStorageRule,
	ArchiveTierRule,
	ReservedPricingRule,
}

// Evaluate applies each rule to the full record set and concatenates the
// results in rule order. The returned slice is never nil.
func Evaluate(records []Record, rules ...Rule) []Suggestion {
	suggestions := make([]Suggestion, 0)
	for _, r := range rules {
		suggestions = append(suggestions, r.Apply(records)...)
	}
	return suggestions
}
