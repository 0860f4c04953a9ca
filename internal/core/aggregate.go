package core

import (
	"fmt"
	"math"
	"sort"

	"github.com/samber/lo"
)

// Aggregate computes summary totals and groupings for an analysis.
//
// TotalSaving is the plain sum of suggestion savings. A record matched by
// several rules contributes once per rule, so the total can double count.
// Groups hold every key present and are sorted by key.
func Aggregate(records []Record, suggestions []Suggestion) Analysis {
	if suggestions == nil {
		suggestions = make([]Suggestion, 0)
	}

	totalCost := lo.SumBy(records, func(r Record) float64 { return r.Cost })
	totalSaving := lo.SumBy(suggestions, func(s Suggestion) float64 { return s.EstimatedSaving })

	return Analysis{
		Summary: Summary{
			TotalCost:   totalCost,
			TotalSaving: totalSaving,
			SavingRate:  savingRate(totalSaving, totalCost),
		},
		ByCloud: CloudBreakdown{
			Cost:   costByCloud(records),
			Saving: savingByCloud(suggestions),
		},
		ByCategory: CategoryBreakdown{
			Saving: savingByCategory(suggestions),
		},
		Suggestions: suggestions,
	}
}

// savingRate returns saving as a percentage of cost, or 0 when cost is 0.
func savingRate(saving, cost float64) float64 {
	if cost == 0 {
		return 0
	}
	return saving / cost * 100
}

func sortedKeys[K ~string, V any](m map[K]V) []K {
	keys := lo.Keys(m)
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func costByCloud(records []Record) []CloudCost {
	groups := lo.GroupBy(records, func(r Record) string { return r.Cloud })
	out := make([]CloudCost, 0, len(groups))
	for _, cloud := range sortedKeys(groups) {
		out = append(out, CloudCost{
			Cloud: cloud,
			Cost:  lo.SumBy(groups[cloud], func(r Record) float64 { return r.Cost }),
		})
	}
	return out
}

func savingByCloud(suggestions []Suggestion) []CloudSaving {
	groups := lo.GroupBy(suggestions, func(s Suggestion) string { return s.Cloud })
	out := make([]CloudSaving, 0, len(groups))
	for _, cloud := range sortedKeys(groups) {
		out = append(out, CloudSaving{
			Cloud:           cloud,
			EstimatedSaving: lo.SumBy(groups[cloud], func(s Suggestion) float64 { return s.EstimatedSaving }),
		})
	}
	return out
}

func savingByCategory(suggestions []Suggestion) []CategorySaving {
	groups := lo.GroupBy(suggestions, func(s Suggestion) Category { return s.Category })
	out := make([]CategorySaving, 0, len(groups))
	for _, category := range sortedKeys(groups) {
		out = append(out, CategorySaving{
			Category:        category,
			EstimatedSaving: lo.SumBy(groups[category], func(s Suggestion) float64 { return s.EstimatedSaving }),
		})
	}
	return out
}

// Analyze runs the full pipeline: normalize uploads, evaluate the default
// rules and aggregate the results.
func Analyze(files []File) (*Analysis, error) {
	records, err := Normalize(files)
	if err != nil {
		return nil, err
	}

	suggestions := Evaluate(records, DefaultRules...)
	analysis := Aggregate(records, suggestions)
	if err := checkFinite(analysis.Summary); err != nil {
		return nil, err
	}
	return &analysis, nil
}

// checkFinite rejects totals that overflowed float64. Cells are finite but
// their sum may not be. Costs are non-negative, so every group sum is
// bounded by the totals.
func checkFinite(s Summary) error {
	if math.IsInf(s.TotalCost, 0) || math.IsNaN(s.TotalCost) ||
		math.IsInf(s.TotalSaving, 0) || math.IsNaN(s.TotalSaving) {
		return fmt.Errorf("%w: cost totals exceed the representable range", ErrNoValidData)
	}
	return nil
}
