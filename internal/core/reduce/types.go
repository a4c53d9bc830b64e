package reduce

import "github.com/shopspring/decimal"

// CountSummary is the implicit per-bucket count used when records are grouped
// without any reduction.
type CountSummary struct {
	Count int64 `json:"count"`
}

// Value returns the bucket size.
func (s CountSummary) Value() decimal.Decimal { return decimal.NewFromInt(s.Count) }

// Equal compares two summaries.
func (s CountSummary) Equal(o CountSummary) bool { return s.Count == o.Count }

// ConditionalRatioSummary counts records matching a condition and the subset
// of those that also match a category.
type ConditionalRatioSummary struct {
	Count   int64           `json:"count"`
	Matches int64           `json:"matches"`
	Ratio   decimal.Decimal `json:"ratio"` // Matches / Count, 0 when Count == 0
}

// Value returns the derived ratio.
func (s ConditionalRatioSummary) Value() decimal.Decimal { return s.Ratio }

// Equal compares two summaries numerically.
func (s ConditionalRatioSummary) Equal(o ConditionalRatioSummary) bool {
	return s.Count == o.Count && s.Matches == o.Matches && s.Ratio.Equal(o.Ratio)
}

// AverageSummary tracks the running average of a numeric measure.
type AverageSummary struct {
	Count   int64           `json:"count"`
	Total   decimal.Decimal `json:"total"`
	Average decimal.Decimal `json:"average"` // Total / Count, 0 when Count == 0
}

// Value returns the running average.
func (s AverageSummary) Value() decimal.Decimal { return s.Average }

// Equal compares two summaries numerically.
func (s AverageSummary) Equal(o AverageSummary) bool {
	return s.Count == o.Count && s.Total.Equal(o.Total) && s.Average.Equal(o.Average)
}

// MatchRatioSummary tracks the share of a bucket equal to one target category.
type MatchRatioSummary struct {
	Total int64           `json:"total"`
	Match int64           `json:"match"`
	Ratio decimal.Decimal `json:"ratio"` // Match / Total, 0 when Total == 0
}

// Value returns the derived ratio.
func (s MatchRatioSummary) Value() decimal.Decimal { return s.Ratio }

// Equal compares two summaries numerically.
func (s MatchRatioSummary) Equal(o MatchRatioSummary) bool {
	return s.Total == o.Total && s.Match == o.Match && s.Ratio.Equal(o.Ratio)
}
