package reduce

import "github.com/shopspring/decimal"

// Count keeps the implicit per-bucket count. It is the reducer behind plain
// grouping, including tuple keys where every distinct tuple is its own bucket.
type Count[R any] struct{}

func (Count[R]) Initial() CountSummary { return CountSummary{} }

func (Count[R]) Add(s CountSummary, _ R) CountSummary {
	s.Count++
	return s
}

func (Count[R]) Remove(s CountSummary, _ R) CountSummary {
	s.Count--
	return s
}

// ConditionalRatio computes "share of records satisfying Condition that also
// satisfy Match", e.g. the share of women who hold the rank of professor.
// Records failing Condition leave the summary untouched.
type ConditionalRatio[R any] struct {
	Condition func(R) bool
	Match     func(R) bool
}

func (ConditionalRatio[R]) Initial() ConditionalRatioSummary {
	return ConditionalRatioSummary{Ratio: decimal.Zero}
}

func (c ConditionalRatio[R]) Add(s ConditionalRatioSummary, r R) ConditionalRatioSummary {
	if !c.Condition(r) {
		return s
	}
	s.Count++
	if c.Match(r) {
		s.Matches++
	}
	s.Ratio = CountRatio(s.Matches, s.Count)
	return s
}

func (c ConditionalRatio[R]) Remove(s ConditionalRatioSummary, r R) ConditionalRatioSummary {
	if !c.Condition(r) {
		return s
	}
	s.Count--
	if c.Match(r) {
		s.Matches--
	}
	s.Ratio = CountRatio(s.Matches, s.Count)
	return s
}

// RunningAverage keeps count, total and average of a numeric measure.
type RunningAverage[R any] struct {
	Measure func(R) decimal.Decimal
}

func (RunningAverage[R]) Initial() AverageSummary {
	return AverageSummary{Total: decimal.Zero, Average: decimal.Zero}
}

func (a RunningAverage[R]) Add(s AverageSummary, r R) AverageSummary {
	s.Count++
	s.Total = s.Total.Add(a.Measure(r))
	s.Average = Ratio(s.Total, decimal.NewFromInt(s.Count))
	return s
}

func (a RunningAverage[R]) Remove(s AverageSummary, r R) AverageSummary {
	s.Count--
	if s.Count == 0 {
		s.Total = decimal.Zero
		s.Average = decimal.Zero
		return s
	}
	s.Total = s.Total.Sub(a.Measure(r))
	s.Average = Ratio(s.Total, decimal.NewFromInt(s.Count))
	return s
}

// MatchRatio computes the share of a bucket equal to one target category.
// Several instances over the same dimension form a stacked distribution.
type MatchRatio[R any] struct {
	Match func(R) bool
}

func (MatchRatio[R]) Initial() MatchRatioSummary {
	return MatchRatioSummary{Ratio: decimal.Zero}
}

func (m MatchRatio[R]) Add(s MatchRatioSummary, r R) MatchRatioSummary {
	s.Total++
	if m.Match(r) {
		s.Match++
	}
	s.Ratio = CountRatio(s.Match, s.Total)
	return s
}

func (m MatchRatio[R]) Remove(s MatchRatioSummary, r R) MatchRatioSummary {
	s.Total--
	if m.Match(r) {
		s.Match--
	}
	s.Ratio = CountRatio(s.Match, s.Total)
	return s
}
