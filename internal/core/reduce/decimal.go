package reduce

import "github.com/shopspring/decimal"

// Ratio divides num by den. A zero denominator yields zero, never an error:
// an empty bucket reads as 0 rather than "no data".
func Ratio(num, den decimal.Decimal) decimal.Decimal {
	if den.IsZero() {
		return decimal.Zero
	}
	return num.Div(den)
}

// CountRatio is Ratio over integer counters.
func CountRatio(num, den int64) decimal.Decimal {
	if den == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(num).Div(decimal.NewFromInt(den))
}

// IntMeasure lifts an integer field accessor into a decimal measure.
func IntMeasure[R any](field func(R) int64) func(R) decimal.Decimal {
	return func(r R) decimal.Decimal {
		return decimal.NewFromInt(field(r))
	}
}
