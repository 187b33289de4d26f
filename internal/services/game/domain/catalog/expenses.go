package catalog

import "math"

// FixedExpenses is the monthly household budget before the difficulty
// multiplier is applied.
type FixedExpenses struct {
	Household int64
	Farming   int64
	Education int64
}

var baseExpenses = FixedExpenses{
	Household: 35000,
	Farming:   30000,
	Education: 15000,
}

// BaseExpenses returns the unscaled monthly expenses.
func BaseExpenses() FixedExpenses {
	return baseExpenses
}

// Total sums every category.
func (e FixedExpenses) Total() int64 {
	return e.Household + e.Farming + e.Education
}

// Scaled applies multiplier to each category, rounding each one. The sum of
// the scaled categories can differ by a rupee from scaling the total.
func (e FixedExpenses) Scaled(multiplier float64) FixedExpenses {
	return FixedExpenses{
		Household: RoundHalfUp(float64(e.Household) * multiplier),
		Farming:   RoundHalfUp(float64(e.Farming) * multiplier),
		Education: RoundHalfUp(float64(e.Education) * multiplier),
	}
}

// RoundHalfUp rounds to the nearest integer with halves going up, so -2.5
// becomes -2 and 2.5 becomes 3.
func RoundHalfUp(v float64) int64 {
	return int64(math.Floor(v + 0.5))
}
