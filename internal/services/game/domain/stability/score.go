// Package stability computes the 0-100 financial stability score.
package stability

import (
	"math"

	"github.com/louisbranch/krishicash/internal/services/game/domain/catalog"
	"github.com/louisbranch/krishicash/internal/services/game/domain/state"
)

const (
	MinScore = 0
	MaxScore = 100
)

// Breakdown holds the five weighted components before clamping.
type Breakdown struct {
	Balance     float64
	Savings     float64
	Debt        float64
	Insurance   float64
	Flexibility float64
}

// Total sums the components.
func (b Breakdown) Total() float64 {
	return b.Balance + b.Savings + b.Debt + b.Insurance + b.Flexibility
}

// Score returns the stability score for s against the unscaled expense base.
func Score(s state.GameState) int {
	return ScoreWithExpenses(s, catalog.BaseExpenses().Total())
}

// ScoreWithExpenses scores s against an explicit monthly expense figure.
func ScoreWithExpenses(s state.GameState, monthlyExpenses int64) int {
	total := Compute(s, monthlyExpenses).Total()
	total = clamp(total, MinScore, MaxScore)
	return int(catalog.RoundHalfUp(total))
}

// Compute returns the component scores. A zero expense base or income is
// treated as one rupee so ratios stay finite.
func Compute(s state.GameState, monthlyExpenses int64) Breakdown {
	expenses := float64(max(monthlyExpenses, 1))
	income := float64(max(s.MonthlyIncome, 1))

	balanceRatio := float64(s.Balance) / expenses
	savingsMonths := float64(s.Savings) / expenses
	debtRatio := float64(s.Debt) / income
	flexRatio := float64(s.NetWorth()) / expenses

	b := Breakdown{
		Balance:     clamp(balanceRatio*12.5+12.5, 0, 25),
		Savings:     math.Min(30, savingsMonths*10),
		Debt:        math.Max(0, 25-debtRatio*15),
		Flexibility: clamp(flexRatio*5+5, 0, 10),
	}
	if s.HasInsurance {
		b.Insurance = 10
	}
	return b
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
