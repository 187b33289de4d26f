package engine

import (
	"github.com/louisbranch/krishicash/internal/services/game/domain/catalog"
	"github.com/louisbranch/krishicash/internal/services/game/domain/state"
	"github.com/louisbranch/krishicash/internal/services/game/domain/stability"
)

// TotalExpenses is the monthly expense debit for multiplier, rounded once on
// the total.
func TotalExpenses(multiplier float64) int64 {
	return catalog.RoundHalfUp(float64(catalog.BaseExpenses().Total()) * multiplier)
}

// ExpenseBreakdown returns the per-category expenses for display.
func ExpenseBreakdown(multiplier float64) catalog.FixedExpenses {
	return catalog.BaseExpenses().Scaled(multiplier)
}

// InitialState returns the snapshot a new game starts from.
func InitialState() state.GameState {
	return state.Initial()
}

// settle recomputes the derived score.
func settle(s state.GameState) state.GameState {
	s.StabilityScore = stability.Score(s)
	return s
}
