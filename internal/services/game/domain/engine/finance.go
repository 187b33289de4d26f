package engine

import (
	"github.com/louisbranch/krishicash/internal/services/game/domain/catalog"
	"github.com/louisbranch/krishicash/internal/services/game/domain/command"
	"github.com/louisbranch/krishicash/internal/services/game/domain/state"
)

// SaveMoney moves amount from balance to savings and extends the streak.
func SaveMoney(s state.GameState, amount int64) command.Decision {
	if r, ok := checkSaveMoney(s, amount); !ok {
		return command.Reject(s, r)
	}
	next := s.Clone()
	next.Balance -= amount
	next.Savings += amount
	next.ConsecutiveSavingMonths++
	next.TotalSavedThisStreak += amount
	return command.Accept(settle(next))
}

// BuyInsurance pays amount as the first premium and activates cover at that
// premium.
func BuyInsurance(s state.GameState, amount int64) command.Decision {
	if r, ok := checkBuyInsurance(s, amount); !ok {
		return command.Reject(s, r)
	}
	next := s.Clone()
	next.Balance -= amount
	next.HasInsurance = true
	next.InsuranceAmount = amount
	return command.Accept(settle(next))
}

// UpdateInsurance changes the premium charged from the next rollover.
func UpdateInsurance(s state.GameState, amount int64) command.Decision {
	if r, ok := checkUpdateInsurance(s, amount); !ok {
		return command.Reject(s, r)
	}
	next := s.Clone()
	next.InsuranceAmount = amount
	return command.Accept(settle(next))
}

// StopInsurance cancels cover in any phase before the game ends. The intro
// score is a placeholder and is left alone.
func StopInsurance(s state.GameState) command.Decision {
	if r, ok := command.CheckPhase(command.TypeStopInsurance, s.Phase); !ok {
		return command.Reject(s, r)
	}
	next := s.Clone()
	next.HasInsurance = false
	next.InsuranceAmount = 0
	if next.Phase == state.PhaseIntro {
		return command.Accept(next)
	}
	return command.Accept(settle(next))
}

// TakeLoan credits amount and opens a loan with a full grace period.
func TakeLoan(s state.GameState, amount int64, rules Rules) command.Decision {
	if r, ok := checkTakeLoan(s, amount); !ok {
		return command.Reject(s, r)
	}
	next := s.Clone()
	next.Balance += amount
	next.Debt = amount
	next.LoanMonthsRemaining = rules.LoanGraceMonths
	return command.Accept(settle(next))
}

// RepayLoan pays up to amount of the debt. The balance must cover amount even
// when the debt is smaller; only the debt is charged.
func RepayLoan(s state.GameState, amount int64) command.Decision {
	if r, ok := checkRepayLoan(s, amount); !ok {
		return command.Reject(s, r)
	}
	paid := min(amount, s.Debt)
	next := s.Clone()
	next.Balance -= paid
	next.Debt -= paid
	if next.Debt <= 0 {
		next.Debt = 0
		next.LoanMonthsRemaining = 0
	}
	return command.Accept(settle(next))
}

// WithdrawSavings moves amount back to the balance. Withdrawing breaks the
// saving streak.
func WithdrawSavings(s state.GameState, amount int64) command.Decision {
	if r, ok := checkWithdraw(s, amount); !ok {
		return command.Reject(s, r)
	}
	next := s.Clone()
	next.Savings -= amount
	next.Balance += amount
	next.ConsecutiveSavingMonths = 0
	next.TotalSavedThisStreak = 0
	return command.Accept(settle(next))
}

// PurchaseGoal pays the goal's cost from savings and re-values the goal with
// the appreciation rate.
func PurchaseGoal(s state.GameState, rules Rules) command.Decision {
	if r, ok := checkPurchaseGoal(s); !ok {
		return command.Reject(s, r)
	}
	next := s.Clone()
	price := next.SelectedGoal.Cost
	next.Savings -= price
	next.GoalAchieved = true
	next.SelectedGoal.Cost = catalog.RoundHalfUp(float64(price) * (1 + rules.GoalAppreciation))
	return command.Accept(settle(next))
}
