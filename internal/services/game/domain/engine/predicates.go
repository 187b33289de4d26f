package engine

import (
	"fmt"

	"github.com/louisbranch/krishicash/internal/services/game/domain/command"
	"github.com/louisbranch/krishicash/internal/services/game/domain/state"
)

// The Can* predicates answer exactly what the matching action checks, so a
// presentation layer can disable an input without duplicating rules.

// CanSaveMoney reports whether SaveMoney(s, amount) would be accepted.
func CanSaveMoney(s state.GameState, amount int64) bool {
	_, ok := checkSaveMoney(s, amount)
	return ok
}

// CanBuyInsurance reports whether BuyInsurance(s, amount) would be accepted.
func CanBuyInsurance(s state.GameState, amount int64) bool {
	_, ok := checkBuyInsurance(s, amount)
	return ok
}

// CanUpdateInsurance reports whether UpdateInsurance(s, amount) would be
// accepted.
func CanUpdateInsurance(s state.GameState, amount int64) bool {
	_, ok := checkUpdateInsurance(s, amount)
	return ok
}

// CanTakeLoan reports whether TakeLoan would accept amount.
func CanTakeLoan(s state.GameState, amount int64) bool {
	_, ok := checkTakeLoan(s, amount)
	return ok
}

// CanRepayLoan reports whether RepayLoan(s, amount) would be accepted.
func CanRepayLoan(s state.GameState, amount int64) bool {
	_, ok := checkRepayLoan(s, amount)
	return ok
}

// CanWithdraw reports whether WithdrawSavings(s, amount) would be accepted.
func CanWithdraw(s state.GameState, amount int64) bool {
	_, ok := checkWithdraw(s, amount)
	return ok
}

// CanPurchaseGoal reports whether PurchaseGoal would be accepted.
func CanPurchaseGoal(s state.GameState) bool {
	_, ok := checkPurchaseGoal(s)
	return ok
}

func checkSaveMoney(s state.GameState, amount int64) (command.Rejection, bool) {
	if r, ok := command.CheckPhase(command.TypeSaveMoney, s.Phase); !ok {
		return r, false
	}
	if r, ok := checkPositive(amount); !ok {
		return r, false
	}
	return checkBalance(s, amount)
}

func checkBuyInsurance(s state.GameState, amount int64) (command.Rejection, bool) {
	if r, ok := command.CheckPhase(command.TypeBuyInsurance, s.Phase); !ok {
		return r, false
	}
	if r, ok := checkPositive(amount); !ok {
		return r, false
	}
	return checkBalance(s, amount)
}

func checkUpdateInsurance(s state.GameState, amount int64) (command.Rejection, bool) {
	if r, ok := command.CheckPhase(command.TypeUpdateInsurance, s.Phase); !ok {
		return r, false
	}
	if !s.HasInsurance {
		return command.Rejection{Code: command.RejectionCodeInsuranceInactive, Message: "no active insurance to update"}, false
	}
	return checkPositive(amount)
}

func checkTakeLoan(s state.GameState, amount int64) (command.Rejection, bool) {
	if r, ok := command.CheckPhase(command.TypeTakeLoan, s.Phase); !ok {
		return r, false
	}
	if r, ok := checkPositive(amount); !ok {
		return r, false
	}
	if s.Debt > 0 {
		return command.Rejection{
			Code:    command.RejectionCodeLoanActive,
			Message: fmt.Sprintf("loan of %d is still outstanding", s.Debt),
		}, false
	}
	return command.Rejection{}, true
}

func checkRepayLoan(s state.GameState, amount int64) (command.Rejection, bool) {
	if r, ok := command.CheckPhase(command.TypeRepayLoan, s.Phase); !ok {
		return r, false
	}
	if r, ok := checkPositive(amount); !ok {
		return r, false
	}
	if s.Debt <= 0 {
		return command.Rejection{Code: command.RejectionCodeNoActiveLoan, Message: "no loan to repay"}, false
	}
	return checkBalance(s, amount)
}

func checkWithdraw(s state.GameState, amount int64) (command.Rejection, bool) {
	if r, ok := command.CheckPhase(command.TypeWithdrawSavings, s.Phase); !ok {
		return r, false
	}
	if r, ok := checkPositive(amount); !ok {
		return r, false
	}
	if s.Savings < amount {
		return command.Rejection{
			Code:    command.RejectionCodeInsufficientSavings,
			Message: fmt.Sprintf("savings %d below %d", s.Savings, amount),
		}, false
	}
	return command.Rejection{}, true
}

func checkPurchaseGoal(s state.GameState) (command.Rejection, bool) {
	if r, ok := command.CheckPhase(command.TypePurchaseGoal, s.Phase); !ok {
		return r, false
	}
	switch {
	case s.PropertyConfiscated:
		return command.Rejection{Code: command.RejectionCodePropertyConfiscated, Message: "property was confiscated"}, false
	case s.SelectedGoal == nil:
		return command.Rejection{Code: command.RejectionCodeGoalNotSelected, Message: "no goal selected"}, false
	case s.GoalAchieved:
		return command.Rejection{Code: command.RejectionCodeGoalAlreadyPurchased, Message: "goal already purchased"}, false
	case s.Savings < s.SelectedGoal.Cost:
		return command.Rejection{
			Code:    command.RejectionCodeInsufficientSavings,
			Message: fmt.Sprintf("savings %d below goal cost %d", s.Savings, s.SelectedGoal.Cost),
		}, false
	}
	return command.Rejection{}, true
}

func checkPositive(amount int64) (command.Rejection, bool) {
	if amount <= 0 {
		return command.Rejection{
			Code:    command.RejectionCodeAmountInvalid,
			Message: fmt.Sprintf("amount %d must be positive", amount),
		}, false
	}
	return command.Rejection{}, true
}

func checkBalance(s state.GameState, amount int64) (command.Rejection, bool) {
	if s.Balance < amount {
		return command.Rejection{
			Code:    command.RejectionCodeInsufficientBalance,
			Message: fmt.Sprintf("balance %d below %d", s.Balance, amount),
		}, false
	}
	return command.Rejection{}, true
}
