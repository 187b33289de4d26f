package engine

import (
	"fmt"

	"github.com/louisbranch/krishicash/internal/random"
	"github.com/louisbranch/krishicash/internal/services/game/domain/command"
	"github.com/louisbranch/krishicash/internal/services/game/domain/state"
)

// Decide routes cmd to its transition. src is only consulted by
// StartNewMonth.
func Decide(s state.GameState, cmd command.Command, src random.Source, rules Rules) command.Decision {
	switch c := cmd.(type) {
	case command.StartGame:
		return StartGame(s, c.Difficulty)
	case command.SelectGoal:
		return SelectGoal(s, c.Goal)
	case command.StartNewMonth:
		return StartNewMonth(s, src, rules)
	case command.HandleEvent:
		return HandleEvent(s, c.Event, rules)
	case command.SaveMoney:
		return SaveMoney(s, c.Amount)
	case command.BuyInsurance:
		return BuyInsurance(s, c.Amount)
	case command.UpdateInsurance:
		return UpdateInsurance(s, c.Amount)
	case command.StopInsurance:
		return StopInsurance(s)
	case command.TakeLoan:
		return TakeLoan(s, c.Amount, rules)
	case command.RepayLoan:
		return RepayLoan(s, c.Amount)
	case command.WithdrawSavings:
		return WithdrawSavings(s, c.Amount)
	case command.PurchaseGoal:
		return PurchaseGoal(s, rules)
	case command.EndMonth:
		return EndMonth(s, rules)
	case command.ContinueMonth:
		return ContinueToNextMonth(s)
	default:
		return command.Reject(s, command.Rejection{
			Code:    command.RejectionCodeCommandTypeUnsupported,
			Message: fmt.Sprintf("unsupported command %T", cmd),
		})
	}
}
