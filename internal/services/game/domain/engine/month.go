package engine

import (
	"fmt"

	"github.com/louisbranch/krishicash/internal/platform/currency"
	"github.com/louisbranch/krishicash/internal/random"
	"github.com/louisbranch/krishicash/internal/services/game/domain/catalog"
	"github.com/louisbranch/krishicash/internal/services/game/domain/command"
	"github.com/louisbranch/krishicash/internal/services/game/domain/state"
)

// StartNewMonth rolls the month over: streak bonus, income, expenses,
// premium, loan interest and countdown, then an event drawn from src.
//
// An unpaid loan whose countdown has run out confiscates the property and
// ends the game before anything else happens.
func StartNewMonth(s state.GameState, src random.Source, rules Rules) command.Decision {
	if r, ok := command.CheckPhase(command.TypeStartNewMonth, s.Phase); !ok {
		return command.Reject(s, r)
	}

	next := s.Clone()
	if next.Debt > 0 && next.LoanMonthsRemaining <= 0 {
		next.PropertyConfiscated = true
		next.Phase = state.PhaseEnded
		next.CurrentEvent = nil
		return command.Accept(next,
			command.Advisory{
				Kind:    command.AdvisoryPropertyConfiscated,
				Title:   "Property Confiscated!",
				Message: fmt.Sprintf("The loan of %s was not repaid in time. Your property has been seized.", currency.FormatINR(next.Debt)),
			},
			gameEndedAdvisory(next),
		)
	}

	var advisories []command.Advisory
	if StreakBonusPending(next, rules) {
		old := next.MonthlyIncome
		next.MonthlyIncome = catalog.RoundHalfUp(float64(old) * (1 + float64(rules.StreakBonusPercent)/100))
		next.ConsecutiveSavingMonths = 0
		next.TotalSavedThisStreak = 0
		advisories = append(advisories, command.Advisory{
			Kind:  command.AdvisoryIncomeBoosted,
			Title: "Income Boost!",
			Message: fmt.Sprintf("Your saving streak raised monthly income from %s to %s.",
				currency.FormatINR(old), currency.FormatINR(next.MonthlyIncome)),
		})
	}

	next.Balance += next.MonthlyIncome
	next.Balance -= TotalExpenses(next.ExpenseMultiplier)
	if next.HasInsurance && next.InsuranceAmount > 0 {
		next.Balance -= next.InsuranceAmount
	}

	if next.Debt > 0 {
		next.Debt = catalog.RoundHalfUp(float64(next.Debt) * (1 + rules.LoanInterestRate))
		next.LoanMonthsRemaining--
		if next.LoanMonthsRemaining == rules.LoanWarningMonths {
			advisories = append(advisories, command.Advisory{
				Kind:  command.AdvisoryLoanDeadlineWarning,
				Title: "Loan Warning!",
				Message: fmt.Sprintf("Only %d months left to repay your loan of %s! Your property will be confiscated if not paid.",
					next.LoanMonthsRemaining, currency.FormatINR(next.Debt)),
			})
		}
	}

	ev := catalog.EventAt(src.Intn(catalog.EventCount()))
	next.CurrentEvent = &ev
	next.Phase = state.PhaseEvent
	return command.Accept(settle(next), advisories...)
}

// HandleEvent applies ev's cost and reward. A nil ev resolves the state's
// current event. Crop losses are capped at the co-pay while insured.
func HandleEvent(s state.GameState, ev *catalog.Event, rules Rules) command.Decision {
	if r, ok := command.CheckPhase(command.TypeHandleEvent, s.Phase); !ok {
		return command.Reject(s, r)
	}
	if ev == nil {
		ev = s.CurrentEvent
	}
	if ev == nil {
		return command.Reject(s, command.Rejection{Code: command.RejectionCodeEventMissing, Message: "no event to handle"})
	}

	next := s.Clone()
	next.Balance -= EffectiveCost(next, *ev, rules)
	next.Balance += ev.Reward
	if next.CurrentEvent == nil {
		resolved := *ev
		next.CurrentEvent = &resolved
	}
	next.Phase = state.PhaseDecision
	return command.Accept(settle(next))
}

// EffectiveCost is what ev would take from the balance in state s.
func EffectiveCost(s state.GameState, ev catalog.Event, rules Rules) int64 {
	cost := max(ev.Cost, 0)
	if ev.Type == catalog.EventCropLoss && s.HasInsurance {
		cost = min(cost, rules.CropLossCopay)
	}
	return cost
}

// EndMonth records the month and advances the calendar. Completing the last
// month ends the game with the month held at MonthsPerGame.
func EndMonth(s state.GameState, rules Rules) command.Decision {
	if r, ok := command.CheckPhase(command.TypeEndMonth, s.Phase); !ok {
		return command.Reject(s, r)
	}

	next := s.Clone()
	record := state.MonthRecord{
		Month:     next.Month,
		Income:    next.MonthlyIncome,
		Expenses:  TotalExpenses(next.ExpenseMultiplier),
		Savings:   next.Savings,
		Balance:   next.Balance,
		Event:     next.CurrentEvent,
		Decisions: []string{},
	}
	next.MonthHistory = append(next.MonthHistory, record)
	next.CurrentEvent = nil

	if next.Month+1 > rules.MonthsPerGame {
		next.Month = rules.MonthsPerGame
		next.Phase = state.PhaseEnded
		return command.Accept(settle(next), gameEndedAdvisory(next))
	}
	next.Month++
	next.Phase = state.PhaseSummary
	return command.Accept(settle(next))
}

func gameEndedAdvisory(s state.GameState) command.Advisory {
	outcome := GameResult(s)
	return command.Advisory{
		Kind:    command.AdvisoryGameEnded,
		Title:   outcome.Title,
		Message: outcome.Description,
	}
}
