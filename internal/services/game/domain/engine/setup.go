package engine

import (
	"github.com/louisbranch/krishicash/internal/services/game/domain/catalog"
	"github.com/louisbranch/krishicash/internal/services/game/domain/command"
	"github.com/louisbranch/krishicash/internal/services/game/domain/state"
)

// StartGame applies a difficulty tier and moves to goal selection. An unknown
// tier falls back to catalog.DefaultDifficulty.
func StartGame(s state.GameState, level catalog.DifficultyLevel) command.Decision {
	if r, ok := command.CheckPhase(command.TypeStartGame, s.Phase); !ok {
		return command.Reject(s, r)
	}
	tier, _ := catalog.DifficultyOrDefault(level)

	next := s.Clone()
	next.MonthlyIncome = tier.MonthlyIncome
	next.Difficulty = tier.ID
	next.ExpenseMultiplier = tier.ExpenseMultiplier
	next.Phase = state.PhaseGoalSelection
	return command.Accept(settle(next))
}

// SelectGoal records the goal and starts play.
func SelectGoal(s state.GameState, goal catalog.Goal) command.Decision {
	if r, ok := command.CheckPhase(command.TypeSelectGoal, s.Phase); !ok {
		return command.Reject(s, r)
	}
	if goal.ID == "" {
		return command.Reject(s, command.Rejection{Code: command.RejectionCodeGoalRequired, Message: "goal id is required"})
	}

	next := s.Clone()
	next.SelectedGoal = &goal
	next.Phase = state.PhasePlaying
	return command.Accept(settle(next))
}

// ContinueToNextMonth leaves the summary. The next StartNewMonth does the
// rollover.
func ContinueToNextMonth(s state.GameState) command.Decision {
	if r, ok := command.CheckPhase(command.TypeContinueMonth, s.Phase); !ok {
		return command.Reject(s, r)
	}
	next := s.Clone()
	next.Phase = state.PhasePlaying
	return command.Accept(next)
}
