package engine

import (
	"testing"

	"github.com/louisbranch/krishicash/internal/services/game/domain/catalog"
	"github.com/louisbranch/krishicash/internal/services/game/domain/command"
	"github.com/louisbranch/krishicash/internal/services/game/domain/state"
)

// Deck indexes used by tests.
const (
	deckMedical1   = 0
	deckCropLoss1  = 3
	deckGoodRain   = 12
	deckLoanOffer1 = 15
)

func mustAccept(t *testing.T, d command.Decision) state.GameState {
	t.Helper()
	if r, rejected := d.FirstRejection(); rejected {
		t.Fatalf("unexpected rejection: %s", r.Error())
	}
	return d.State
}

func mustReject(t *testing.T, d command.Decision, code string) {
	t.Helper()
	r, rejected := d.FirstRejection()
	if !rejected {
		t.Fatalf("expected rejection %s, got accepted", code)
	}
	if r.Code != code {
		t.Fatalf("rejection code = %s, want %s", r.Code, code)
	}
}

// playingState returns a medium game with goal selected, ready for a
// rollover.
func playingState(t *testing.T, goal catalog.GoalID) state.GameState {
	t.Helper()
	g, ok := catalog.LookupGoal(goal)
	if !ok {
		t.Fatalf("unknown goal %s", goal)
	}
	s := mustAccept(t, StartGame(InitialState(), catalog.DifficultyMedium))
	return mustAccept(t, SelectGoal(s, g))
}

// decisionState is playingState with balance, savings and phase set for a
// financial action.
func decisionState(t *testing.T, balance, savings int64) state.GameState {
	t.Helper()
	s := playingState(t, catalog.GoalMotorbike)
	s.Balance = balance
	s.Savings = savings
	s.Phase = state.PhaseDecision
	return settle(s)
}

func hasAdvisory(d command.Decision, kind command.AdvisoryKind) bool {
	for _, a := range d.Advisories {
		if a.Kind == kind {
			return true
		}
	}
	return false
}
