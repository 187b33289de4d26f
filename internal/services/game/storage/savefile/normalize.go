package savefile

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	apperrors "github.com/louisbranch/krishicash/internal/platform/errors"
	"github.com/louisbranch/krishicash/internal/services/game/domain/catalog"
	"github.com/louisbranch/krishicash/internal/services/game/domain/engine"
	"github.com/louisbranch/krishicash/internal/services/game/domain/stability"
	"github.com/louisbranch/krishicash/internal/services/game/domain/state"
)

// Option adjusts the limits a save is validated against.
type Option func(*limits)

type limits struct {
	maxMonths int
}

// WithMaxMonths accepts games up to n months long instead of the default
// rules' length. Values below one are ignored.
func WithMaxMonths(n int) Option {
	return func(l *limits) {
		if n > 0 {
			l.maxMonths = n
		}
	}
}

func newLimits(opts []Option) limits {
	l := limits{maxMonths: engine.DefaultRules().MonthsPerGame}
	for _, opt := range opts {
		if opt != nil {
			opt(&l)
		}
	}
	return l
}

// Normalize validates s and returns a repaired copy.
//
// Rejected: unknown phase or difficulty, month outside the game, negative
// money pools or counters, an event phase without an event, more history
// than months, a selected goal without an id.
//
// Repaired: missing expense multiplier, loan months left over without debt,
// a premium without cover, an event held outside the event and decision
// phases, a nil history, and the stability score.
func Normalize(s state.GameState, opts ...Option) (state.GameState, error) {
	if problems := validate(s, newLimits(opts)); len(problems) > 0 {
		return state.GameState{}, apperrors.WithMetadata(apperrors.CodeSaveCorrupt,
			"invalid save: "+strings.Join(problems, "; "),
			map[string]string{"problems": strconv.Itoa(len(problems))})
	}

	out := s.Clone()
	if out.ExpenseMultiplier <= 0 || math.IsNaN(out.ExpenseMultiplier) || math.IsInf(out.ExpenseMultiplier, 0) {
		tier, _ := catalog.DifficultyOrDefault(out.Difficulty)
		out.ExpenseMultiplier = tier.ExpenseMultiplier
	}
	if out.Debt == 0 {
		out.LoanMonthsRemaining = 0
	}
	if !out.HasInsurance {
		out.InsuranceAmount = 0
	}
	if out.Phase != state.PhaseEvent && out.Phase != state.PhaseDecision {
		out.CurrentEvent = nil
	}
	if out.MonthHistory == nil {
		out.MonthHistory = []state.MonthRecord{}
	}
	if out.Phase != state.PhaseIntro {
		out.StabilityScore = stability.Score(out)
	}
	return out, nil
}

func validate(s state.GameState, l limits) []string {
	maxMonths := l.maxMonths
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if !s.Phase.Valid() {
		add("unknown phase %q", s.Phase)
	}
	if !s.Difficulty.Valid() {
		add("unknown difficulty %q", s.Difficulty)
	}
	if s.Month < 1 || s.Month > maxMonths {
		add("month %d outside 1..%d", s.Month, maxMonths)
	}
	if s.MonthlyIncome < 0 {
		add("negative monthly income %d", s.MonthlyIncome)
	}
	if s.Savings < 0 {
		add("negative savings %d", s.Savings)
	}
	if s.Debt < 0 {
		add("negative debt %d", s.Debt)
	}
	if s.InsuranceAmount < 0 {
		add("negative insurance amount %d", s.InsuranceAmount)
	}
	if s.LoanMonthsRemaining < 0 {
		add("negative loan months %d", s.LoanMonthsRemaining)
	}
	if s.ConsecutiveSavingMonths < 0 || s.TotalSavedThisStreak < 0 {
		add("negative saving streak %d/%d", s.ConsecutiveSavingMonths, s.TotalSavedThisStreak)
	}
	if s.Phase == state.PhaseEvent && s.CurrentEvent == nil {
		add("event phase without a current event")
	}
	if len(s.MonthHistory) > maxMonths {
		add("history has %d months, max %d", len(s.MonthHistory), maxMonths)
	}
	if s.SelectedGoal != nil && (s.SelectedGoal.ID == "" || s.SelectedGoal.Cost < 0) {
		add("selected goal is malformed")
	}
	return problems
}
