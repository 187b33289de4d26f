package engine

import (
	"strings"
	"testing"

	"github.com/louisbranch/krishicash/internal/services/game/domain/catalog"
	"github.com/louisbranch/krishicash/internal/services/game/domain/state"
)

func TestGameResult_Priority(t *testing.T) {
	t.Parallel()

	bike, _ := catalog.LookupGoal(catalog.GoalMotorbike)
	withGoal := func(mut func(*state.GameState)) state.GameState {
		s := state.Initial()
		g := bike
		s.SelectedGoal = &g
		mut(&s)
		return s
	}

	tests := []struct {
		name      string
		state     state.GameState
		wantTone  Tone
		wantTitle string
	}{
		{
			name: "confiscation beats everything",
			state: withGoal(func(s *state.GameState) {
				s.PropertyConfiscated = true
				s.GoalAchieved = true
				s.StabilityScore = 95
			}),
			wantTone:  ToneFailure,
			wantTitle: "Property Confiscated!",
		},
		{
			name: "purchased goal",
			state: withGoal(func(s *state.GameState) {
				s.GoalAchieved = true
				s.SelectedGoal.Cost = 330000
			}),
			wantTone:  ToneSuccess,
			wantTitle: "Congratulations! You bought a Motorbike!",
		},
		{
			name:      "affordable goal",
			state:     withGoal(func(s *state.GameState) { s.Savings = 300000 }),
			wantTone:  ToneSuccess,
			wantTitle: "Goal Achieved!",
		},
		{
			name:      "secure",
			state:     withGoal(func(s *state.GameState) { s.StabilityScore = 81 }),
			wantTone:  ToneSuccess,
			wantTitle: "Financially Secure Farmer!",
		},
		{
			name:      "eighty is only stable",
			state:     withGoal(func(s *state.GameState) { s.StabilityScore = 80 }),
			wantTone:  ToneWarning,
			wantTitle: "Stable but Needs Improvement",
		},
		{
			name:      "fifty is vulnerable",
			state:     withGoal(func(s *state.GameState) { s.StabilityScore = 50 }),
			wantTone:  ToneFailure,
			wantTitle: "Financially Vulnerable",
		},
	}
	for _, tc := range tests {
		got := GameResult(tc.state)
		if got.Tone != tc.wantTone || !strings.HasPrefix(got.Title, tc.wantTitle) {
			t.Fatalf("%s: GameResult = %s %q, want %s %q", tc.name, got.Tone, got.Title, tc.wantTone, tc.wantTitle)
		}
	}
}

func TestGameResult_Descriptions(t *testing.T) {
	t.Parallel()

	car, _ := catalog.LookupGoal(catalog.GoalCar)
	s := state.Initial()
	s.SelectedGoal = &car
	s.Savings = 200000
	s.StabilityScore = 90
	if got := GameResult(s).Description; !strings.Contains(got, "₹10,00,000 more for your Car") {
		t.Fatalf("description = %q", got)
	}

	s.GoalAchieved = true
	s.SelectedGoal.Cost = 1320000
	if got := GameResult(s).Description; !strings.Contains(got, "₹13,20,000") {
		t.Fatalf("description = %q", got)
	}

	none := state.Initial()
	none.StabilityScore = 85
	if got := GameResult(none).Description; !strings.HasPrefix(got, "Excellent!") {
		t.Fatalf("description without goal = %q", got)
	}
}

func TestLessons(t *testing.T) {
	t.Parallel()

	offer, _ := catalog.EventByID("loan_offer_1")
	s := state.Initial()
	s.Savings = 250000
	s.MonthlyIncome = 165000
	s.StabilityScore = 82
	s.MonthHistory = []state.MonthRecord{{Month: 1, Event: &offer}}

	got := Lessons(s)
	if len(got) != 4 {
		t.Fatalf("lessons = %+v, want 4", got)
	}
	for _, l := range got {
		if !l.Positive {
			t.Fatalf("unexpected negative lesson %q", l.Text)
		}
	}

	bad := state.Initial()
	bad.Debt = 60000
	bad.PropertyConfiscated = true
	got = Lessons(bad)
	if len(got) != 3 {
		t.Fatalf("lessons = %+v, want 3", got)
	}
	for _, l := range got {
		if l.Positive {
			t.Fatalf("unexpected positive lesson %q", l.Text)
		}
	}

	easy := state.Initial()
	easy.Difficulty = catalog.DifficultyEasy
	easy.MonthlyIncome = 200000
	easy.Savings = 150000
	if got := Lessons(easy); len(got) != 0 {
		t.Fatalf("easy tier without growth got lessons %+v", got)
	}
}

func TestMonthReview(t *testing.T) {
	t.Parallel()

	s := state.Initial()
	if _, ok := MonthReview(s); ok {
		t.Fatal("review reported with no history")
	}

	s.MonthHistory = []state.MonthRecord{{Month: 1, Balance: 45000, Savings: 25000}}
	s.Savings = 25000
	r, ok := MonthReview(s)
	if !ok || r.Month != 1 || r.BalanceChange != 45000 || r.SavingsChange != 25000 {
		t.Fatalf("first review = %+v, %v", r, ok)
	}
	if !strings.Contains(r.Tip, "₹25,000 each month") {
		t.Fatalf("tip = %q", r.Tip)
	}

	s.MonthHistory = append(s.MonthHistory, state.MonthRecord{Month: 2, Balance: 30000, Savings: 125000})
	s.Savings = 125000
	s.Debt = 1000
	r, _ = MonthReview(s)
	if r.BalanceChange != -15000 || r.SavingsChange != 100000 {
		t.Fatalf("second review = %+v", r)
	}
	if !strings.Contains(r.Tip, "₹5,00,000") || !strings.HasSuffix(r.Tip, "avoid property confiscation.") {
		t.Fatalf("tip = %q", r.Tip)
	}
}

func TestDebtShortfall(t *testing.T) {
	t.Parallel()

	s := state.Initial()
	s.Debt = 60000
	s.Balance = 20000
	s.Savings = 10000
	short, fromSavings := DebtShortfall(s)
	if short != 40000 || fromSavings != 10000 {
		t.Fatalf("DebtShortfall = %d/%d, want 40000/10000", short, fromSavings)
	}

	s.Balance = 60000
	if short, _ := DebtShortfall(s); short != 0 {
		t.Fatalf("shortfall with covering balance = %d", short)
	}
}
