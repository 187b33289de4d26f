// Package state defines the game aggregate. Values are treated as
// immutable: transitions build a new GameState through Clone and never write
// into one that may still be referenced by a caller or by history.
package state

import "github.com/louisbranch/krishicash/internal/services/game/domain/catalog"

// Phase is the state-machine tag.
type Phase string

const (
	PhaseIntro         Phase = "intro"
	PhaseGoalSelection Phase = "goal_selection"
	PhasePlaying       Phase = "playing"
	PhaseEvent         Phase = "event"
	PhaseDecision      Phase = "decision"
	PhaseSummary       Phase = "summary"
	PhaseEnded         Phase = "ended"
)

// Valid reports whether p is a known phase.
func (p Phase) Valid() bool {
	switch p {
	case PhaseIntro, PhaseGoalSelection, PhasePlaying, PhaseEvent,
		PhaseDecision, PhaseSummary, PhaseEnded:
		return true
	default:
		return false
	}
}

// Terminal reports whether no further month can be played.
func (p Phase) Terminal() bool {
	return p == PhaseEnded
}

// MonthRecord snapshots a completed month.
type MonthRecord struct {
	Month     int            `json:"month"`
	Income    int64          `json:"income"`
	Expenses  int64          `json:"expenses"`
	Savings   int64          `json:"savings"`
	Balance   int64          `json:"balance"`
	Event     *catalog.Event `json:"event,omitempty"`
	Decisions []string       `json:"decisions"`
}

// GameState is the whole game. JSON names match the persisted blob so legacy
// saves decode without a translation table.
type GameState struct {
	Month                   int                     `json:"month"`
	Balance                 int64                   `json:"balance"`
	MonthlyIncome           int64                   `json:"monthlyIncome"`
	Savings                 int64                   `json:"savings"`
	StabilityScore          int                     `json:"stabilityScore"`
	HasInsurance            bool                    `json:"hasInsurance"`
	InsuranceAmount         int64                   `json:"insuranceAmount"`
	Debt                    int64                   `json:"debt"`
	LoanMonthsRemaining     int                     `json:"loanMonthsRemaining"`
	ConsecutiveSavingMonths int                     `json:"consecutiveSavingMonths"`
	TotalSavedThisStreak    int64                   `json:"totalSavedThisStreak"`
	Phase                   Phase                   `json:"gamePhase"`
	CurrentEvent            *catalog.Event          `json:"currentEvent"`
	MonthHistory            []MonthRecord           `json:"monthHistory"`
	SelectedGoal            *catalog.Goal           `json:"selectedGoal"`
	GoalAchieved            bool                    `json:"goalAchieved"`
	PropertyConfiscated     bool                    `json:"propertyConfiscated"`
	Difficulty              catalog.DifficultyLevel `json:"difficulty"`
	ExpenseMultiplier       float64                 `json:"expenseMultiplier"`
}

// Initial returns the fixed snapshot a new game starts from.
func Initial() GameState {
	return GameState{
		Month:             1,
		MonthlyIncome:     150000,
		StabilityScore:    55,
		Phase:             PhaseIntro,
		MonthHistory:      []MonthRecord{},
		Difficulty:        catalog.DifficultyMedium,
		ExpenseMultiplier: 1.0,
	}
}

// Clone deep-copies s so the result shares no pointers or slices with it.
func (s GameState) Clone() GameState {
	out := s
	if s.CurrentEvent != nil {
		ev := *s.CurrentEvent
		out.CurrentEvent = &ev
	}
	if s.SelectedGoal != nil {
		g := *s.SelectedGoal
		out.SelectedGoal = &g
	}
	if s.MonthHistory != nil {
		out.MonthHistory = make([]MonthRecord, len(s.MonthHistory))
		for i, rec := range s.MonthHistory {
			out.MonthHistory[i] = rec.clone()
		}
	}
	return out
}

func (r MonthRecord) clone() MonthRecord {
	out := r
	if r.Event != nil {
		ev := *r.Event
		out.Event = &ev
	}
	if r.Decisions != nil {
		out.Decisions = append([]string(nil), r.Decisions...)
	}
	return out
}

// NetWorth is balance plus savings minus debt.
func (s GameState) NetWorth() int64 {
	return s.Balance + s.Savings - s.Debt
}

// InDebt reports whether a loan is outstanding.
func (s GameState) InDebt() bool {
	return s.Debt > 0
}

// GoalName returns the selected goal's name or "" when none is selected.
func (s GameState) GoalName() string {
	if s.SelectedGoal == nil {
		return ""
	}
	return s.SelectedGoal.Name
}

// HistoryHasEventType reports whether any completed month drew an event of t.
func (s GameState) HistoryHasEventType(t catalog.EventType) bool {
	for _, rec := range s.MonthHistory {
		if rec.Event != nil && rec.Event.Type == t {
			return true
		}
	}
	return false
}
