package command

import (
	"fmt"
	"sort"

	"github.com/louisbranch/krishicash/internal/services/game/domain/state"
)

// Definition declares the phase policy of a command type.
type Definition struct {
	Type Type
	// Phases lists where the command is accepted.
	Phases []state.Phase
	// Financial marks balance-moving player actions.
	Financial bool
}

// AllowedIn reports whether the definition accepts phase p.
func (d Definition) AllowedIn(p state.Phase) bool {
	for _, allowed := range d.Phases {
		if allowed == p {
			return true
		}
	}
	return false
}

var financialPhases = []state.Phase{state.PhasePlaying, state.PhaseDecision}

// Cancelling cover is always allowed until the game is over.
var cancelPhases = []state.Phase{
	state.PhaseIntro, state.PhaseGoalSelection, state.PhasePlaying,
	state.PhaseEvent, state.PhaseDecision, state.PhaseSummary,
}

var definitions = map[Type]Definition{
	TypeStartGame:       {Type: TypeStartGame, Phases: []state.Phase{state.PhaseIntro}},
	TypeSelectGoal:      {Type: TypeSelectGoal, Phases: []state.Phase{state.PhaseGoalSelection}},
	TypeStartNewMonth:   {Type: TypeStartNewMonth, Phases: []state.Phase{state.PhasePlaying}},
	TypeHandleEvent:     {Type: TypeHandleEvent, Phases: []state.Phase{state.PhaseEvent}},
	TypeSaveMoney:       {Type: TypeSaveMoney, Phases: financialPhases, Financial: true},
	TypeBuyInsurance:    {Type: TypeBuyInsurance, Phases: financialPhases, Financial: true},
	TypeUpdateInsurance: {Type: TypeUpdateInsurance, Phases: financialPhases, Financial: true},
	TypeStopInsurance:   {Type: TypeStopInsurance, Phases: cancelPhases, Financial: true},
	TypeTakeLoan:        {Type: TypeTakeLoan, Phases: financialPhases, Financial: true},
	TypeRepayLoan:       {Type: TypeRepayLoan, Phases: financialPhases, Financial: true},
	TypeWithdrawSavings: {Type: TypeWithdrawSavings, Phases: financialPhases, Financial: true},
	TypePurchaseGoal: {Type: TypePurchaseGoal, Phases: []state.Phase{
		state.PhasePlaying, state.PhaseDecision, state.PhaseSummary, state.PhaseEnded,
	}},
	TypeEndMonth:      {Type: TypeEndMonth, Phases: []state.Phase{state.PhaseDecision}},
	TypeContinueMonth: {Type: TypeContinueMonth, Phases: []state.Phase{state.PhaseSummary}},
}

// Lookup returns the definition for t.
func Lookup(t Type) (Definition, bool) {
	def, ok := definitions[t]
	return def, ok
}

// Types lists registered command types in lexical order.
func Types() []Type {
	out := make([]Type, 0, len(definitions))
	for t := range definitions {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// CheckPhase returns a rejection when t may not run in phase p.
func CheckPhase(t Type, p state.Phase) (Rejection, bool) {
	def, ok := Lookup(t)
	if !ok {
		return Rejection{
			Code:    RejectionCodeCommandTypeUnsupported,
			Message: fmt.Sprintf("command type %q is not registered", t),
		}, false
	}
	if !def.AllowedIn(p) {
		return Rejection{
			Code:    RejectionCodePhaseNotAllowed,
			Message: fmt.Sprintf("%s is not allowed in phase %s", t, p),
		}, false
	}
	return Rejection{}, true
}
