package command

import "github.com/louisbranch/krishicash/internal/services/game/domain/state"

// Shared rejection codes. Codes are SCREAMING_SNAKE_CASE and stable so
// callers can branch on them.
const (
	RejectionCodeCommandTypeUnsupported = "COMMAND_TYPE_UNSUPPORTED"
	RejectionCodePhaseNotAllowed        = "PHASE_NOT_ALLOWED"
	RejectionCodeAmountInvalid          = "AMOUNT_INVALID"
	RejectionCodeInsufficientBalance    = "INSUFFICIENT_BALANCE"
	RejectionCodeInsufficientSavings    = "INSUFFICIENT_SAVINGS"
	RejectionCodeLoanActive             = "LOAN_ACTIVE"
	RejectionCodeNoActiveLoan           = "NO_ACTIVE_LOAN"
	RejectionCodeInsuranceInactive      = "INSURANCE_INACTIVE"
	RejectionCodeGoalRequired           = "GOAL_REQUIRED"
	RejectionCodeGoalNotSelected        = "GOAL_NOT_SELECTED"
	RejectionCodeGoalAlreadyPurchased   = "GOAL_ALREADY_PURCHASED"
	RejectionCodePropertyConfiscated    = "PROPERTY_CONFISCATED"
	RejectionCodeEventMissing           = "EVENT_MISSING"
)

// AdvisoryKind identifies a one-shot notice produced alongside a transition.
type AdvisoryKind string

const (
	AdvisoryLoanDeadlineWarning AdvisoryKind = "loan_deadline_warning"
	AdvisoryIncomeBoosted       AdvisoryKind = "income_boosted"
	AdvisoryPropertyConfiscated AdvisoryKind = "property_confiscated"
	AdvisoryGameEnded           AdvisoryKind = "game_ended"
)

// Advisory is a user-facing notice. The engine produces it; presentation
// decides how to show it.
type Advisory struct {
	Kind    AdvisoryKind
	Title   string
	Message string
}

// Rejection captures why an action left the state unchanged.
type Rejection struct {
	Code    string
	Message string
}

// Decision is the pure outcome of applying a command. State is always set:
// on rejection it equals the input state.
type Decision struct {
	State      state.GameState
	Advisories []Advisory
	Rejections []Rejection
}

// Accept returns a decision carrying the next state and any advisories.
func Accept(next state.GameState, advisories ...Advisory) Decision {
	return Decision{State: next, Advisories: append([]Advisory(nil), advisories...)}
}

// Reject returns a decision that keeps current and records why.
func Reject(current state.GameState, rejections ...Rejection) Decision {
	return Decision{State: current, Rejections: append([]Rejection(nil), rejections...)}
}

// Accepted reports whether the command changed the game.
func (d Decision) Accepted() bool {
	return len(d.Rejections) == 0
}

// FirstRejection returns the first rejection, if any.
func (d Decision) FirstRejection() (Rejection, bool) {
	if len(d.Rejections) == 0 {
		return Rejection{}, false
	}
	return d.Rejections[0], true
}

// Error formats the rejection as "CODE: message".
func (r Rejection) Error() string {
	if r.Message == "" {
		return r.Code
	}
	return r.Code + ": " + r.Message
}
