// Package engine implements the game's state transitions.
//
// Every action is a pure function from the current state and its parameters
// to a command.Decision. The input state is never written: transitions start
// from a deep clone and return the next snapshot, plus any advisories raised
// along the way. A precondition failure returns the input state unchanged
// with a rejection explaining why, so a caller can treat it as a no-op or
// surface the reason.
//
// Randomness enters only through random.Source in StartNewMonth, and tunable
// numbers (interest, grace period, co-pay) come from Rules.
package engine
