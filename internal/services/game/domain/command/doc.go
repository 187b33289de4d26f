// Package command defines the player and system actions the engine accepts,
// and the Decision every action returns.
//
// Commands are plain values. The registry records, per command type, the
// phases in which the action is meaningful so that the engine and any
// presentation layer share one phase policy.
package command
