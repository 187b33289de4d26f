// Package app hosts the game controller: the single owner of a player's
// GameState.
//
// The controller serialises actions, runs them through the pure engine,
// and takes care of what the engine must not: autosaving completed months,
// restoring from storage with a fresh-game fallback, tracing, metrics and
// logging. Presentation layers talk to the controller only.
package app
