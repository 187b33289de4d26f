// Package savefile is the versioned wire format for saved games.
//
// A save is a JSON envelope:
//
//	{"schema_version":1,"save_id":"...","saved_at":"...","summary":{...},"state":{...}}
//
// Decode also accepts the legacy format, a bare camelCase game state with no
// envelope, and migrates it to the current version. Every decoded state goes
// through Normalize, which rejects snapshots the engine cannot play from and
// repairs fields that are derived or merely inconsistent.
package savefile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	apperrors "github.com/louisbranch/krishicash/internal/platform/errors"
	"github.com/louisbranch/krishicash/internal/platform/id"
	"github.com/louisbranch/krishicash/internal/services/game/domain/state"
)

// SchemaVersion is the envelope version written by this package.
const SchemaVersion = 1

// Summary repeats the fields listed on a load-game screen.
type Summary struct {
	Difficulty     string `json:"difficulty"`
	GoalName       string `json:"goal_name"`
	Month          int    `json:"month"`
	Savings        int64  `json:"savings"`
	StabilityScore int    `json:"stability_score"`
}

// Envelope wraps a state with its version and save metadata.
type Envelope struct {
	SchemaVersion int             `json:"schema_version"`
	SaveID        string          `json:"save_id"`
	SavedAt       time.Time       `json:"saved_at"`
	Summary       Summary         `json:"summary"`
	State         state.GameState `json:"state"`
}

// SummaryOf derives the summary for s.
func SummaryOf(s state.GameState) Summary {
	return Summary{
		Difficulty:     string(s.Difficulty),
		GoalName:       s.GoalName(),
		Month:          s.Month,
		Savings:        s.Savings,
		StabilityScore: s.StabilityScore,
	}
}

// NewEnvelope normalizes s and wraps it with a fresh save id.
func NewEnvelope(s state.GameState, now time.Time, opts ...Option) (Envelope, error) {
	normalized, err := Normalize(s, opts...)
	if err != nil {
		return Envelope{}, err
	}
	saveID, err := id.NewID()
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{
		SchemaVersion: SchemaVersion,
		SaveID:        saveID,
		SavedAt:       now.UTC(),
		Summary:       SummaryOf(normalized),
		State:         normalized,
	}, nil
}

// Marshal encodes env.
func Marshal(env Envelope) ([]byte, error) {
	data, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("marshal save: %w", err)
	}
	return data, nil
}

// probe reads just enough of a payload to pick a decoder.
type probe struct {
	SchemaVersion *int            `json:"schema_version"`
	State         json.RawMessage `json:"state"`
}

// Decode parses data in any supported version and returns a normalized
// current-version envelope. Failures carry apperrors.CodeSaveCorrupt or
// apperrors.CodeSaveVersionUnsupported.
func Decode(data []byte, opts ...Option) (Envelope, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return Envelope{}, apperrors.New(apperrors.CodeSaveCorrupt, "save is empty")
	}

	var p probe
	if err := json.Unmarshal(data, &p); err != nil {
		return Envelope{}, apperrors.Wrap(apperrors.CodeSaveCorrupt, "save is not a json object", err)
	}

	var env Envelope
	switch {
	case p.SchemaVersion == nil:
		legacy, err := decodeLegacy(data)
		if err != nil {
			return Envelope{}, err
		}
		env = legacy
	case *p.SchemaVersion == SchemaVersion:
		if err := json.Unmarshal(data, &env); err != nil {
			return Envelope{}, apperrors.Wrap(apperrors.CodeSaveCorrupt, "decode save envelope", err)
		}
		if len(p.State) == 0 || string(p.State) == "null" {
			return Envelope{}, apperrors.New(apperrors.CodeSaveCorrupt, "save envelope has no state")
		}
	default:
		return Envelope{}, apperrors.WithMetadata(apperrors.CodeSaveVersionUnsupported,
			fmt.Sprintf("save schema version %d is not supported", *p.SchemaVersion),
			map[string]string{"schema_version": strconv.Itoa(*p.SchemaVersion)})
	}

	normalized, err := Normalize(env.State, opts...)
	if err != nil {
		return Envelope{}, err
	}
	env.State = normalized
	env.Summary = SummaryOf(normalized)
	return env, nil
}

// decodeLegacy migrates a bare state blob to the current envelope.
func decodeLegacy(data []byte) (Envelope, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return Envelope{}, apperrors.Wrap(apperrors.CodeSaveCorrupt, "decode legacy save", err)
	}
	if _, ok := fields["gamePhase"]; !ok {
		return Envelope{}, apperrors.New(apperrors.CodeSaveCorrupt, "legacy save has no game phase")
	}
	var s state.GameState
	if err := json.Unmarshal(data, &s); err != nil {
		return Envelope{}, apperrors.Wrap(apperrors.CodeSaveCorrupt, "decode legacy save", err)
	}
	return Envelope{SchemaVersion: SchemaVersion, State: s}, nil
}
