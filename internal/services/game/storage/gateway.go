package storage

import (
	"context"
	"fmt"
	"time"

	apperrors "github.com/louisbranch/krishicash/internal/platform/errors"
	"github.com/louisbranch/krishicash/internal/services/game/domain/engine"
	"github.com/louisbranch/krishicash/internal/services/game/domain/state"
	"github.com/louisbranch/krishicash/internal/services/game/storage/savefile"
)

// SaveGateway encodes states with savefile and keeps them in a RecordStore.
type SaveGateway struct {
	records   RecordStore
	now       func() time.Time
	maxMonths int
}

var _ Gateway = (*SaveGateway)(nil)

// GatewayOption configures a SaveGateway.
type GatewayOption func(*SaveGateway)

// WithClock overrides the time source used to stamp saves.
func WithClock(now func() time.Time) GatewayOption {
	return func(g *SaveGateway) {
		if now != nil {
			g.now = now
		}
	}
}

// WithMaxMonths lets saves hold games up to n months long. Controllers
// running longer rules need it, or every save past the default length is
// rejected as corrupt.
func WithMaxMonths(n int) GatewayOption {
	return func(g *SaveGateway) {
		if n > 0 {
			g.maxMonths = n
		}
	}
}

// NewGateway returns a Gateway backed by records.
func NewGateway(records RecordStore, opts ...GatewayOption) *SaveGateway {
	g := &SaveGateway{records: records, now: time.Now, maxMonths: engine.DefaultRules().MonthsPerGame}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// MaxMonths is the longest game the gateway can store.
func (g *SaveGateway) MaxMonths() int {
	return g.maxMonths
}

func (g *SaveGateway) codecOptions() []savefile.Option {
	return []savefile.Option{savefile.WithMaxMonths(g.maxMonths)}
}

// Load returns the validated state saved for accountID.
func (g *SaveGateway) Load(ctx context.Context, accountID string) (state.GameState, error) {
	accountID, err := NormalizeAccountID(accountID)
	if err != nil {
		return state.GameState{}, err
	}
	rec, err := g.records.Get(ctx, accountID)
	if err != nil {
		return state.GameState{}, err
	}
	env, err := savefile.Decode(rec.Payload, g.codecOptions()...)
	if err != nil {
		return state.GameState{}, fmt.Errorf("decode save for %s: %w", accountID, err)
	}
	return env.State, nil
}

// Save encodes s in a fresh envelope and stores it.
func (g *SaveGateway) Save(ctx context.Context, accountID string, s state.GameState) error {
	accountID, err := NormalizeAccountID(accountID)
	if err != nil {
		return err
	}
	env, err := savefile.NewEnvelope(s, g.now(), g.codecOptions()...)
	if err != nil {
		return fmt.Errorf("build save for %s: %w", accountID, err)
	}
	payload, err := savefile.Marshal(env)
	if err != nil {
		return fmt.Errorf("encode save for %s: %w", accountID, err)
	}
	return g.records.Put(ctx, Record{
		AccountID:     accountID,
		SaveID:        env.SaveID,
		SchemaVersion: env.SchemaVersion,
		SavedAt:       env.SavedAt,
		Summary:       env.Summary,
		Payload:       payload,
	})
}

// Delete removes the save for accountID.
func (g *SaveGateway) Delete(ctx context.Context, accountID string) error {
	accountID, err := NormalizeAccountID(accountID)
	if err != nil {
		return err
	}
	return g.records.Delete(ctx, accountID)
}

// ErrListUnsupported is returned by List when the backend cannot enumerate.
var ErrListUnsupported = apperrors.New(apperrors.CodeStoreUnsupported, "save store cannot list saves")

// List returns save headers when the backend implements Lister.
func (g *SaveGateway) List(ctx context.Context) ([]Record, error) {
	lister, ok := g.records.(Lister)
	if !ok {
		return nil, ErrListUnsupported
	}
	return lister.List(ctx)
}
