package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/louisbranch/krishicash/internal/platform/errors"
	"github.com/louisbranch/krishicash/internal/platform/timeouts"
	"github.com/louisbranch/krishicash/internal/random"
	"github.com/louisbranch/krishicash/internal/services/game/domain/command"
	"github.com/louisbranch/krishicash/internal/services/game/domain/engine"
	"github.com/louisbranch/krishicash/internal/services/game/domain/state"
	"github.com/louisbranch/krishicash/internal/services/game/storage"
	"github.com/louisbranch/krishicash/internal/services/game/storage/savefile"
)

const tracerName = "github.com/louisbranch/krishicash/internal/services/game/app"

// Controller owns one player's game.
type Controller struct {
	mu sync.Mutex

	state     state.GameState
	accountID string
	saves     storage.Gateway
	source    random.Source
	rules     engine.Rules
	logger    *log.Logger
	metrics   *Metrics
	tracer    trace.Tracer
}

// monthLimiter is implemented by gateways whose codec caps the game length.
type monthLimiter interface {
	MaxMonths() int
}

// Option configures a Controller.
type Option func(*Controller)

// WithStorage enables autosave and restore for accountID through saves.
func WithStorage(saves storage.Gateway, accountID string) Option {
	return func(c *Controller) {
		c.saves = saves
		c.accountID = accountID
	}
}

// WithSource sets the event draw source.
func WithSource(src random.Source) Option {
	return func(c *Controller) {
		c.source = src
	}
}

// WithRules overrides engine.DefaultRules.
func WithRules(rules engine.Rules) Option {
	return func(c *Controller) {
		c.rules = rules
	}
}

// WithLogger sets the logger; nil keeps log.Default.
func WithLogger(logger *log.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMetrics records controller activity into m.
func WithMetrics(m *Metrics) Option {
	return func(c *Controller) {
		c.metrics = m
	}
}

// WithTracer overrides the global OpenTelemetry tracer.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *Controller) {
		if tracer != nil {
			c.tracer = tracer
		}
	}
}

// New returns a controller holding a fresh game. Without WithSource, events
// are drawn from a generator seeded with crypto entropy.
func New(opts ...Option) (*Controller, error) {
	c := &Controller{
		state:  engine.InitialState(),
		rules:  engine.DefaultRules(),
		logger: log.Default(),
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	if err := c.rules.Validate(); err != nil {
		return nil, fmt.Errorf("game rules: %w", err)
	}
	if limiter, ok := c.saves.(monthLimiter); ok && c.rules.MonthsPerGame > limiter.MaxMonths() {
		return nil, fmt.Errorf("game rules: %d months per game exceeds the save store limit of %d",
			c.rules.MonthsPerGame, limiter.MaxMonths())
	}
	if c.source == nil {
		src, _, err := random.NewFromSeedOrEntropy(0)
		if err != nil {
			return nil, err
		}
		c.source = src
	}
	return c, nil
}

// Rules returns the rules the controller plays by.
func (c *Controller) Rules() engine.Rules {
	return c.rules
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() state.GameState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// Result classifies the current state for the end screen.
func (c *Controller) Result() engine.Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()
	return engine.GameResult(c.state)
}

// Dispatch applies cmd. A rejected command leaves the game untouched and is
// reported in the decision, not as an error. The error is only set when an
// accepted endMonth could not be autosaved. The returned state is a copy.
func (c *Controller) Dispatch(ctx context.Context, cmd command.Command) (command.Decision, error) {
	if cmd == nil {
		return command.Decision{}, errors.New("command is required")
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	action := cmd.Type()
	ctx, span := c.tracer.Start(ctx, "game."+string(action))
	defer span.End()

	before := c.state
	decision := engine.Decide(before, cmd, c.source, c.rules)
	c.metrics.observeDecision(action, decision)

	span.SetAttributes(
		attribute.String("game.action", string(action)),
		attribute.String("game.phase.before", string(before.Phase)),
		attribute.String("game.phase.after", string(decision.State.Phase)),
		attribute.Int("game.month", decision.State.Month),
		attribute.Bool("game.rejected", !decision.Accepted()),
	)

	if rejection, rejected := decision.FirstRejection(); rejected {
		span.SetAttributes(attribute.String("game.rejection_code", rejection.Code))
		c.logger.Printf("game action %s rejected in %s: %s", action, before.Phase, rejection.Error())
		decision.State = c.state.Clone()
		return decision, nil
	}

	c.state = decision.State
	decision.State = c.state.Clone()
	if action != command.TypeEndMonth {
		return decision, nil
	}

	c.metrics.observeMonthEnded(c.state.Phase == state.PhaseEnded, engine.GameResult(c.state))
	if err := c.persistLocked(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "autosave failed")
		return decision, err
	}
	return decision, nil
}

// persistLocked saves the current state when storage is configured.
func (c *Controller) persistLocked(ctx context.Context) error {
	if c.saves == nil {
		return nil
	}
	saveCtx, cancel := context.WithTimeout(ctx, timeouts.StoreOperation)
	defer cancel()

	err := c.saves.Save(saveCtx, c.accountID, c.state)
	c.metrics.observeSave(err)
	if err != nil {
		c.logger.Printf("autosave %s month %d: %v", c.accountID, c.state.Month, err)
		return apperrors.Wrap(apperrors.CodeStoreUnavailable, "autosave", err)
	}
	return nil
}

// Restore replaces the game with the stored save. A missing, corrupt or
// unsupported save starts a fresh game instead; other failures are returned
// and leave the current game in place.
func (c *Controller) Restore(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	ctx, span := c.tracer.Start(ctx, "game.restore")
	defer span.End()

	if c.saves == nil {
		c.state = engine.InitialState()
		return nil
	}
	loadCtx, cancel := context.WithTimeout(ctx, timeouts.StoreOperation)
	defer cancel()

	loaded, err := c.saves.Load(loadCtx, c.accountID)
	if err != nil {
		code := apperrors.CodeOf(err)
		span.SetAttributes(attribute.String("game.restore.code", string(code)))
		if !code.Recoverable() {
			span.RecordError(err)
			span.SetStatus(codes.Error, "restore failed")
			return fmt.Errorf("restore %s: %w", c.accountID, err)
		}
		if code != apperrors.CodeSaveNotFound {
			c.logger.Printf("restore %s: starting a new game: %v", c.accountID, err)
		}
		c.state = engine.InitialState()
		return nil
	}
	c.state = loaded
	span.SetAttributes(
		attribute.String("game.phase.after", string(loaded.Phase)),
		attribute.Int("game.month", loaded.Month),
	)
	return nil
}

// LoadState validates s like a save file and makes it the current game.
func (c *Controller) LoadState(ctx context.Context, s state.GameState) error {
	_, span := c.tracer.Start(ctx, "game.load_state")
	defer span.End()

	normalized, err := savefile.Normalize(s, savefile.WithMaxMonths(c.rules.MonthsPerGame))
	if err != nil {
		span.RecordError(err)
		return err
	}
	c.mu.Lock()
	c.state = normalized
	c.mu.Unlock()
	return nil
}

// Reset discards the game and deletes its save. The in-memory game is reset
// even when the delete fails.
func (c *Controller) Reset(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	ctx, span := c.tracer.Start(ctx, "game.reset")
	defer span.End()

	c.state = engine.InitialState()
	if c.saves == nil {
		return nil
	}
	deleteCtx, cancel := context.WithTimeout(ctx, timeouts.StoreOperation)
	defer cancel()
	if err := c.saves.Delete(deleteCtx, c.accountID); err != nil {
		span.RecordError(err)
		c.logger.Printf("reset %s: delete save: %v", c.accountID, err)
		return apperrors.Wrap(apperrors.CodeStoreUnavailable, "delete save", err)
	}
	return nil
}
