// Package postgres stores saves in a Postgres game_saves table keyed by
// account, one row per player, mirroring the hosted save table layout.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/louisbranch/krishicash/internal/services/game/storage"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
)

const (
	defaultDriver = "pgx"
	defaultDSN    = "postgres://localhost/krishicash?sslmode=disable"
)

var (
	sqlOpen = sql.Open
	openMu  sync.Mutex
)

// Store is a Postgres-backed RecordStore.
type Store struct {
	db *sql.DB
}

var (
	_ storage.RecordStore = (*Store)(nil)
	_ storage.Lister      = (*Store)(nil)
)

// Open connects to dsn (defaultDSN when empty) and ensures the save table.
func Open(ctx context.Context, dsn string) (*Store, error) {
	if strings.TrimSpace(dsn) == "" {
		dsn = defaultDSN
	}
	openMu.Lock()
	db, err := sqlOpen(defaultDriver, dsn)
	openMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if err := ensureSaveTable(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// OverrideSQLOpen swaps the sql.Open hook and returns a restore func.
func OverrideSQLOpen(fn func(driverName, dataSourceName string) (*sql.DB, error)) func() {
	openMu.Lock()
	defer openMu.Unlock()
	prev := sqlOpen
	sqlOpen = fn
	return func() {
		openMu.Lock()
		defer openMu.Unlock()
		sqlOpen = prev
	}
}

func ensureSaveTable(ctx context.Context, db *sql.DB) error {
	ddl := `CREATE TABLE IF NOT EXISTS game_saves (
		account_id TEXT PRIMARY KEY,
		save_id TEXT NOT NULL,
		schema_version INTEGER NOT NULL,
		difficulty TEXT NOT NULL,
		goal_name TEXT,
		month INTEGER NOT NULL,
		savings BIGINT NOT NULL,
		stability_score INTEGER NOT NULL,
		game_state JSONB NOT NULL,
		saved_at TIMESTAMPTZ NOT NULL
	)`
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("ensure game_saves table: %w", err)
	}
	return nil
}

// Close closes the connection pool. It is nil-safe.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Get returns the record for accountID.
func (s *Store) Get(ctx context.Context, accountID string) (storage.Record, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT account_id, save_id, schema_version, difficulty, goal_name, month, savings, stability_score, saved_at, game_state FROM game_saves WHERE account_id = $1`,
		accountID)

	var (
		rec      storage.Record
		goalName sql.NullString
		savedAt  time.Time
		payload  []byte
	)
	err := row.Scan(&rec.AccountID, &rec.SaveID, &rec.SchemaVersion,
		&rec.Summary.Difficulty, &goalName, &rec.Summary.Month,
		&rec.Summary.Savings, &rec.Summary.StabilityScore, &savedAt, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.Record{}, storage.ErrNotFound
	}
	if err != nil {
		return storage.Record{}, fmt.Errorf("select save %s: %w", accountID, err)
	}
	rec.Summary.GoalName = goalName.String
	rec.SavedAt = savedAt.UTC()
	rec.Payload = payload
	return rec, nil
}

// Put upserts rec on account_id.
func (s *Store) Put(ctx context.Context, rec storage.Record) error {
	var goalName sql.NullString
	if rec.Summary.GoalName != "" {
		goalName = sql.NullString{String: rec.Summary.GoalName, Valid: true}
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO game_saves (account_id, save_id, schema_version, difficulty, goal_name, month, savings, stability_score, game_state, saved_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) ON CONFLICT (account_id) DO UPDATE SET save_id = EXCLUDED.save_id, schema_version = EXCLUDED.schema_version, difficulty = EXCLUDED.difficulty, goal_name = EXCLUDED.goal_name, month = EXCLUDED.month, savings = EXCLUDED.savings, stability_score = EXCLUDED.stability_score, game_state = EXCLUDED.game_state, saved_at = EXCLUDED.saved_at`,
		rec.AccountID, rec.SaveID, rec.SchemaVersion, rec.Summary.Difficulty, goalName,
		rec.Summary.Month, rec.Summary.Savings, rec.Summary.StabilityScore,
		string(rec.Payload), rec.SavedAt.UTC())
	if err != nil {
		return fmt.Errorf("upsert save %s: %w", rec.AccountID, err)
	}
	return nil
}

// Delete removes the row for accountID.
func (s *Store) Delete(ctx context.Context, accountID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM game_saves WHERE account_id = $1`, accountID); err != nil {
		return fmt.Errorf("delete save %s: %w", accountID, err)
	}
	return nil
}

// List returns every save, most recent first, without payloads.
func (s *Store) List(ctx context.Context) ([]storage.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT account_id, save_id, schema_version, difficulty, goal_name, month, savings, stability_score, saved_at FROM game_saves ORDER BY saved_at DESC, account_id`)
	if err != nil {
		return nil, fmt.Errorf("select saves: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []storage.Record
	for rows.Next() {
		var (
			rec      storage.Record
			goalName sql.NullString
			savedAt  time.Time
		)
		if err := rows.Scan(&rec.AccountID, &rec.SaveID, &rec.SchemaVersion,
			&rec.Summary.Difficulty, &goalName, &rec.Summary.Month,
			&rec.Summary.Savings, &rec.Summary.StabilityScore, &savedAt); err != nil {
			return nil, fmt.Errorf("scan save: %w", err)
		}
		rec.Summary.GoalName = goalName.String
		rec.SavedAt = savedAt.UTC()
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate saves: %w", err)
	}
	return out, nil
}
