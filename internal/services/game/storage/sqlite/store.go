// Package sqlite stores saves in a local SQLite database. The full envelope
// is kept as text next to indexed summary columns, so listing saves never
// decodes a game state.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/krishicash/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/krishicash/internal/services/game/storage"
	"github.com/louisbranch/krishicash/internal/services/game/storage/savefile"
	"github.com/louisbranch/krishicash/internal/services/game/storage/sqlite/migrations"

	_ "modernc.org/sqlite"
)

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

// fromMillis reverses toMillis for persisted millisecond timestamps.
func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Store is a SQLite-backed RecordStore.
type Store struct {
	sqlDB *sql.DB
}

var (
	_ storage.RecordStore = (*Store)(nil)
	_ storage.Lister      = (*Store)(nil)
)

// Open opens the database at path and applies embedded migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := "file:" + cleanPath + "?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	if _, err := sqlitemigrate.ApplyMigrations(ctx, sqlDB, migrations.FS, "."); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the underlying database. It is nil-safe so callers can defer
// it on every startup path.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Get returns the record for accountID.
func (s *Store) Get(ctx context.Context, accountID string) (storage.Record, error) {
	row := s.sqlDB.QueryRowContext(ctx, `
SELECT account_id, save_id, schema_version, difficulty, goal_name, month, savings, stability_score, saved_at, game_state
FROM game_saves WHERE account_id = ?`, accountID)

	var (
		rec     storage.Record
		savedAt int64
		payload string
	)
	err := row.Scan(&rec.AccountID, &rec.SaveID, &rec.SchemaVersion,
		&rec.Summary.Difficulty, &rec.Summary.GoalName, &rec.Summary.Month,
		&rec.Summary.Savings, &rec.Summary.StabilityScore, &savedAt, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.Record{}, storage.ErrNotFound
	}
	if err != nil {
		return storage.Record{}, fmt.Errorf("get save %s: %w", accountID, err)
	}
	rec.SavedAt = fromMillis(savedAt)
	rec.Payload = []byte(payload)
	return rec, nil
}

// Put upserts rec.
func (s *Store) Put(ctx context.Context, rec storage.Record) error {
	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO game_saves (account_id, save_id, schema_version, difficulty, goal_name, month, savings, stability_score, game_state, saved_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(account_id) DO UPDATE SET
    save_id = excluded.save_id,
    schema_version = excluded.schema_version,
    difficulty = excluded.difficulty,
    goal_name = excluded.goal_name,
    month = excluded.month,
    savings = excluded.savings,
    stability_score = excluded.stability_score,
    game_state = excluded.game_state,
    saved_at = excluded.saved_at`,
		rec.AccountID, rec.SaveID, rec.SchemaVersion,
		rec.Summary.Difficulty, rec.Summary.GoalName, rec.Summary.Month,
		rec.Summary.Savings, rec.Summary.StabilityScore,
		string(rec.Payload), toMillis(rec.SavedAt),
	)
	if err != nil {
		return fmt.Errorf("put save %s: %w", rec.AccountID, err)
	}
	return nil
}

// Delete removes the record for accountID.
func (s *Store) Delete(ctx context.Context, accountID string) error {
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM game_saves WHERE account_id = ?`, accountID); err != nil {
		return fmt.Errorf("delete save %s: %w", accountID, err)
	}
	return nil
}

// List returns every save, most recent first, without payloads.
func (s *Store) List(ctx context.Context) ([]storage.Record, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT account_id, save_id, schema_version, difficulty, goal_name, month, savings, stability_score, saved_at
FROM game_saves ORDER BY saved_at DESC, account_id`)
	if err != nil {
		return nil, fmt.Errorf("list saves: %w", err)
	}
	defer rows.Close()

	var out []storage.Record
	for rows.Next() {
		var (
			rec     storage.Record
			summary savefile.Summary
			savedAt int64
		)
		if err := rows.Scan(&rec.AccountID, &rec.SaveID, &rec.SchemaVersion,
			&summary.Difficulty, &summary.GoalName, &summary.Month,
			&summary.Savings, &summary.StabilityScore, &savedAt); err != nil {
			return nil, fmt.Errorf("scan save: %w", err)
		}
		rec.Summary = summary
		rec.SavedAt = fromMillis(savedAt)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read saves: %w", err)
	}
	return out, nil
}
