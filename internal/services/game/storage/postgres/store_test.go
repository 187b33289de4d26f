package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/louisbranch/krishicash/internal/services/game/storage"
	"github.com/louisbranch/krishicash/internal/services/game/storage/savefile"
)

func openStubStore(t *testing.T) (*Store, *stubConn) {
	t.Helper()
	db, conn := newStubDB()
	restore := OverrideSQLOpen(func(_, _ string) (*sql.DB, error) { return db, nil })
	defer restore()

	store, err := Open(context.Background(), "")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store, conn
}

func record(accountID, goal string, month int, savedAt time.Time) storage.Record {
	return storage.Record{
		AccountID:     accountID,
		SaveID:        "save-" + accountID,
		SchemaVersion: savefile.SchemaVersion,
		SavedAt:       savedAt,
		Summary: savefile.Summary{
			Difficulty:     "medium",
			GoalName:       goal,
			Month:          month,
			Savings:        9000,
			StabilityScore: 61,
		},
		Payload: []byte(`{"schema_version":1}`),
	}
}

func TestOpenEnsuresSaveTable(t *testing.T) {
	_, conn := openStubStore(t)

	var sawDDL bool
	for _, stmt := range conn.execs {
		if strings.Contains(strings.ToUpper(stmt), "CREATE TABLE IF NOT EXISTS GAME_SAVES") {
			sawDDL = true
		}
	}
	if !sawDDL {
		t.Fatalf("expected game_saves DDL, got execs: %v", conn.execs)
	}
}

func TestOpenFailsWhenPingFails(t *testing.T) {
	db, conn := newStubDB()
	conn.failPing = true
	restore := OverrideSQLOpen(func(_, _ string) (*sql.DB, error) { return db, nil })
	defer restore()

	if _, err := Open(context.Background(), "postgres://example"); err == nil {
		t.Fatal("expected ping failure")
	}
}

func TestOpenFailsWhenDDLFails(t *testing.T) {
	db, conn := newStubDB()
	conn.failExec = true
	restore := OverrideSQLOpen(func(_, _ string) (*sql.DB, error) { return db, nil })
	defer restore()

	if _, err := Open(context.Background(), ""); err == nil {
		t.Fatal("expected ddl failure")
	}
}

func TestOpenPropagatesOpenError(t *testing.T) {
	restore := OverrideSQLOpen(func(_, _ string) (*sql.DB, error) { return nil, errors.New("no driver") })
	defer restore()

	if _, err := Open(context.Background(), ""); err == nil {
		t.Fatal("expected open failure")
	}
}

func TestStoreUpsertAndGet(t *testing.T) {
	ctx := context.Background()
	store, _ := openStubStore(t)
	savedAt := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)

	if _, err := store.Get(ctx, "farmer-1"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("get missing = %v, want ErrNotFound", err)
	}
	if err := store.Put(ctx, record("farmer-1", "Cycle", 3, savedAt)); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := store.Put(ctx, record("farmer-1", "Cycle", 4, savedAt.Add(time.Hour))); err != nil {
		t.Fatalf("put again: %v", err)
	}

	got, err := store.Get(ctx, "farmer-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Summary.Month != 4 {
		t.Fatalf("month = %d, want 4", got.Summary.Month)
	}
	if got.Summary.GoalName != "Cycle" {
		t.Fatalf("goal = %q, want Cycle", got.Summary.GoalName)
	}
	if !got.SavedAt.Equal(savedAt.Add(time.Hour)) {
		t.Fatalf("saved at = %v, want %v", got.SavedAt, savedAt.Add(time.Hour))
	}
	if string(got.Payload) != `{"schema_version":1}` {
		t.Fatalf("payload = %q", got.Payload)
	}
}

func TestStoreStoresNullGoalName(t *testing.T) {
	ctx := context.Background()
	store, conn := openStubStore(t)

	if err := store.Put(ctx, record("farmer-1", "", 1, time.Now())); err != nil {
		t.Fatalf("put: %v", err)
	}
	if conn.rows[0]["goal_name"] != nil {
		t.Fatalf("goal_name = %v, want NULL", conn.rows[0]["goal_name"])
	}
	got, err := store.Get(ctx, "farmer-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Summary.GoalName != "" {
		t.Fatalf("goal = %q, want empty", got.Summary.GoalName)
	}
}

func TestStoreListAndDelete(t *testing.T) {
	ctx := context.Background()
	store, _ := openStubStore(t)
	base := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	if err := store.Put(ctx, record("farmer-a", "Car", 2, base)); err != nil {
		t.Fatalf("put a: %v", err)
	}
	if err := store.Put(ctx, record("farmer-b", "House", 5, base.Add(time.Hour))); err != nil {
		t.Fatalf("put b: %v", err)
	}

	list, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].AccountID != "farmer-b" {
		t.Fatalf("list = %+v, want farmer-b first", list)
	}

	if err := store.Delete(ctx, "farmer-b"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Get(ctx, "farmer-b"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("get deleted = %v, want ErrNotFound", err)
	}
	list, err = store.List(ctx)
	if err != nil {
		t.Fatalf("list after delete: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("list len = %d, want 1", len(list))
	}
}

func TestCloseNilStore(t *testing.T) {
	var s *Store
	if err := s.Close(); err != nil {
		t.Fatalf("close nil = %v, want nil", err)
	}
}
