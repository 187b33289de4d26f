package file

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/louisbranch/krishicash/internal/services/game/domain/engine"
	"github.com/louisbranch/krishicash/internal/services/game/storage"
)

func TestOpen_RequiresDir(t *testing.T) {
	if _, err := Open("  "); err == nil {
		t.Fatal("expected error for empty dir")
	}
}

func TestStore_PutGetDelete(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "saves")
	s, err := Open(dir)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if s.Dir() != dir {
		t.Fatalf("dir = %s, want %s", s.Dir(), dir)
	}

	if _, err := s.Get(ctx, "farmer"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("get missing = %v, want ErrNotFound", err)
	}

	payload := []byte(`{"schema_version":1,"save_id":"abc"}`)
	if err := s.Put(ctx, storage.Record{AccountID: "farmer", Payload: payload}); err != nil {
		t.Fatalf("put: %v", err)
	}
	rec, err := s.Get(ctx, "farmer")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(rec.Payload) != string(payload) || rec.SaveID != "abc" || rec.SchemaVersion != 1 {
		t.Fatalf("record = %+v", rec)
	}

	if err := s.Put(ctx, storage.Record{AccountID: "farmer", Payload: []byte(`{"schema_version":1,"save_id":"def"}`)}); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "farmer.json" {
		t.Fatalf("dir entries = %v, want only farmer.json", entries)
	}

	if err := s.Delete(ctx, "farmer"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.Delete(ctx, "farmer"); err != nil {
		t.Fatalf("delete missing: %v", err)
	}
}

func TestStore_LegacyFileThroughGateway(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	legacy := `{"month":1,"balance":0,"monthlyIncome":150000,"savings":0,"stabilityScore":55,
		"hasInsurance":false,"insuranceAmount":0,"debt":0,"loanMonthsRemaining":0,
		"consecutiveSavingMonths":0,"totalSavedThisStreak":0,"gamePhase":"intro",
		"currentEvent":null,"monthHistory":[],"selectedGoal":null,"goalAchieved":false,
		"propertyConfiscated":false,"difficulty":"medium","expenseMultiplier":1}`
	if err := os.WriteFile(filepath.Join(dir, "farmer.json"), []byte(legacy), 0o644); err != nil {
		t.Fatalf("write legacy: %v", err)
	}
	s, err := Open(dir)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	got, err := storage.NewGateway(s).Load(ctx, "farmer")
	if err != nil {
		t.Fatalf("load legacy: %v", err)
	}
	want := engine.InitialState()
	if got.Phase != want.Phase || got.MonthlyIncome != want.MonthlyIncome || got.StabilityScore != 55 {
		t.Fatalf("legacy state = %+v", got)
	}
}

func TestStore_CanceledContext(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.Put(ctx, storage.Record{AccountID: "farmer"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("put canceled = %v, want context.Canceled", err)
	}
}
