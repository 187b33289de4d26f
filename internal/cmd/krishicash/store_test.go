package krishicash

import (
	"context"
	"path/filepath"
	"testing"

	apperrors "github.com/louisbranch/krishicash/internal/platform/errors"
	"github.com/louisbranch/krishicash/internal/services/game/storage/bbolt"
	"github.com/louisbranch/krishicash/internal/services/game/storage/file"
	"github.com/louisbranch/krishicash/internal/services/game/storage/memory"
	"github.com/louisbranch/krishicash/internal/services/game/storage/sqlite"
)

func TestOpenRecordStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()

	tests := []struct {
		name  string
		cfg   Config
		check func(t *testing.T, store any)
	}{
		{
			name: "memory",
			cfg:  Config{Store: "memory"},
			check: func(t *testing.T, store any) {
				if _, ok := store.(*memory.Store); !ok {
					t.Fatalf("store = %T, want *memory.Store", store)
				}
			},
		},
		{
			name: "none is memory",
			cfg:  Config{Store: " NONE "},
			check: func(t *testing.T, store any) {
				if _, ok := store.(*memory.Store); !ok {
					t.Fatalf("store = %T, want *memory.Store", store)
				}
			},
		},
		{
			name: "file",
			cfg:  Config{Store: "file", DataDir: filepath.Join(dir, "saves")},
			check: func(t *testing.T, store any) {
				fs, ok := store.(*file.Store)
				if !ok {
					t.Fatalf("store = %T, want *file.Store", store)
				}
				if fs.Dir() != filepath.Join(dir, "saves") {
					t.Fatalf("dir = %q", fs.Dir())
				}
			},
		},
		{
			name: "sqlite",
			cfg:  Config{Store: "sqlite", SQLitePath: filepath.Join(dir, "game.db")},
			check: func(t *testing.T, store any) {
				if _, ok := store.(*sqlite.Store); !ok {
					t.Fatalf("store = %T, want *sqlite.Store", store)
				}
			},
		},
		{
			name: "bolt",
			cfg:  Config{Store: "bolt", BoltPath: filepath.Join(dir, "game.bolt")},
			check: func(t *testing.T, store any) {
				if _, ok := store.(*bbolt.Store); !ok {
					t.Fatalf("store = %T, want *bbolt.Store", store)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, closeStore, err := openRecordStore(ctx, tt.cfg)
			if err != nil {
				t.Fatalf("openRecordStore: %v", err)
			}
			defer func() {
				if err := closeStore(); err != nil {
					t.Fatalf("close: %v", err)
				}
			}()
			tt.check(t, store)
		})
	}
}

func TestOpenRecordStoreUnknownDriver(t *testing.T) {
	t.Parallel()

	_, closeStore, err := openRecordStore(context.Background(), Config{Store: "floppy"})
	if err == nil {
		t.Fatal("expected error for unknown store")
	}
	if code := apperrors.CodeOf(err); code != apperrors.CodeStoreUnsupported {
		t.Fatalf("code = %s, want %s", code, apperrors.CodeStoreUnsupported)
	}
	if err := closeStore(); err != nil {
		t.Fatalf("close after failure: %v", err)
	}
}

func TestOpenRecordStoreS3RequiresBucket(t *testing.T) {
	t.Parallel()

	if _, _, err := openRecordStore(context.Background(), Config{Store: "s3"}); err == nil {
		t.Fatal("expected error for s3 without bucket")
	}
}

func TestOpenRecordStoreFileRequiresDir(t *testing.T) {
	t.Parallel()

	if _, _, err := openRecordStore(context.Background(), Config{Store: "file"}); err == nil {
		t.Fatal("expected error for file store without dir")
	}
}
