package krishicash

import (
	"context"
	"fmt"
	"strings"

	apperrors "github.com/louisbranch/krishicash/internal/platform/errors"
	"github.com/louisbranch/krishicash/internal/services/game/storage"
	"github.com/louisbranch/krishicash/internal/services/game/storage/bbolt"
	"github.com/louisbranch/krishicash/internal/services/game/storage/file"
	"github.com/louisbranch/krishicash/internal/services/game/storage/memory"
	"github.com/louisbranch/krishicash/internal/services/game/storage/postgres"
	"github.com/louisbranch/krishicash/internal/services/game/storage/s3"
	"github.com/louisbranch/krishicash/internal/services/game/storage/sqlite"
)

// openRecordStore builds the backend named by cfg.Store. The returned close
// func is always safe to call.
func openRecordStore(ctx context.Context, cfg Config) (storage.RecordStore, func() error, error) {
	noop := func() error { return nil }

	switch strings.ToLower(strings.TrimSpace(cfg.Store)) {
	case StoreMemory, StoreNone:
		return memory.New(), noop, nil
	case StoreFile:
		store, err := file.Open(cfg.DataDir)
		if err != nil {
			return nil, noop, err
		}
		return store, noop, nil
	case StoreSQLite:
		store, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, noop, fmt.Errorf("open sqlite store: %w", err)
		}
		return store, store.Close, nil
	case StoreBolt:
		store, err := bbolt.Open(cfg.BoltPath)
		if err != nil {
			return nil, noop, fmt.Errorf("open bolt store: %w", err)
		}
		return store, store.Close, nil
	case StorePostgres:
		store, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, noop, fmt.Errorf("open postgres store: %w", err)
		}
		return store, store.Close, nil
	case StoreS3:
		store, err := s3.New(ctx, s3.Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			PathStyle: cfg.S3PathStyle,
		})
		if err != nil {
			return nil, noop, fmt.Errorf("open s3 store: %w", err)
		}
		return store, noop, nil
	default:
		return nil, noop, apperrors.WithMetadata(apperrors.CodeStoreUnsupported,
			fmt.Sprintf("unknown store %q", cfg.Store),
			map[string]string{"store": cfg.Store})
	}
}
