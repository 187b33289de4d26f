// Package file keeps one save per account as a JSON file in a directory,
// the local-device backend.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/louisbranch/krishicash/internal/services/game/storage"
)

const fileExt = ".json"

// Store writes records under dir. Writes go to a temp file that is renamed
// into place, so a crash never leaves a half-written save.
type Store struct {
	dir string
}

var _ storage.RecordStore = (*Store)(nil)

// Open prepares dir, creating it when missing.
func Open(dir string) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("save directory is required")
	}
	dir = filepath.Clean(dir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create save directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the directory holding the saves.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) path(accountID string) string {
	return filepath.Join(s.dir, accountID+fileExt)
}

// Get reads the record for accountID. The payload is the whole file; the
// header fields are read back from it.
func (s *Store) Get(ctx context.Context, accountID string) (storage.Record, error) {
	if err := ctx.Err(); err != nil {
		return storage.Record{}, err
	}
	data, err := os.ReadFile(s.path(accountID))
	if errors.Is(err, fs.ErrNotExist) {
		return storage.Record{}, storage.ErrNotFound
	}
	if err != nil {
		return storage.Record{}, fmt.Errorf("read save %s: %w", accountID, err)
	}

	rec := storage.Record{AccountID: accountID, Payload: data}
	var header struct {
		SchemaVersion int    `json:"schema_version"`
		SaveID        string `json:"save_id"`
	}
	if json.Unmarshal(data, &header) == nil {
		rec.SchemaVersion = header.SchemaVersion
		rec.SaveID = header.SaveID
	}
	return rec, nil
}

// Put writes rec atomically.
func (s *Store) Put(ctx context.Context, rec storage.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(s.dir, "."+rec.AccountID+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp save: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(rec.Payload); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("write temp save: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("sync temp save: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("close temp save: %w", err)
	}
	if err := os.Rename(tmpName, s.path(rec.AccountID)); err != nil {
		cleanup()
		return fmt.Errorf("replace save %s: %w", rec.AccountID, err)
	}
	return nil
}

// Delete removes the save file for accountID.
func (s *Store) Delete(ctx context.Context, accountID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := os.Remove(s.path(accountID))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete save %s: %w", accountID, err)
	}
	return nil
}
