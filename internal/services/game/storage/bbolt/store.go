// Package bbolt keeps saves in a single-file BoltDB database, an embedded
// alternative to the sqlite backend that needs no schema migrations.
package bbolt

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.etcd.io/bbolt"

	"github.com/louisbranch/krishicash/internal/services/game/storage"
	"github.com/louisbranch/krishicash/internal/services/game/storage/savefile"
)

const (
	payloadBucket = "saves"
	headerBucket  = "save_headers"
)

// header is the listing view of a record, stored next to the payload.
type header struct {
	SaveID        string           `json:"save_id"`
	SchemaVersion int              `json:"schema_version"`
	SavedAt       time.Time        `json:"saved_at"`
	Summary       savefile.Summary `json:"summary"`
}

// Store is a BoltDB-backed RecordStore.
type Store struct {
	db *bbolt.DB
}

var (
	_ storage.RecordStore = (*Store)(nil)
	_ storage.Lister      = (*Store)(nil)
)

// Open opens or creates the database at path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	db, err := bbolt.Open(cleanPath, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open storage db: %w", err)
	}

	store := &Store{db: db}
	if err := store.ensureBuckets(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying BoltDB database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Get returns the record for accountID.
func (s *Store) Get(ctx context.Context, accountID string) (storage.Record, error) {
	if err := ctx.Err(); err != nil {
		return storage.Record{}, err
	}

	rec := storage.Record{AccountID: accountID}
	err := s.db.View(func(tx *bbolt.Tx) error {
		payload := tx.Bucket([]byte(payloadBucket)).Get([]byte(accountID))
		if payload == nil {
			return storage.ErrNotFound
		}
		// Bolt memory is only valid inside the transaction.
		rec.Payload = append([]byte(nil), payload...)

		if raw := tx.Bucket([]byte(headerBucket)).Get([]byte(accountID)); raw != nil {
			var h header
			if err := json.Unmarshal(raw, &h); err != nil {
				return fmt.Errorf("unmarshal save header %s: %w", accountID, err)
			}
			applyHeader(&rec, h)
		}
		return nil
	})
	if err != nil {
		return storage.Record{}, err
	}
	return rec, nil
}

// Put stores rec and its header in one transaction.
func (s *Store) Put(ctx context.Context, rec storage.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	raw, err := json.Marshal(header{
		SaveID:        rec.SaveID,
		SchemaVersion: rec.SchemaVersion,
		SavedAt:       rec.SavedAt.UTC(),
		Summary:       rec.Summary,
	})
	if err != nil {
		return fmt.Errorf("marshal save header: %w", err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		key := []byte(rec.AccountID)
		if err := tx.Bucket([]byte(payloadBucket)).Put(key, rec.Payload); err != nil {
			return fmt.Errorf("put save %s: %w", rec.AccountID, err)
		}
		if err := tx.Bucket([]byte(headerBucket)).Put(key, raw); err != nil {
			return fmt.Errorf("put save header %s: %w", rec.AccountID, err)
		}
		return nil
	})
}

// Delete removes the record for accountID.
func (s *Store) Delete(ctx context.Context, accountID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		key := []byte(accountID)
		if err := tx.Bucket([]byte(payloadBucket)).Delete(key); err != nil {
			return fmt.Errorf("delete save %s: %w", accountID, err)
		}
		if err := tx.Bucket([]byte(headerBucket)).Delete(key); err != nil {
			return fmt.Errorf("delete save header %s: %w", accountID, err)
		}
		return nil
	})
}

// List returns every save header, most recent first.
func (s *Store) List(ctx context.Context) ([]storage.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []storage.Record
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(headerBucket)).ForEach(func(k, v []byte) error {
			var h header
			if err := json.Unmarshal(v, &h); err != nil {
				return fmt.Errorf("unmarshal save header %s: %w", k, err)
			}
			rec := storage.Record{AccountID: string(k)}
			applyHeader(&rec, h)
			out = append(out, rec)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].SavedAt.Equal(out[j].SavedAt) {
			return out[i].SavedAt.After(out[j].SavedAt)
		}
		return out[i].AccountID < out[j].AccountID
	})
	return out, nil
}

func (s *Store) ensureBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		for _, name := range []string{payloadBucket, headerBucket} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return fmt.Errorf("create %s bucket: %w", name, err)
			}
		}
		return nil
	})
}

func applyHeader(rec *storage.Record, h header) {
	rec.SaveID = h.SaveID
	rec.SchemaVersion = h.SchemaVersion
	rec.SavedAt = h.SavedAt.UTC()
	rec.Summary = h.Summary
}
