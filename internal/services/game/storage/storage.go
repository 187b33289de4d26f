package storage

import (
	"context"
	"strings"
	"time"

	apperrors "github.com/louisbranch/krishicash/internal/platform/errors"
	"github.com/louisbranch/krishicash/internal/services/game/domain/state"
	"github.com/louisbranch/krishicash/internal/services/game/storage/savefile"
)

// ErrNotFound indicates no save exists for an account.
var ErrNotFound = apperrors.New(apperrors.CodeSaveNotFound, "save not found")

// ErrAccountRequired indicates a missing or malformed account id.
var ErrAccountRequired = apperrors.New(apperrors.CodeSaveAccountRequired, "account id is required")

// Gateway loads and stores whole game states per account.
type Gateway interface {
	Load(ctx context.Context, accountID string) (state.GameState, error)
	Save(ctx context.Context, accountID string, s state.GameState) error
	Delete(ctx context.Context, accountID string) error
}

// Record is one encoded save as a backend stores it. Summary duplicates a
// few state fields so relational backends can index them.
type Record struct {
	AccountID     string
	SaveID        string
	SchemaVersion int
	SavedAt       time.Time
	Summary       savefile.Summary
	Payload       []byte
}

// RecordStore moves records in and out of a backend. Get returns ErrNotFound
// for unknown accounts; Delete of an unknown account is not an error.
type RecordStore interface {
	Get(ctx context.Context, accountID string) (Record, error)
	Put(ctx context.Context, rec Record) error
	Delete(ctx context.Context, accountID string) error
}

// NormalizeAccountID trims id and rejects values that cannot be used as a
// file name or object key.
func NormalizeAccountID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" || id == "." || id == ".." {
		return "", ErrAccountRequired
	}
	if strings.ContainsAny(id, `/\`) || strings.IndexFunc(id, isControl) >= 0 {
		return "", apperrors.WithMetadata(apperrors.CodeSaveAccountRequired, "account id contains invalid characters",
			map[string]string{"account_id": id})
	}
	return id, nil
}

func isControl(r rune) bool {
	return r < 0x20 || r == 0x7f
}

// Lister is implemented by backends that can enumerate saves. Listed
// records carry header and summary fields but no payload.
type Lister interface {
	List(ctx context.Context) ([]Record, error)
}
