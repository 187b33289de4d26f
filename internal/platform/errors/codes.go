package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Save errors
	CodeSaveNotFound           Code = "SAVE_NOT_FOUND"
	CodeSaveCorrupt            Code = "SAVE_CORRUPT"
	CodeSaveVersionUnsupported Code = "SAVE_VERSION_UNSUPPORTED"
	CodeSaveAccountRequired    Code = "SAVE_ACCOUNT_REQUIRED"

	// Store errors
	CodeStoreUnavailable Code = "STORE_UNAVAILABLE"
	CodeStoreUnsupported Code = "STORE_UNSUPPORTED"
)

// Recoverable reports whether a failed load with this code should fall back
// to a fresh game instead of surfacing the failure.
func (c Code) Recoverable() bool {
	switch c {
	case CodeSaveNotFound, CodeSaveCorrupt, CodeSaveVersionUnsupported:
		return true
	default:
		return false
	}
}
