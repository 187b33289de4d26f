// Package storage persists game saves.
//
// Gateway is what the application talks to: it loads and stores whole game
// states per account. SaveGateway implements it on top of a RecordStore,
// which only moves encoded save records in and out of a backend. Encoding,
// version migration and validation live in the savefile subpackage, so every
// backend shares one wire format.
//
// Backends live in subpackages: memory, file, sqlite, postgres and s3.
//
// Common error types:
//   - ErrNotFound: no save exists for the account
//   - ErrAccountRequired: the account id is empty or unsafe as a key
package storage
