// Package kvstore is the synchronous string-keyed blob storage the ledger
// persists into. Values are opaque bytes; the ledger stores JSON documents.
package kvstore

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by Get when the key has never been written or
// has been deleted.
var ErrNotFound = errors.New("key not found")

// Entry is one key/value pair of a batch write.
type Entry struct {
	Key   string
	Value []byte
}

// Store is a persistent key-value store.
type Store interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(key string) ([]byte, error)
	// Set replaces the value stored under key.
	Set(key string, value []byte) error
	// SetBatch writes several keys. Backends apply the batch as a unit
	// where they can.
	SetBatch(entries []Entry) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(key string) error
	// Clear removes every key.
	Clear() error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Backends lists the supported backend names.
var Backends = []string{BackendFile, BackendSQLite, BackendMemory}

// Options configures Open.
type Options struct {
	Backend    string
	Directory  string
	SQLiteFile string
}

// Open creates the store selected by opts.Backend.
func Open(opts Options) (Store, error) {
	switch strings.ToLower(opts.Backend) {
	case BackendMemory:
		return NewMemoryStore(), nil
	case BackendFile, "":
		return NewFileStore(opts.Directory)
	case BackendSQLite:
		return NewSQLiteStore(sqlitePath(opts.Directory, opts.SQLiteFile))
	default:
		return nil, fmt.Errorf("unknown storage backend %q", opts.Backend)
	}
}

func validKey(key string) error {
	if key == "" {
		return errors.New("key must not be empty")
	}
	if strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return fmt.Errorf("invalid key %q", key)
	}
	return nil
}
