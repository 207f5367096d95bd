// Package persist stores the weekend schedule in a durable key-value store,
// one entry per day.
package persist

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotFound is returned by KV.Get for a key that was never written.
var ErrNotFound = errors.New("persist: key not found")

// KV is the durable storage used by the Adapter.
type KV interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendDiskv  = "diskv"
	BackendSQLite = "sqlite"
)

// Open creates the KV backend named by backend under dir.
func Open(backend, dir string) (KV, error) {
	if dir == "" {
		return nil, errors.New("persist: data dir is empty")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("persist: create data dir: %w", err)
	}
	switch backend {
	case "", BackendDiskv:
		return NewDiskv(filepath.Join(dir, "plan")), nil
	case BackendSQLite:
		return NewSQLite(filepath.Join(dir, "weekendly.db"))
	default:
		return nil, fmt.Errorf("persist: unknown storage backend %q", backend)
	}
}
