// Package interfaces defines the storage contracts shared across the
// service. Implementations can be swapped (BadgerDB on device, in-memory
// for tests).
package interfaces

import (
	"context"
	"errors"
)

// ErrNotFound is returned by KeyValueStorage.Get for a missing key.
var ErrNotFound = errors.New("key not found")

// StorageManager provides access to domain-specific storage interfaces.
type StorageManager interface {
	KeyValueStorage() KeyValueStorage
	Close() error
}

// KeyValueStorage provides basic key-value operations over persistent
// device storage.
type KeyValueStorage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	GetAll(ctx context.Context) (map[string]string, error)
}
