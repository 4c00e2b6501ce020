package store

import "errors"

// ErrNotFound is returned when no value exists for a key.
var ErrNotFound = errors.New("no value for key")

// Store is the key-value persistence contract. Callers treat write failures
// as non-fatal: the cached snapshot is opportunistic, never authoritative.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Close() error
}
