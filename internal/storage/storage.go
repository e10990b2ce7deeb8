// Package storage defines the key-value contract behind the durable save slot.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound indicates that no value is stored under a key.
var ErrNotFound = errors.New("record not found")

// Store persists opaque string values by key. Put replaces the previous value
// in a single step, so readers see either the old value or the new one.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}
