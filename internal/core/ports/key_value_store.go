// Package ports defines the outbound contracts of the order-lifecycle core:
// durable storage, the account-partitioned history repository, and the
// session that supplies the current actor.
package ports

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by KeyValueStore.Get when no value exists for
// the requested key.
var ErrKeyNotFound = errors.New("key not found")

// KeyValueStore is the durable blob storage behind the order history.
// The whole history mapping is serialized under a single fixed key; Put
// replaces the previous value wholesale rather than patching it.
type KeyValueStore interface {
	// Get returns the value stored under key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put durably stores value under key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error
}
