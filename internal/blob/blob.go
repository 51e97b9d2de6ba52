// Package blob defines the narrow durable storage contract the attendance
// store persists through. Backends only need to move opaque byte payloads
// under fixed keys.
package blob

import "context"

// Store is the persistence contract: get, set, remove. Get returns
// (nil, nil) for a missing key so callers can treat absence as an empty
// collection.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, data []byte) error
	Remove(ctx context.Context, key string) error
}
