package driven

import "context"

// KeyValueStore is the durable storage medium: string keys mapping to
// serialised values. It is the only persistence primitive the cache
// store is built on, so the medium can be swapped without touching callers.
type KeyValueStore interface {
	// Get returns the value for key. The boolean is false when the key is absent.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key, replacing any previous value.
	// The write is durable when Set returns.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the medium.
	Close() error
}
