package cache

import (
	"context"
	"time"
)

// Cache defines the interface for the redirect hot-path cache
// (short code -> original URL). Implementations must be safe for
// concurrent use; errors from the cache must never fail a request.
type Cache interface {
	// Set stores a key-value pair with expiration
	Set(ctx context.Context, key string, value string, ttl time.Duration) error

	// Get retrieves a value by key; returns "" (no error) on a miss
	Get(ctx context.Context, key string) (string, error)

	// Delete removes a key from cache
	Delete(ctx context.Context, key string) error

	// Close closes the cache connection
	Close() error
}
