// Package cache defines the contract for the read-through cache used by the
// postgres repositories. The interface allows swapping implementations
// (Redis, in-memory) without touching repository code.
package cache

import (
	"context"
	"time"
)

type Cache interface {
	// Get looks up key and unmarshals the stored value into dest.
	// Returns found=false on a miss, leaving dest untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores value under key with the given TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes keys from the cache. Missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error

	// Ping verifies the backing store is reachable.
	Ping(ctx context.Context) error
}
