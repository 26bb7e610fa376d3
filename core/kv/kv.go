// Package kv defines the key-value cache port consumed by the pricing core.
// Implementations live under adapters/cache.
package kv

import (
	"context"
	"time"
)

// ErrMiss is returned by Get when the key has no value.
type ErrMiss struct{ Key string }

func (e *ErrMiss) Error() string { return "cache miss: " + e.Key }

// IsMiss reports whether err is a cache miss.
func IsMiss(err error) bool {
	_, ok := err.(*ErrMiss)
	return ok
}

// Store is the cache interface the calculators depend on. Lookup failures are
// absorbed by callers (degraded-but-available policy); no calculator fails a
// quote because a Store call errored.
type Store interface {
	// Get returns the value for key, or *ErrMiss when absent
	Get(ctx context.Context, key string) (string, error)

	// Set writes value under key with a TTL
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// Incr atomically increments the integer value at key, returning the
	// new value. Missing keys start at zero.
	Incr(ctx context.Context, key string) (int64, error)

	// Expire sets the TTL of an existing key
	Expire(ctx context.Context, key string, ttl time.Duration) error

	// TTL returns the remaining lifetime of key
	TTL(ctx context.Context, key string) (time.Duration, error)
}
