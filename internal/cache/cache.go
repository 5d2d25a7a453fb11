package cache

import (
	"context"
	"time"
)

// Cache is the price cache abstraction. A memory implementation serves
// single-instance runs; Redis serves deployments where several consumers
// share lookups.
type Cache interface {
	// Get retrieves a value by key. Returns ErrMiss if not found.
	Get(ctx context.Context, key string) (string, error)

	// Set stores a value with the given TTL.
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// Close releases any resources held by the cache.
	Close() error
}

// Error is a sentinel cache error.
type Error string

func (e Error) Error() string { return string(e) }

// ErrMiss indicates the key was not found in the cache.
const ErrMiss Error = "cache miss"
