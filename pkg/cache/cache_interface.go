package cache

import (
	"context"
	"time"
)

// Cache is the contract of the cache layer.
// Values are JSON encoded; implementations may be Redis or in-memory.
type Cache interface {
	// Get unmarshals the cached value into dest.
	// found=false on a miss, dest untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	Delete(ctx context.Context, keys ...string) error

	// DeletePattern removes every key matching a glob such as "admin:*"
	DeletePattern(ctx context.Context, pattern string) error

	Ping(ctx context.Context) error
}
