// Package cache provides short-lived storage for computed analysis results.
// Entries are opaque byte blobs with an expiration; callers own the encoding.
package cache

import (
	"context"
	"time"
)

// Store is a key/value cache with per-entry expiration.
// Get reports found=false for missing or expired keys.
type Store interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Ping(ctx context.Context) error
}

// Sweeper is implemented by stores that need expired entries removed explicitly.
// Redis expires keys on its own and does not implement it.
type Sweeper interface {
	DeleteExpired(ctx context.Context) (int64, error)
}
