package cache

import (
	"context"
	"time"
)

// Cache stores opaque values with a time to live.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
