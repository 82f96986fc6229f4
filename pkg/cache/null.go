package cache

import (
	"context"
	"time"
)

// NullCache discards everything. It backs --no-cache runs and tests
// that need deterministic renders.
type NullCache struct{}

// NewNullCache returns a cache where every Get is a miss.
func NewNullCache() Cache {
	return &NullCache{}
}

func (c *NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

func (c *NullCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return nil
}

func (c *NullCache) Delete(ctx context.Context, key string) error {
	return nil
}

func (c *NullCache) Close() error {
	return nil
}

var _ Cache = (*NullCache)(nil)
