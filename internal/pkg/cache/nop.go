package cache

import (
	"context"
	"fmt"
	"time"
)

type nopCache struct{}

// NewNopCache returns a cache that never hits. Used when no redis address is
// configured and in tests.
func NewNopCache() Cache { return nopCache{} }

func (nopCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}

func (nopCache) Get(ctx context.Context, key string) (string, error) { return "", nil }

func (nopCache) GenerateKey(operation, key string) string {
	return fmt.Sprintf("nop:%s:%s", operation, key)
}
