package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache holds serialized aggregate responses with a TTL so repeated
// dashboard loads skip recomputation. A miss is (nil, nil).
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache returns redis-backed cache.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

func (c *Cache) key(name string) string {
	return fmt.Sprintf("analytics:%s", name)
}

// Get returns a cached payload, nil on miss.
func (c *Cache) Get(ctx context.Context, name string) ([]byte, error) {
	data, err := c.client.Get(ctx, c.key(name)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Save stores a payload under the configured TTL.
func (c *Cache) Save(ctx context.Context, name string, payload []byte) error {
	return c.client.Set(ctx, c.key(name), payload, c.ttl).Err()
}
