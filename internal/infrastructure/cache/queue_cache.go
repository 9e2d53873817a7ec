package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// QueueCache keeps the rendered per-user queue view in Redis for a short TTL
// so repeated reads within a session skip the database. All methods are
// nil-receiver safe: without Redis the cache is simply a miss.
type QueueCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewQueueCache(client *redis.Client, ttl time.Duration) *QueueCache {
	return &QueueCache{client: client, ttl: ttl}
}

func queueKey(userID int) string {
	return fmt.Sprintf("queue:user:%d", userID)
}

func (c *QueueCache) Get(ctx context.Context, userID int) ([]byte, error) {
	if c == nil || c.client == nil {
		return nil, nil
	}
	payload, err := c.client.Get(ctx, queueKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return payload, nil
}

func (c *QueueCache) Set(ctx context.Context, userID int, payload []byte) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Set(ctx, queueKey(userID), payload, c.ttl).Err()
}

func (c *QueueCache) Invalidate(ctx context.Context, userID int) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Del(ctx, queueKey(userID)).Err()
}
