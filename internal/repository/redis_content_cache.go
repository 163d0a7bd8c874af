package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/lumina/internal/domain"
	"github.com/redis/go-redis/v9"
)

// DefaultContentKeyPrefix namespaces Lumina keys in a shared Redis.
const DefaultContentKeyPrefix = "lumina:"

// RedisContentCache implements ContentCache on Redis. A zero TTL keeps
// entries until they are overwritten or deleted.
type RedisContentCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisContentCache(client *redis.Client, prefix string, ttl time.Duration) *RedisContentCache {
	if prefix == "" {
		prefix = DefaultContentKeyPrefix
	}
	return &RedisContentCache{client: client, prefix: prefix, ttl: ttl}
}

func (c *RedisContentCache) cacheKey(key domain.CacheKey) string {
	return c.prefix + key.String()
}

func (c *RedisContentCache) Get(ctx context.Context, key domain.CacheKey) (*domain.DailyContent, error) {
	data, err := c.client.Get(ctx, c.cacheKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("content %s: %w", key, ErrNotFound)
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var content domain.DailyContent
	if err := json.Unmarshal(data, &content); err != nil {
		return nil, fmt.Errorf("decoding cached content: %w", err)
	}
	return &content, nil
}

func (c *RedisContentCache) Put(ctx context.Context, key domain.CacheKey, content domain.DailyContent) error {
	if content.IsUnavailable() {
		return nil
	}
	data, err := json.Marshal(content)
	if err != nil {
		return fmt.Errorf("encoding content: %w", err)
	}
	if err := c.client.Set(ctx, c.cacheKey(key), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (c *RedisContentCache) Delete(ctx context.Context, key domain.CacheKey) error {
	if err := c.client.Del(ctx, c.cacheKey(key)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// DialRedis parses a redis:// URL and verifies the server answers PING.
func DialRedis(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}
	return client, nil
}
