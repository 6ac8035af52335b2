// internal/common/database/redis.go
package database

import (
	"context"
	"fmt"
	"time"

	"guardmatch/internal/common/config"

	"github.com/redis/go-redis/v9"
)

// RedisClient wraps the connection used by the postcode geo cache.
type RedisClient struct {
	Client *redis.Client
}

// NewRedis creates the cache client. Timeouts are kept tight: a slow
// cache must never hold up a recommendation request, the geo layer
// falls through to the upstream resolver on any error.
func NewRedis(cfg config.RedisConfig) (*RedisClient, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	return &RedisClient{Client: rdb}, nil
}

// Ping tests the cache connection.
func (c *RedisClient) Ping(ctx context.Context) error {
	if err := c.Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Close closes the cache connection.
func (c *RedisClient) Close() error {
	if c.Client != nil {
		return c.Client.Close()
	}
	return nil
}
