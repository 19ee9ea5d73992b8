package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// HashKey is the redis hash holding the wallet entries
const HashKey = "guiverse:wallet"

// Redis is a Store backed by a redis hash
type Redis struct {
	client *redis.Client
	logger zerolog.Logger
}

// NewRedis connects to redis and verifies the connection
func NewRedis(redisURL string, logger zerolog.Logger) (*Redis, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info().Str("redis_addr", opt.Addr).Msg("Connected to Redis successfully")

	return NewRedisWithClient(client, logger), nil
}

// NewRedisWithClient wraps an existing client
func NewRedisWithClient(client *redis.Client, logger zerolog.Logger) *Redis {
	return &Redis{
		client: client,
		logger: logger.With().Str("component", "storage").Logger(),
	}
}

func (r *Redis) Get(ctx context.Context, key string) (string, error) {
	value, err := r.client.HGet(ctx, HashKey, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to get %s: %w", key, err)
	}
	return value, nil
}

func (r *Redis) Set(ctx context.Context, key, value string) error {
	if err := r.client.HSet(ctx, HashKey, key, value).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	r.logger.Debug().Str("key", key).Msg("Stored wallet entry")
	return nil
}

func (r *Redis) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := r.client.HDel(ctx, HashKey, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete %v: %w", keys, err)
	}

	r.logger.Debug().Strs("keys", keys).Msg("Removed wallet entries")
	return nil
}

// Close closes the Redis connection
func (r *Redis) Close() error {
	return r.client.Close()
}
