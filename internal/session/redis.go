package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "sid:"

// Redis is the shared-state Store for deployments with more than one
// instance. A zero TTL keeps sessions alive until explicit logout,
// matching the memory backend.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

// OpenRedis connects and pings so a bad URL fails at startup, not on the
// first login.
func OpenRedis(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}

func (r *Redis) Create(ctx context.Context, username string) (string, error) {
	sid := uuid.NewString()
	if err := r.client.Set(ctx, sessionKeyPrefix+sid, username, r.ttl).Err(); err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	return sid, nil
}

func (r *Redis) Username(ctx context.Context, sid string) (string, error) {
	username, err := r.client.Get(ctx, sessionKeyPrefix+sid).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("look up session: %w", err)
	}
	return username, nil
}

func (r *Redis) Destroy(ctx context.Context, sid string) error {
	if err := r.client.Del(ctx, sessionKeyPrefix+sid).Err(); err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}
