package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"travel-booking/internal/data/entity"
	"travel-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Entry resolves a tracking code to the record that owns it. Only the
// resolution is cached; the record itself is always read fresh so that a
// lookup never reports a stale status.
type Entry struct {
	Kind entity.RecordKind `json:"kind"`
	ID   uuid.UUID         `json:"id"`
}

type TrackingCache interface {
	// Get returns nil, nil on a miss.
	Get(ctx context.Context, code string) (*Entry, error)
	Set(ctx context.Context, code string, entry Entry) error
	Invalidate(ctx context.Context, codes ...string) error
}

const keyPrefix = "tracking:"

type redisTrackingCache struct {
	client redis.UniversalClient
	ttl    time.Duration
	log    *zap.Logger
}

func NewRedisTrackingCache(client redis.UniversalClient, ttl time.Duration, log *zap.Logger) TrackingCache {
	return &redisTrackingCache{
		client: client,
		ttl:    ttl,
		log:    log.With(zap.String("cache", "tracking")),
	}
}

func (c *redisTrackingCache) Get(ctx context.Context, code string) (*Entry, error) {
	raw, err := c.client.Get(ctx, keyPrefix+code).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get tracking cache %s: %w", code, err)
	}

	var entry Entry
	if err := json.Unmarshal(raw, &entry); err != nil {
		// A corrupt entry is treated as a miss and dropped.
		c.log.Warn("Discarding unreadable cache entry", zap.String("code", code), zap.Error(err))
		_ = c.client.Del(ctx, keyPrefix+code).Err()
		return nil, nil
	}

	return &entry, nil
}

func (c *redisTrackingCache) Set(ctx context.Context, code string, entry Entry) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode tracking cache entry: %w", err)
	}

	if err := c.client.Set(ctx, keyPrefix+code, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("set tracking cache %s: %w", code, err)
	}
	return nil
}

func (c *redisTrackingCache) Invalidate(ctx context.Context, codes ...string) error {
	if len(codes) == 0 {
		return nil
	}

	keys := make([]string, len(codes))
	for i, code := range codes {
		keys[i] = keyPrefix + code
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("invalidate tracking cache: %w", err)
	}
	return nil
}

type noopTrackingCache struct{}

// NewNoopTrackingCache is used when REDIS_ADDR is empty.
func NewNoopTrackingCache() TrackingCache { return noopTrackingCache{} }

func (noopTrackingCache) Get(context.Context, string) (*Entry, error) { return nil, nil }
func (noopTrackingCache) Set(context.Context, string, Entry) error    { return nil }
func (noopTrackingCache) Invalidate(context.Context, ...string) error { return nil }

// NewRedisClient opens a client for cfg and pings it.
func NewRedisClient(ctx context.Context, cfg utils.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", cfg.Addr, err)
	}

	return client, nil
}
