package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"bookme/pkg/utils"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// AvailabilityCache keeps per-room, per-day availability maps in Redis.
// A nil client means caching is disabled and every call is a pass-through,
// so callers never need to branch on whether Redis is configured.
type AvailabilityCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

// NewAvailabilityCache connects to Redis using the given config. When Redis
// is disabled or unreachable the returned cache degrades to a no-op.
func NewAvailabilityCache(config utils.RedisConfig, log *zap.Logger) *AvailabilityCache {
	cache := &AvailabilityCache{
		ttl: time.Duration(config.TTLSeconds) * time.Second,
		log: log.With(zap.String("component", "availability_cache")),
	}

	if !config.Enabled {
		return cache
	}

	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		cache.log.Warn("Redis unreachable, availability cache disabled",
			zap.Error(err),
			zap.String("addr", config.Addr),
		)
		return cache
	}

	cache.client = client
	cache.log.Info("Availability cache enabled",
		zap.String("addr", config.Addr),
		zap.Duration("ttl", cache.ttl),
	)
	return cache
}

func availabilityKey(roomID uuid.UUID, date time.Time) string {
	return fmt.Sprintf("availability:%s:%s", roomID.String(), date.Format("2006-01-02"))
}

// Get returns the cached availability map for (room, day), if present.
func (c *AvailabilityCache) Get(ctx context.Context, roomID uuid.UUID, date time.Time) (map[string]bool, bool) {
	if c.client == nil {
		return nil, false
	}

	raw, err := c.client.Get(ctx, availabilityKey(roomID, date)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("Cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var availability map[string]bool
	if err := json.Unmarshal(raw, &availability); err != nil {
		c.log.Warn("Cache entry corrupt, dropping", zap.Error(err))
		c.client.Del(ctx, availabilityKey(roomID, date))
		return nil, false
	}

	return availability, true
}

// Set stores the availability map for (room, day) with the configured TTL.
func (c *AvailabilityCache) Set(ctx context.Context, roomID uuid.UUID, date time.Time, availability map[string]bool) {
	if c.client == nil {
		return
	}

	raw, err := json.Marshal(availability)
	if err != nil {
		return
	}

	if err := c.client.Set(ctx, availabilityKey(roomID, date), raw, c.ttl).Err(); err != nil {
		c.log.Warn("Cache write failed", zap.Error(err))
	}
}

// Invalidate drops the cached entries for a room on the given days. Booking
// mutations call this for every (room, day) pair they touch.
func (c *AvailabilityCache) Invalidate(ctx context.Context, roomID uuid.UUID, dates ...time.Time) {
	if c.client == nil || len(dates) == 0 {
		return
	}

	keys := make([]string, len(dates))
	for i, date := range dates {
		keys[i] = availabilityKey(roomID, date)
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn("Cache invalidation failed", zap.Error(err))
	}
}

// Close releases the Redis connection.
func (c *AvailabilityCache) Close() {
	if c.client != nil {
		c.client.Close()
	}
}
