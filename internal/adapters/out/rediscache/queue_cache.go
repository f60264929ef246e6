// Package rediscache caches the per-unit queue read model in Redis. The
// database stays authoritative: any Redis problem degrades to a cache miss
// and is logged, never surfaced.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"rotafila/internal/core/domain/model/kernel"
	"rotafila/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "rotafila.queue."

// QueueCache implements the QueueCache port on top of Redis.
type QueueCache struct {
	redis  redis.UniversalClient
	ttl    time.Duration
	logger *slog.Logger
}

// NewQueueCache creates a cache with the given entry TTL.
func NewQueueCache(client redis.UniversalClient, ttl time.Duration) *QueueCache {
	return &QueueCache{
		redis:  client,
		ttl:    ttl,
		logger: slog.With("component", "queue_cache"),
	}
}

// snapshotDTO is the Redis wire format of one queue entry.
type snapshotDTO struct {
	CourierID  string     `json:"courierId"`
	Name       string     `json:"name"`
	Status     string     `json:"status"`
	Position   time.Time  `json:"position"`
	DepartedAt *time.Time `json:"departedAt,omitempty"`
}

func unitKey(unit kernel.Unit) string {
	return keyPrefix + unit.String()
}

// Get returns the cached queue for a unit. Any failure, including a corrupt
// payload, counts as a miss.
func (c *QueueCache) Get(ctx context.Context, unit kernel.Unit) ([]ports.QueueSnapshot, bool) {
	payload, err := c.redis.Get(ctx, unitKey(unit)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("queue cache read failed", "unit", unit.String(), "error", err)
		}
		return nil, false
	}

	var dtos []snapshotDTO
	if err := json.Unmarshal([]byte(payload), &dtos); err != nil {
		c.logger.Warn("queue cache payload corrupt", "unit", unit.String(), "error", err)
		c.Invalidate(ctx, unit)
		return nil, false
	}

	queue := make([]ports.QueueSnapshot, 0, len(dtos))
	for _, dto := range dtos {
		id, err := kernel.UUIDFromString(dto.CourierID)
		if err != nil {
			c.logger.Warn("queue cache payload corrupt", "unit", unit.String(), "error", err)
			c.Invalidate(ctx, unit)
			return nil, false
		}

		queue = append(queue, ports.QueueSnapshot{
			CourierID:  id,
			Name:       dto.Name,
			Status:     dto.Status,
			Position:   dto.Position,
			DepartedAt: dto.DepartedAt,
		})
	}

	return queue, true
}

// Set stores the queue for a unit with the cache TTL.
func (c *QueueCache) Set(ctx context.Context, unit kernel.Unit, queue []ports.QueueSnapshot) {
	dtos := make([]snapshotDTO, 0, len(queue))
	for _, entry := range queue {
		dtos = append(dtos, snapshotDTO{
			CourierID:  entry.CourierID.String(),
			Name:       entry.Name,
			Status:     entry.Status,
			Position:   entry.Position,
			DepartedAt: entry.DepartedAt,
		})
	}

	payload, err := json.Marshal(dtos)
	if err != nil {
		c.logger.Error("marshal queue snapshot", "unit", unit.String(), "error", err)
		return
	}

	if err := c.redis.Set(ctx, unitKey(unit), payload, c.ttl).Err(); err != nil {
		c.logger.Warn("queue cache write failed", "unit", unit.String(), "error", err)
	}
}

// Invalidate drops the cached queue of a unit.
func (c *QueueCache) Invalidate(ctx context.Context, unit kernel.Unit) {
	if err := c.redis.Del(ctx, unitKey(unit)).Err(); err != nil {
		c.logger.Warn("queue cache invalidation failed", "unit", unit.String(), "error", err)
	}
}

// Sweep drops every cached unit queue.
func (c *QueueCache) Sweep(ctx context.Context) {
	keys := make([]string, 0, len(kernel.AllUnits()))
	for _, unit := range kernel.AllUnits() {
		keys = append(keys, unitKey(unit))
	}

	if err := c.redis.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("queue cache sweep failed", "error", err)
		return
	}

	c.logger.Info("queue cache swept", "units", len(keys))
}
