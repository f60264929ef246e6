package ports

import (
	"context"
	"time"

	"rotafila/internal/core/domain/model/kernel"
)

// QueueSnapshot is the cached read model of one unit queue entry.
type QueueSnapshot struct {
	CourierID  kernel.UUID
	Name       string
	Status     string
	Position   time.Time
	DepartedAt *time.Time
}

// QueueCache is a read-through cache of unit queues. The database stays
// authoritative: writers invalidate after commit, the hourly sweep clears
// everything as a backstop.
type QueueCache interface {
	// Get returns the cached queue for a unit, or a miss (nil, false).
	Get(ctx context.Context, unit kernel.Unit) ([]QueueSnapshot, bool)

	// Set stores the queue for a unit with the cache's TTL.
	Set(ctx context.Context, unit kernel.Unit, queue []QueueSnapshot)

	// Invalidate drops the cached queue of a unit.
	Invalidate(ctx context.Context, unit kernel.Unit)

	// Sweep drops every cached queue.
	Sweep(ctx context.Context)
}
