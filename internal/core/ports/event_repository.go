package ports

import (
	"context"
	"time"

	"rotafila/internal/core/domain/model/delivery"
	"rotafila/internal/core/domain/model/kernel"
)

// EventRepository defines the persistence contract for delivery events.
type EventRepository interface {
	// Add persists a new delivery event.
	Add(ctx context.Context, aggregate *delivery.Event) error

	// Update persists changes to an existing delivery event.
	Update(ctx context.Context, aggregate *delivery.Event) error

	// GetOpenByCourier retrieves the courier's open event, the one without a
	// return time. Returns a not-found error when the courier is not out.
	GetOpenByCourier(ctx context.Context, courierID kernel.UUID) (*delivery.Event, error)

	// GetAllOpen retrieves every open event across units. The reconciliation
	// job reads these to re-derive pending transitions after a restart.
	GetAllOpen(ctx context.Context) ([]*delivery.Event, error)

	// GetForPeriod retrieves events of a unit whose call time falls inside
	// [from, to). Feeds the shift report.
	GetForPeriod(ctx context.Context, unit kernel.Unit, from, to time.Time) ([]*delivery.Event, error)

	// PurgeBefore deletes events called before the cutoff and returns how
	// many rows went away.
	PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
