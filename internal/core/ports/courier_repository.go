package ports

import (
	"context"

	"rotafila/internal/core/domain/model/courier"
	"rotafila/internal/core/domain/model/kernel"
)

// CourierRepository defines the persistence contract for courier aggregates.
type CourierRepository interface {
	// Add persists a new courier aggregate to storage.
	Add(ctx context.Context, aggregate *courier.Courier) error

	// Update persists changes to an existing courier aggregate.
	Update(ctx context.Context, aggregate *courier.Courier) error

	// Get retrieves a courier aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error)

	// GetByPhone retrieves a courier by contact phone.
	// Used by the self-service check-in, which identifies couriers by number.
	GetByPhone(ctx context.Context, phone kernel.Phone) (*courier.Courier, error)

	// GetAllInUnit retrieves every courier registered in a unit, active or
	// not. The rotation reads this and filters in the domain.
	GetAllInUnit(ctx context.Context, unit kernel.Unit) ([]*courier.Courier, error)

	// GetAllInStatus retrieves all couriers currently in the given status
	// across units. The overtime sweep reads Delivering couriers this way.
	GetAllInStatus(ctx context.Context, status courier.Status) ([]*courier.Courier, error)

	// Remove deletes a courier from storage.
	Remove(ctx context.Context, id kernel.UUID) error
}
