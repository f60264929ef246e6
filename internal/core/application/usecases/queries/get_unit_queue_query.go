// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"
	"time"

	"rotafila/internal/core/domain/model/kernel"
	"rotafila/internal/pkg/guard"
)

var ErrGetUnitQueueQueryIsNotConstructed = errors.New(
	"GetUnitQueueQuery must be created via NewGetUnitQueueQuery constructor",
)

// GetUnitQueueQuery retrieves the rotation panel of one unit: every active
// courier with their status and queue position, line order first.
type GetUnitQueueQuery struct { //nolint:recvcheck //using for validation
	unit kernel.Unit

	guard guard.ConstructorGuard
}

// NewGetUnitQueueQuery creates a query for a unit's rotation panel.
func NewGetUnitQueueQuery(unit kernel.Unit) (GetUnitQueueQuery, error) {
	query := GetUnitQueueQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := unit.Validate(); err != nil {
		return GetUnitQueueQuery{}, err
	}
	query.unit = unit

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetUnitQueueQuery) Validate() error {
	return q.guard.Validate(ErrGetUnitQueueQueryIsNotConstructed)
}

// Unit returns the unit whose panel is requested.
func (q GetUnitQueueQuery) Unit() kernel.Unit {
	return q.unit
}

// GetUnitQueueQueryResponse is one row of the rotation panel.
type GetUnitQueueQueryResponse struct {
	CourierID     kernel.UUID
	Name          string
	Status        string
	QueuePosition time.Time
	DepartedAt    *time.Time
}
