// Package eventrepo provides data transfer objects and mapping functions for
// delivery event persistence.
package eventrepo

import (
	"time"

	"rotafila/internal/core/domain/model/courier"
	"rotafila/internal/core/domain/model/delivery"
	"rotafila/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// EventDTO represents the database structure for persisting delivery events.
type EventDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	CourierID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Unit       string    `gorm:"type:varchar(16);not null;index"`
	BagType    int       `gorm:"type:smallint;not null"`
	CalledAt   time.Time `gorm:"not null;index"`
	ReturnedAt *time.Time
}

// TableName specifies the database table name for delivery events.
func (EventDTO) TableName() string {
	return "delivery_events"
}

// fromDomain converts a delivery event to its database representation.
func fromDomain(aggregate *delivery.Event) EventDTO {
	return EventDTO{
		ID:         aggregate.ID().Bytes(),
		CourierID:  aggregate.CourierID().Bytes(),
		Unit:       aggregate.Unit().String(),
		BagType:    int(aggregate.BagType()),
		CalledAt:   aggregate.CalledAt(),
		ReturnedAt: aggregate.ReturnedAt(),
	}
}

// toDomain converts a database DTO to a delivery event using RestoreEvent.
func toDomain(dto EventDTO) (*delivery.Event, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	courierID, err := kernel.UUIDFromBytes(dto.CourierID[:])
	if err != nil {
		return nil, err
	}

	unit, err := kernel.UnitFromString(dto.Unit)
	if err != nil {
		return nil, err
	}

	return delivery.RestoreEvent(id, courierID, unit, courier.BagType(dto.BagType), dto.CalledAt, dto.ReturnedAt)
}
