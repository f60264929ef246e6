// Package courierrepo provides data transfer objects and mapping functions for courier persistence.
// This package implements the repository pattern for the courier domain aggregate, handling
// the conversion between domain entities and database representations.
package courierrepo

import (
	"time"

	"rotafila/internal/core/domain/model/courier"
	"rotafila/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CourierDTO represents the database structure for persisting courier aggregates.
type CourierDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name            string    `gorm:"type:varchar(255);not null"`
	Phone           string    `gorm:"type:varchar(20);not null;uniqueIndex"`
	Unit            string    `gorm:"type:varchar(16);not null;index"`
	Status          int       `gorm:"type:smallint;not null;index"`
	Active          bool      `gorm:"not null"`
	QueuePosition   time.Time `gorm:"not null;index"`
	Workdays        string    `gorm:"type:char(7);not null"`
	UseDefaultShift bool      `gorm:"not null"`
	ShiftStart      int       `gorm:"type:smallint;not null"`
	ShiftEnd        int       `gorm:"type:smallint;not null"`
	DepartedAt      *time.Time
	BagType         int `gorm:"type:smallint;not null"`
}

// TableName specifies the database table name for courier entities.
func (CourierDTO) TableName() string {
	return "couriers"
}

// fromDomain converts a courier domain aggregate to its database representation.
func fromDomain(aggregate *courier.Courier) CourierDTO {
	return CourierDTO{
		ID:              aggregate.ID().Bytes(),
		Name:            aggregate.Name(),
		Phone:           aggregate.Phone().String(),
		Unit:            aggregate.Unit().String(),
		Status:          int(aggregate.Status()),
		Active:          aggregate.IsActive(),
		QueuePosition:   aggregate.QueuePosition(),
		Workdays:        aggregate.Workdays().Mask(),
		UseDefaultShift: aggregate.UsesDefaultShift(),
		ShiftStart:      aggregate.Shift().Start(),
		ShiftEnd:        aggregate.Shift().End(),
		DepartedAt:      aggregate.DepartedAt(),
		BagType:         int(aggregate.BagType()),
	}
}

// toDomain converts a database DTO to a courier domain aggregate using
// RestoreCourier.
func toDomain(dto CourierDTO) (*courier.Courier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	phone, err := kernel.NewPhone(dto.Phone)
	if err != nil {
		return nil, err
	}

	unit, err := kernel.UnitFromString(dto.Unit)
	if err != nil {
		return nil, err
	}

	workdays, err := courier.WorkdaysFromMask(dto.Workdays)
	if err != nil {
		return nil, err
	}

	shift, err := courier.NewShiftWindow(dto.ShiftStart, dto.ShiftEnd)
	if err != nil {
		return nil, err
	}

	return courier.RestoreCourier(
		id,
		dto.Name,
		phone,
		unit,
		courier.Status(dto.Status),
		dto.Active,
		dto.QueuePosition,
		workdays,
		dto.UseDefaultShift,
		shift,
		dto.DepartedAt,
		courier.BagType(dto.BagType),
	)
}
