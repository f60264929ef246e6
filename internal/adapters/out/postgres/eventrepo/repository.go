package eventrepo

import (
	"context"
	"errors"
	"time"

	"rotafila/internal/core/domain/model/delivery"
	"rotafila/internal/core/domain/model/kernel"
	"rotafila/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormEventRepository implements EventRepository using GORM.
type GormEventRepository struct {
	db *gorm.DB
}

// NewGormEventRepository creates a new GORM event repository.
func NewGormEventRepository(db *gorm.DB) *GormEventRepository {
	return &GormEventRepository{db: db}
}

// Add saves a new delivery event to the database.
func (r *GormEventRepository) Add(ctx context.Context, aggregate *delivery.Event) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update saves an existing delivery event to the database.
func (r *GormEventRepository) Update(ctx context.Context, aggregate *delivery.Event) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	result := r.db.WithContext(ctx).Save(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// GetOpenByCourier retrieves the courier's open event, the most recent one
// without a return time.
func (r *GormEventRepository) GetOpenByCourier(ctx context.Context, courierID kernel.UUID) (*delivery.Event, error) {
	if err := courierID.Validate(); err != nil {
		return nil, err
	}

	var dto EventDTO
	if err := r.db.WithContext(ctx).
		Where("courier_id = ? AND returned_at IS NULL", courierID.Bytes()).
		Order("called_at DESC").
		First(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("courierId", courierID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllOpen retrieves every open event across units, oldest first.
func (r *GormEventRepository) GetAllOpen(ctx context.Context) ([]*delivery.Event, error) {
	var dtos []EventDTO
	if err := r.db.WithContext(ctx).
		Where("returned_at IS NULL").
		Order("called_at").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetForPeriod retrieves a unit's events called inside [from, to).
func (r *GormEventRepository) GetForPeriod(ctx context.Context, unit kernel.Unit, from, to time.Time) ([]*delivery.Event, error) {
	if err := unit.Validate(); err != nil {
		return nil, err
	}

	var dtos []EventDTO
	if err := r.db.WithContext(ctx).
		Where("unit = ? AND called_at >= ? AND called_at < ?", unit.String(), from, to).
		Order("called_at").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// PurgeBefore deletes events called before the cutoff.
func (r *GormEventRepository) PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&EventDTO{}, "called_at < ?", cutoff)
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}

func toDomainSlice(dtos []EventDTO) ([]*delivery.Event, error) {
	events := make([]*delivery.Event, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		events = append(events, aggregate)
	}
	return events, nil
}
