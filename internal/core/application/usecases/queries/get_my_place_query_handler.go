package queries

import (
	"context"
	"time"

	"rotafila/internal/core/domain/model/courier"
	"rotafila/internal/core/domain/model/kernel"
	"rotafila/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetMyPlaceQueryHandler answers the courier's own poll. The place is the
// 1-based rank among the eligible Available couriers of the unit, the same
// line the rotation engine would call from; a courier who is called,
// delivering, off duty, or outside their schedule gets place zero.
type GetMyPlaceQueryHandler struct {
	db           *gorm.DB
	defaultShift courier.ShiftWindow
}

// NewGetMyPlaceQueryHandler creates a handler for courier self-lookups.
func NewGetMyPlaceQueryHandler(db *gorm.DB, defaultShift courier.ShiftWindow) GetMyPlaceQueryHandler {
	return GetMyPlaceQueryHandler{db: db, defaultShift: defaultShift}
}

// Handle executes the lookup.
func (h GetMyPlaceQueryHandler) Handle(
	ctx context.Context,
	query GetMyPlaceQuery,
) (GetMyPlaceQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetMyPlaceQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			unit,
			status,
			active,
			queue_position,
			workdays,
			use_default_shift,
			shift_start,
			shift_end
		FROM couriers
		WHERE phone = ?
	`, query.Phone().String()).Row()

	var response GetMyPlaceQueryResponse
	var id uuid.UUID
	var unit string
	var status int
	var active bool
	var position time.Time
	var schedule rowSchedule

	err := row.Scan(&id, &response.Name, &unit, &status, &active, &position,
		&schedule.workdays, &schedule.useDefaultShift, &schedule.shiftStart, &schedule.shiftEnd)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return GetMyPlaceQueryResponse{}, errs.NewObjectNotFoundError("phone", query.Phone().String())
		}
		return GetMyPlaceQueryResponse{}, errs.NewObjectNotFoundErrorWithCause("phone", query.Phone().String(), err)
	}

	courierID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetMyPlaceQueryResponse{}, err
	}
	response.CourierID = courierID

	courierUnit, err := kernel.UnitFromString(unit)
	if err != nil {
		return GetMyPlaceQueryResponse{}, err
	}
	response.Unit = courierUnit
	response.Status = statusString(status)

	if courier.Status(status) != courier.StatusAvailable || !active {
		return response, nil
	}

	now := time.Now()

	eligible, err := schedule.eligibleAt(now, h.defaultShift)
	if err != nil {
		return GetMyPlaceQueryResponse{}, err
	}
	if !eligible {
		return response, nil
	}

	place, err := h.rank(ctx, courierUnit, courierID, position, now)
	if err != nil {
		return GetMyPlaceQueryResponse{}, err
	}
	response.Place = place

	return response, nil
}

// rank counts the eligible Available couriers of the unit standing ahead of
// the given position. Position ties break by ID, as in the rotation policy.
func (h GetMyPlaceQueryHandler) rank(
	ctx context.Context,
	unit kernel.Unit,
	selfID kernel.UUID,
	selfPosition time.Time,
	now time.Time,
) (int, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			queue_position,
			workdays,
			use_default_shift,
			shift_start,
			shift_end
		FROM couriers
		WHERE unit = ? AND active AND status = ?
	`, unit.String(), int(courier.StatusAvailable)).Rows()
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	place := 1

	for rows.Next() {
		var id uuid.UUID
		var position time.Time
		var schedule rowSchedule

		err = rows.Scan(&id, &position,
			&schedule.workdays, &schedule.useDefaultShift, &schedule.shiftStart, &schedule.shiftEnd)
		if err != nil {
			return 0, err
		}

		otherID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return 0, idErr
		}
		if otherID.IsEqual(selfID) {
			continue
		}

		eligible, eligErr := schedule.eligibleAt(now, h.defaultShift)
		if eligErr != nil {
			return 0, eligErr
		}
		if !eligible {
			continue
		}

		if position.Before(selfPosition) ||
			(position.Equal(selfPosition) && otherID.String() < selfID.String()) {
			place++
		}
	}

	if err = rows.Err(); err != nil {
		return 0, err
	}

	return place, nil
}
