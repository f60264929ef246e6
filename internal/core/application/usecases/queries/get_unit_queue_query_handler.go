package queries

import (
	"context"
	"time"

	"rotafila/internal/core/domain/model/courier"
	"rotafila/internal/core/domain/model/kernel"
	"rotafila/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// statusString maps the persisted status integer to its display name.
func statusString(v int) string {
	return courier.Status(v).String()
}

// GetUnitQueueQueryHandler reads the rotation panel of a unit. The panel is
// polled every few seconds by every open operator screen, so it goes
// through the queue cache; the database stays authoritative and writers
// invalidate on commit.
type GetUnitQueueQueryHandler struct {
	db           *gorm.DB
	cache        ports.QueueCache
	defaultShift courier.ShiftWindow
}

// NewGetUnitQueueQueryHandler creates a handler for panel reads.
func NewGetUnitQueueQueryHandler(
	db *gorm.DB,
	cache ports.QueueCache,
	defaultShift courier.ShiftWindow,
) GetUnitQueueQueryHandler {
	return GetUnitQueueQueryHandler{db: db, cache: cache, defaultShift: defaultShift}
}

// Handle executes the query, ordered by queue position ascending so the head
// of the line comes first. Available rows additionally pass the schedule
// eligibility check: a courier off their workday or shift window holds no
// place in the line, while Called and Delivering couriers stay visible until
// they resolve.
func (h GetUnitQueueQueryHandler) Handle(
	ctx context.Context,
	query GetUnitQueueQuery,
) ([]GetUnitQueueQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if cached, ok := h.cache.Get(ctx, query.Unit()); ok {
		return fromSnapshots(cached), nil
	}

	entries := make([]GetUnitQueueQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			status,
			queue_position,
			departed_at,
			workdays,
			use_default_shift,
			shift_start,
			shift_end
		FROM couriers
		WHERE unit = ? AND active
		ORDER BY queue_position
	`, query.Unit().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	now := time.Now()

	for rows.Next() {
		var entry GetUnitQueueQueryResponse
		var id uuid.UUID
		var status int
		var schedule rowSchedule

		err = rows.Scan(&id, &entry.Name, &status, &entry.QueuePosition, &entry.DepartedAt,
			&schedule.workdays, &schedule.useDefaultShift, &schedule.shiftStart, &schedule.shiftEnd)
		if err != nil {
			return nil, err
		}

		if courier.Status(status) == courier.StatusAvailable {
			eligible, eligErr := schedule.eligibleAt(now, h.defaultShift)
			if eligErr != nil {
				return nil, eligErr
			}
			if !eligible {
				continue
			}
		}

		courierID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		entry.CourierID = courierID
		entry.Status = statusString(status)

		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	h.cache.Set(ctx, query.Unit(), toSnapshots(entries))

	return entries, nil
}

func fromSnapshots(snapshots []ports.QueueSnapshot) []GetUnitQueueQueryResponse {
	entries := make([]GetUnitQueueQueryResponse, 0, len(snapshots))
	for _, s := range snapshots {
		entries = append(entries, GetUnitQueueQueryResponse{
			CourierID:     s.CourierID,
			Name:          s.Name,
			Status:        s.Status,
			QueuePosition: s.Position,
			DepartedAt:    s.DepartedAt,
		})
	}
	return entries
}

func toSnapshots(entries []GetUnitQueueQueryResponse) []ports.QueueSnapshot {
	snapshots := make([]ports.QueueSnapshot, 0, len(entries))
	for _, e := range entries {
		snapshots = append(snapshots, ports.QueueSnapshot{
			CourierID:  e.CourierID,
			Name:       e.Name,
			Status:     e.Status,
			Position:   e.QueuePosition,
			DepartedAt: e.DepartedAt,
		})
	}
	return snapshots
}
