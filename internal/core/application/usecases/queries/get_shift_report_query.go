package queries

import (
	"errors"
	"time"

	"rotafila/internal/core/domain/model/courier"
	"rotafila/internal/core/domain/model/kernel"
	"rotafila/internal/pkg/guard"
)

var ErrGetShiftReportQueryIsNotConstructed = errors.New(
	"GetShiftReportQuery must be created via NewGetShiftReportQuery constructor",
)

// GetShiftReportQuery summarizes one unit shift: per courier, how many
// deliveries went out and how long they took. The shift starting on the
// given day runs from the window start to the window end; an overnight
// window ends on the next calendar day.
type GetShiftReportQuery struct { //nolint:recvcheck //using for validation
	unit kernel.Unit
	from time.Time
	to   time.Time

	guard guard.ConstructorGuard
}

// NewGetShiftReportQuery creates a report query for the shift of day in the
// given window.
func NewGetShiftReportQuery(unit kernel.Unit, day time.Time, window courier.ShiftWindow) (GetShiftReportQuery, error) {
	query := GetShiftReportQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := unit.Validate(); err != nil {
		return GetShiftReportQuery{}, err
	}
	query.unit = unit
	query.from, query.to = shiftPeriod(day, window)

	return query, nil
}

// shiftPeriod resolves the absolute bounds of the shift starting on day.
func shiftPeriod(day time.Time, window courier.ShiftWindow) (time.Time, time.Time) {
	midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())

	from := midnight.Add(time.Duration(window.Start()) * time.Minute)
	to := midnight.Add(time.Duration(window.End()) * time.Minute)
	if window.End() <= window.Start() {
		to = to.AddDate(0, 0, 1)
	}
	return from, to
}

// Validate ensures the query was created through the constructor.
func (q GetShiftReportQuery) Validate() error {
	return q.guard.Validate(ErrGetShiftReportQueryIsNotConstructed)
}

// Unit returns the unit being reported on.
func (q GetShiftReportQuery) Unit() kernel.Unit {
	return q.unit
}

// From returns the inclusive start of the report period.
func (q GetShiftReportQuery) From() time.Time {
	return q.from
}

// To returns the exclusive end of the report period.
func (q GetShiftReportQuery) To() time.Time {
	return q.to
}

// GetShiftReportQueryResponse is one courier's line in the shift report.
// Open deliveries count but contribute no duration.
type GetShiftReportQueryResponse struct {
	CourierID       kernel.UUID
	Name            string
	Deliveries      int
	TotalOnRoadSecs int64
}
