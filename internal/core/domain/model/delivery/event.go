package delivery

import (
	"errors"
	"time"

	"rotafila/internal/core/domain/model/courier"
	"rotafila/internal/core/domain/model/kernel"
	"rotafila/internal/pkg/guard"
)

// Domain errors for delivery event operations.
var (
	// ErrEventIsNotConstructed is returned when using an improperly initialized Event.
	ErrEventIsNotConstructed = errors.New("Event must be created via NewEvent constructor")
	// ErrEventAlreadyClosed is returned when closing an event twice.
	ErrEventAlreadyClosed = errors.New("delivery event is already closed")
)

// Event records one delivery cycle of a courier: opened when the courier is
// called, closed when they return to the queue. Open events are what the
// reconciliation job reads to re-derive pending auto-advances after a
// restart, and closed events feed the shift report.
type Event struct {
	// id uniquely identifies the event
	id kernel.UUID
	// courierID links the event to the courier
	courierID kernel.UUID
	// unit is the store the delivery left from
	unit kernel.Unit
	// bagType is the bag assigned for the delivery
	bagType courier.BagType
	// calledAt is when the courier was called
	calledAt time.Time
	// returnedAt is set when the courier is back, nil while open
	returnedAt *time.Time
	// guard ensures the event was properly constructed
	guard guard.ConstructorGuard
}

// NewEvent opens a delivery event at call time.
func NewEvent(id, courierID kernel.UUID, unit kernel.Unit, bagType courier.BagType, calledAt time.Time) (*Event, error) {
	e := &Event{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		id.Validate(),
		courierID.Validate(),
		unit.Validate(),
		bagType.Validate(),
	); err != nil {
		return nil, err
	}

	e.id = id
	e.courierID = courierID
	e.unit = unit
	e.bagType = bagType
	e.calledAt = calledAt

	return e, nil
}

// RestoreEvent reconstructs an Event from persistent storage.
func RestoreEvent(
	id, courierID kernel.UUID,
	unit kernel.Unit,
	bagType courier.BagType,
	calledAt time.Time,
	returnedAt *time.Time,
) (*Event, error) {
	e, err := NewEvent(id, courierID, unit, bagType, calledAt)
	if err != nil {
		return nil, err
	}

	e.returnedAt = returnedAt
	return e, nil
}

// Validate checks if the Event was properly constructed.
func (e *Event) Validate() error {
	if e == nil {
		return ErrEventIsNotConstructed
	}
	return e.guard.Validate(ErrEventIsNotConstructed)
}

// ID returns the unique identifier of the event.
func (e *Event) ID() kernel.UUID {
	return e.id
}

// CourierID returns the courier the event belongs to.
func (e *Event) CourierID() kernel.UUID {
	return e.courierID
}

// Unit returns the store the delivery left from.
func (e *Event) Unit() kernel.Unit {
	return e.unit
}

// BagType returns the bag assigned for the delivery.
func (e *Event) BagType() courier.BagType {
	return e.bagType
}

// CalledAt returns when the courier was called.
func (e *Event) CalledAt() time.Time {
	return e.calledAt
}

// ReturnedAt returns when the courier came back, or nil while the event is
// open.
func (e *Event) ReturnedAt() *time.Time {
	return e.returnedAt
}

// IsOpen reports whether the courier is still out.
func (e *Event) IsOpen() bool {
	return e.returnedAt == nil
}

// MarkReturned closes the event at the given instant.
func (e *Event) MarkReturned(now time.Time) error {
	if e.returnedAt != nil {
		return ErrEventAlreadyClosed
	}

	e.returnedAt = &now
	return nil
}

// Duration returns how long the delivery took so far: closed events measure
// call to return, open ones call to now.
func (e *Event) Duration(now time.Time) time.Duration {
	if e.returnedAt != nil {
		return e.returnedAt.Sub(e.calledAt)
	}
	return now.Sub(e.calledAt)
}
