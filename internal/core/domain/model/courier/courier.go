package courier

import (
	"errors"
	"time"

	"rotafila/internal/core/domain/model/kernel"
	"rotafila/internal/pkg/errs"
	"rotafila/internal/pkg/guard"
)

// Domain errors for courier operations.
var (
	// ErrNameIsRequired is returned when attempting to create a courier without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrCourierIsNotConstructed is returned when using an improperly initialized Courier.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier constructor")
	// ErrAlreadyCheckedIn is returned when a courier tries to check in while already active.
	ErrAlreadyCheckedIn = errors.New("courier is already checked in")
)

// Courier is the aggregate root of the rotation. It owns the courier's
// identity and contact data, the active flag, the working schedule, and the
// rotation state: the status machine plus the queue position that orders the
// unit's line.
//
// Business rules:
//   - queuePosition is a timestamp; the queue is ordered by it ascending, so
//     the oldest position is the head of the line
//   - every transition back to Available resets queuePosition to now, which
//     sends the courier to the tail
//   - eligibility (active flag, workday, shift window) gates queue
//     membership but never blocks status transitions
type Courier struct {
	// id uniquely identifies the courier
	id kernel.UUID
	// name is the human-readable name of the courier
	name string
	// phone receives the "your turn" texts
	phone kernel.Phone
	// unit is the store whose queue the courier belongs to
	unit kernel.Unit
	// status is the current rotation state
	status Status
	// active marks whether the courier is on duty at all
	active bool
	// queuePosition orders the unit queue, ascending
	queuePosition time.Time
	// workdays marks the weekdays the courier works
	workdays Workdays
	// useDefaultShift selects the unit-wide shift window over a personal one
	useDefaultShift bool
	// shift is the personal window, meaningful only when useDefaultShift is false
	shift ShiftWindow
	// departedAt is set while the courier is out on a delivery
	departedAt *time.Time
	// bagType is the bag assigned on the last call
	bagType BagType
	// guard ensures the courier was properly constructed
	guard guard.ConstructorGuard
}

// NewCourier creates a fresh courier: active, Available, queued at the tail
// (position now), working every day on the unit default shift.
func NewCourier(id kernel.UUID, name string, phone kernel.Phone, unit kernel.Unit, now time.Time) (*Courier, error) {
	c := &Courier{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setPhone(phone),
		c.setUnit(unit),
	); err != nil {
		return nil, err
	}

	c.status = StatusAvailable
	c.active = true
	c.queuePosition = now
	c.workdays = EveryDay()
	c.useDefaultShift = true
	c.bagType = BagNormal

	return c, nil
}

// RestoreCourier reconstructs a Courier aggregate from persistent storage.
// Unlike NewCourier it takes the full persisted state and validates it, so
// a restored courier behaves identically to one built through domain
// operations.
func RestoreCourier(
	id kernel.UUID,
	name string,
	phone kernel.Phone,
	unit kernel.Unit,
	status Status,
	active bool,
	queuePosition time.Time,
	workdays Workdays,
	useDefaultShift bool,
	shift ShiftWindow,
	departedAt *time.Time,
	bagType BagType,
) (*Courier, error) {
	c := &Courier{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setPhone(phone),
		c.setUnit(unit),
		status.Validate(),
		bagType.Validate(),
	); err != nil {
		return nil, err
	}

	c.status = status
	c.active = active
	c.queuePosition = queuePosition
	c.workdays = workdays
	c.useDefaultShift = useDefaultShift
	c.shift = shift
	c.departedAt = departedAt
	c.bagType = bagType

	return c, nil
}

// IsEqual compares two couriers by identity.
func (c *Courier) IsEqual(other *Courier) bool {
	if other == nil {
		return false
	}
	return c.id.IsEqual(other.id)
}

// Validate checks if the Courier was properly constructed.
// The zero value of Courier is invalid and will fail this validation.
func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

// ID returns the unique identifier of the courier.
func (c *Courier) ID() kernel.UUID {
	return c.id
}

// Name returns the human-readable name of the courier.
func (c *Courier) Name() string {
	return c.name
}

// Phone returns the courier's contact phone.
func (c *Courier) Phone() kernel.Phone {
	return c.phone
}

// Unit returns the store unit the courier belongs to.
func (c *Courier) Unit() kernel.Unit {
	return c.unit
}

// Status returns the current rotation state.
func (c *Courier) Status() Status {
	return c.status
}

// IsActive reports whether the courier is on duty.
func (c *Courier) IsActive() bool {
	return c.active
}

// QueuePosition returns the timestamp that orders the unit queue.
func (c *Courier) QueuePosition() time.Time {
	return c.queuePosition
}

// Workdays returns the weekly working schedule.
func (c *Courier) Workdays() Workdays {
	return c.workdays
}

// UsesDefaultShift reports whether the courier follows the unit-wide shift
// window instead of a personal one.
func (c *Courier) UsesDefaultShift() bool {
	return c.useDefaultShift
}

// Shift returns the personal shift window. Meaningful only when
// UsesDefaultShift reports false.
func (c *Courier) Shift() ShiftWindow {
	return c.shift
}

// DepartedAt returns when the courier left on the current delivery, or nil
// when not out.
func (c *Courier) DepartedAt() *time.Time {
	return c.departedAt
}

// BagType returns the bag assigned on the last call.
func (c *Courier) BagType() BagType {
	return c.bagType
}

// Call marks the courier as called for the next delivery with the given bag.
// Valid only from Available; anything else returns ErrStaleTransition.
func (c *Courier) Call(bagType BagType) error {
	if err := bagType.Validate(); err != nil {
		return err
	}

	next, err := c.status.Call()
	if err != nil {
		return err
	}

	c.status = next
	c.bagType = bagType
	return nil
}

// ConfirmDeparture moves a called courier out on the delivery and records
// the departure time. The auto-advance timer and the manual confirmation
// both land here; whichever runs second gets ErrStaleTransition.
func (c *Courier) ConfirmDeparture(now time.Time) error {
	next, err := c.status.Depart()
	if err != nil {
		return err
	}

	c.status = next
	c.departedAt = &now
	return nil
}

// Return puts the courier back in the queue at the tail: status Available,
// queue position reset to now, departure time cleared.
func (c *Courier) Return(now time.Time) error {
	next, err := c.status.Return()
	if err != nil {
		return err
	}

	c.status = next
	c.queuePosition = now
	c.departedAt = nil
	return nil
}

// CheckIn activates a courier arriving for the shift and queues them at the
// tail. A courier already active cannot check in again; that guard is what
// keeps a delivering courier from duplicating themselves in the queue.
func (c *Courier) CheckIn(now time.Time) error {
	if c.active {
		return ErrAlreadyCheckedIn
	}

	c.active = true
	c.status = StatusAvailable
	c.queuePosition = now
	c.departedAt = nil
	return nil
}

// Activate puts the courier back on duty without touching the status, with
// the queue position reset to the tail. A courier already on duty keeps
// their place, so a repeated activation does not demote them.
func (c *Courier) Activate(now time.Time) {
	if c.active {
		return
	}

	c.active = true
	c.queuePosition = now
}

// Deactivate takes the courier off duty. Status is kept so a courier
// deactivated mid-delivery still shows as Delivering on the panel.
func (c *Courier) Deactivate() {
	c.active = false
}

// SkipTurn sends an available courier to the tail of the queue without a
// delivery. Valid only from Available.
func (c *Courier) SkipTurn(now time.Time) error {
	if c.status != StatusAvailable {
		return ErrStaleTransition
	}

	c.queuePosition = now
	return nil
}

// MoveToPosition rewrites the queue position during a full queue reorder.
// Valid only from Available: called and delivering couriers are not in the
// line being reordered.
func (c *Courier) MoveToPosition(position time.Time) error {
	if c.status != StatusAvailable {
		return ErrStaleTransition
	}

	c.queuePosition = position
	return nil
}

// Rename changes the courier's display name.
func (c *Courier) Rename(name string) error {
	return c.setName(name)
}

// ChangePhone changes the courier's contact phone.
func (c *Courier) ChangePhone(phone kernel.Phone) error {
	return c.setPhone(phone)
}

// SetWorkdays replaces the weekly schedule.
func (c *Courier) SetWorkdays(workdays Workdays) {
	c.workdays = workdays
}

// SetShift assigns a personal shift window, overriding the unit default.
func (c *Courier) SetShift(shift ShiftWindow) {
	c.shift = shift
	c.useDefaultShift = false
}

// UseDefaultShift reverts the courier to the unit-wide shift window.
func (c *Courier) UseDefaultShift() {
	c.useDefaultShift = true
	c.shift = ShiftWindow{}
}

// EligibleAt reports whether the courier may hold a place in the queue at
// the given instant: active, working today, and inside the shift window
// (the personal one, or defaultShift when none is set). Ineligibility hides
// the courier from the queue; it never changes the stored status.
func (c *Courier) EligibleAt(now time.Time, defaultShift ShiftWindow) bool {
	if !c.active {
		return false
	}
	if !c.workdays.Worked(now.Weekday()) {
		return false
	}

	window := defaultShift
	if !c.useDefaultShift {
		window = c.shift
	}
	return window.Contains(now)
}

// OverdueAt reports whether the courier has been out delivering for longer
// than threshold. The failsafe sweep uses it to force stuck couriers back
// into the queue.
func (c *Courier) OverdueAt(now time.Time, threshold time.Duration) bool {
	if c.status != StatusDelivering || c.departedAt == nil {
		return false
	}
	return now.Sub(*c.departedAt) > threshold
}

// setID sets the courier's unique identifier with validation.
func (c *Courier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.id = id
	return nil
}

// setName sets the courier's name with validation.
func (c *Courier) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}

	c.name = name
	return nil
}

// setPhone sets the courier's phone with validation.
func (c *Courier) setPhone(phone kernel.Phone) error {
	if err := phone.Validate(); err != nil {
		return err
	}

	c.phone = phone
	return nil
}

// setUnit sets the courier's unit with validation.
func (c *Courier) setUnit(unit kernel.Unit) error {
	if err := unit.Validate(); err != nil {
		return err
	}

	c.unit = unit
	return nil
}
