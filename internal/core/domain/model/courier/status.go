package courier

import (
	"errors"
	"fmt"

	"rotafila/internal/pkg/errs"
)

// Status represents the rotation state of a courier.
// It implements a state machine with defined transitions:
//
//	Available ──> Called ──> Delivering
//	    ^            │            │
//	    └────────────┴────────────┘
//	          (return to queue)
//
// Called -> Available covers the manual override of a call that never
// departed; Delivering -> Available is the normal return (operator, self
// check-in, or the overtime failsafe).
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusAvailable means the courier is in the queue awaiting a call.
	StatusAvailable

	// StatusCalled means the courier has been assigned the next delivery and
	// notified. Transient: the auto-advance timer moves it to Delivering.
	StatusCalled

	// StatusDelivering means the courier is out on a delivery and absent from
	// the queue.
	StatusDelivering
)

// ErrStaleTransition signals that a transition's expected source state no
// longer holds. Callers treat it as a no-op, not a user-facing failure: the
// persisted record is authoritative and a timer or a concurrent operator
// simply lost the race.
var ErrStaleTransition = errors.New("courier status changed since it was read")

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:    "Unknown",
		StatusAvailable:  "Available",
		StatusCalled:     "Called",
		StatusDelivering: "Delivering",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusAvailable:  "Available",
		StatusCalled:     "Called",
		StatusDelivering: "Delivering",
	}
}

// Validate checks if the Status value is one of the three valid states.
// Used when reconstructing couriers from the database.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status. Implements
// fmt.Stringer and is safe on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Call transitions the status to Called.
//
// Valid only from Available: a courier already called, delivering, or in an
// unknown state cannot be called again.
func (s Status) Call() (Status, error) {
	if s != StatusAvailable {
		return 0, fmt.Errorf("%w: %s cannot be called", ErrStaleTransition, s)
	}
	return StatusCalled, nil
}

// Depart transitions the status to Delivering.
//
// Valid only from Called. The auto-advance timer re-checks the persisted
// status before invoking this, so a stale timer surfaces ErrStaleTransition
// here and the caller drops it.
func (s Status) Depart() (Status, error) {
	if s != StatusCalled {
		return 0, fmt.Errorf("%w: %s cannot depart", ErrStaleTransition, s)
	}
	return StatusDelivering, nil
}

// Return transitions the status back to Available.
//
// Valid from Delivering (normal return, check-in, overtime failsafe) and from
// Called (manual override of a call that never departed).
func (s Status) Return() (Status, error) {
	if s != StatusDelivering && s != StatusCalled {
		return 0, fmt.Errorf("%w: %s cannot return to the queue", ErrStaleTransition, s)
	}
	return StatusAvailable, nil
}
