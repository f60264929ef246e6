package commands

import (
	"time"

	"rotafila/internal/core/domain/model/courier"
)

// RotationSettings carries the rotation tunables shared by the command
// handlers and the background jobs.
type RotationSettings struct {
	// DefaultShift is the unit-wide shift window applied to couriers
	// without a personal one.
	DefaultShift courier.ShiftWindow

	// AutoAdvanceDelay is how long a Called courier stays in that state
	// before the rotation assumes they left and moves them to Delivering.
	AutoAdvanceDelay time.Duration

	// HeadsUpDelay is how long after a call the courier now leading the
	// line gets their "you are next" text.
	HeadsUpDelay time.Duration

	// OvertimeThreshold is the delivery duration past which the failsafe
	// sweep forces a courier back into the queue.
	OvertimeThreshold time.Duration
}
