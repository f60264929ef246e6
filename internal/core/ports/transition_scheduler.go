package ports

import (
	"time"

	"rotafila/internal/core/domain/model/kernel"
)

// TransitionScheduler fires a callback after a delay, keyed by courier. At
// most one pending transition exists per courier: scheduling again replaces
// the previous one. The schedule is in-memory only; the reconciliation job
// re-derives lost timers from the store after a restart.
type TransitionScheduler interface {
	// After schedules fn to run after delay, replacing any pending
	// transition for the courier.
	After(courierID kernel.UUID, delay time.Duration, fn func())

	// Cancel drops the pending transition for the courier, if any.
	Cancel(courierID kernel.UUID)

	// CancelAll drops every pending transition. Used on shutdown.
	CancelAll()
}
