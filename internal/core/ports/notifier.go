package ports

import (
	"context"

	"rotafila/internal/core/domain/model/kernel"
)

// Notifier sends a text message to a courier's phone. Delivery is best
// effort: a failure is logged by the caller and never blocks the rotation.
type Notifier interface {
	Notify(ctx context.Context, phone kernel.Phone, text string) error
}

// Announcer pushes a spoken announcement to the counter screens of a unit.
// It never rejects: implementations swallow delivery problems, since an
// announcement that nobody heard is repeated by the operator anyway.
type Announcer interface {
	Announce(unit kernel.Unit, text string)
}
