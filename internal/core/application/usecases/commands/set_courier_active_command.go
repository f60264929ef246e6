package commands

import (
	"errors"

	"rotafila/internal/core/domain/model/kernel"
	"rotafila/internal/pkg/guard"
)

var ErrSetCourierActiveCommandIsNotConstructed = errors.New(
	"SetCourierActiveCommand must be created via NewSetCourierActiveCommand constructor",
)

// SetCourierActiveCommand toggles the on-duty flag of a courier. Activating
// re-enters the queue at the tail; deactivating hides the courier from the
// line without touching the status.
type SetCourierActiveCommand struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID
	active    bool

	guard guard.ConstructorGuard
}

// NewSetCourierActiveCommand creates a command to toggle a courier's duty flag.
func NewSetCourierActiveCommand(courierID kernel.UUID, active bool) (SetCourierActiveCommand, error) {
	command := SetCourierActiveCommand{
		active: active,
		guard:  guard.NewConstructorGuard(),
	}

	if err := command.setCourierID(courierID); err != nil {
		return SetCourierActiveCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c SetCourierActiveCommand) Validate() error {
	return c.guard.Validate(ErrSetCourierActiveCommandIsNotConstructed)
}

// CourierID returns the courier ID from the command.
func (c SetCourierActiveCommand) CourierID() kernel.UUID {
	return c.courierID
}

// Active returns the requested duty flag.
func (c SetCourierActiveCommand) Active() bool {
	return c.active
}

func (c *SetCourierActiveCommand) setCourierID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.courierID = id
	return nil
}
