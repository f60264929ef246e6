package commands

import (
	"errors"

	"rotafila/internal/core/domain/model/kernel"
	"rotafila/internal/pkg/guard"
)

var ErrConfirmDepartureCommandIsNotConstructed = errors.New(
	"ConfirmDepartureCommand must be created via NewConfirmDepartureCommand constructor",
)

// ConfirmDepartureCommand moves a called courier out on the delivery. Both
// the auto-advance timer and the operator's manual confirmation issue it;
// whichever lands second finds the status already changed and becomes a
// no-op.
type ConfirmDepartureCommand struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewConfirmDepartureCommand creates a command to confirm a courier's departure.
func NewConfirmDepartureCommand(courierID kernel.UUID) (ConfirmDepartureCommand, error) {
	command := ConfirmDepartureCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setCourierID(courierID); err != nil {
		return ConfirmDepartureCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmDepartureCommand) Validate() error {
	return c.guard.Validate(ErrConfirmDepartureCommandIsNotConstructed)
}

// CourierID returns the courier ID from the command.
func (c ConfirmDepartureCommand) CourierID() kernel.UUID {
	return c.courierID
}

func (c *ConfirmDepartureCommand) setCourierID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.courierID = id
	return nil
}
