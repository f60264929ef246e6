package commands

import (
	"errors"

	"rotafila/internal/core/domain/model/kernel"
	"rotafila/internal/pkg/guard"
)

var ErrMarkReturnedCommandIsNotConstructed = errors.New(
	"MarkReturnedCommand must be created via NewMarkReturnedCommand constructor",
)

// MarkReturnedCommand puts a courier back in the queue at the tail, closing
// the open delivery event. Issued by the operator, by the courier's own
// check-back, and by the overtime failsafe.
type MarkReturnedCommand struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewMarkReturnedCommand creates a command to return a courier to the queue.
func NewMarkReturnedCommand(courierID kernel.UUID) (MarkReturnedCommand, error) {
	command := MarkReturnedCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setCourierID(courierID); err != nil {
		return MarkReturnedCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkReturnedCommand) Validate() error {
	return c.guard.Validate(ErrMarkReturnedCommandIsNotConstructed)
}

// CourierID returns the courier ID from the command.
func (c MarkReturnedCommand) CourierID() kernel.UUID {
	return c.courierID
}

func (c *MarkReturnedCommand) setCourierID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.courierID = id
	return nil
}
