package commands

import (
	"errors"

	"rotafila/internal/core/domain/model/kernel"
	"rotafila/internal/pkg/guard"
)

var ErrRemoveCourierCommandIsNotConstructed = errors.New(
	"RemoveCourierCommand must be created via NewRemoveCourierCommand constructor",
)

// RemoveCourierCommand deletes a courier from the roster.
type RemoveCourierCommand struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRemoveCourierCommand creates a command to remove a courier.
func NewRemoveCourierCommand(courierID kernel.UUID) (RemoveCourierCommand, error) {
	command := RemoveCourierCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setCourierID(courierID); err != nil {
		return RemoveCourierCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c RemoveCourierCommand) Validate() error {
	return c.guard.Validate(ErrRemoveCourierCommandIsNotConstructed)
}

// CourierID returns the courier ID from the command.
func (c RemoveCourierCommand) CourierID() kernel.UUID {
	return c.courierID
}

func (c *RemoveCourierCommand) setCourierID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.courierID = id
	return nil
}
