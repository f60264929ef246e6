package commands

import (
	"errors"

	"rotafila/internal/core/domain/model/kernel"
	"rotafila/internal/pkg/guard"
)

var ErrSkipTurnCommandIsNotConstructed = errors.New(
	"SkipTurnCommand must be created via NewSkipTurnCommand constructor",
)

// SkipTurnCommand sends an available courier to the tail of the queue
// without a delivery.
type SkipTurnCommand struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewSkipTurnCommand creates a command to skip a courier's turn.
func NewSkipTurnCommand(courierID kernel.UUID) (SkipTurnCommand, error) {
	command := SkipTurnCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setCourierID(courierID); err != nil {
		return SkipTurnCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c SkipTurnCommand) Validate() error {
	return c.guard.Validate(ErrSkipTurnCommandIsNotConstructed)
}

// CourierID returns the courier ID from the command.
func (c SkipTurnCommand) CourierID() kernel.UUID {
	return c.courierID
}

func (c *SkipTurnCommand) setCourierID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.courierID = id
	return nil
}
