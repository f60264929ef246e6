package commands

import (
	"errors"

	"rotafila/internal/core/domain/model/kernel"
	"rotafila/internal/pkg/guard"
)

var ErrCheckInCommandIsNotConstructed = errors.New(
	"CheckInCommand must be created via NewCheckInCommand constructor",
)

// CheckInCommand is the self-service shift arrival: the courier identifies
// themselves by phone and enters the queue at the tail.
type CheckInCommand struct { //nolint:recvcheck //using for validation
	phone kernel.Phone

	guard guard.ConstructorGuard
}

// NewCheckInCommand creates a command to check a courier in by phone.
func NewCheckInCommand(phone kernel.Phone) (CheckInCommand, error) {
	command := CheckInCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setPhone(phone); err != nil {
		return CheckInCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CheckInCommand) Validate() error {
	return c.guard.Validate(ErrCheckInCommandIsNotConstructed)
}

// Phone returns the phone identifying the courier.
func (c CheckInCommand) Phone() kernel.Phone {
	return c.phone
}

func (c *CheckInCommand) setPhone(phone kernel.Phone) error {
	if err := phone.Validate(); err != nil {
		return err
	}

	c.phone = phone
	return nil
}
