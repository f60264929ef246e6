package commands

import (
	"errors"

	"rotafila/internal/core/domain/model/kernel"
	"rotafila/internal/pkg/guard"
)

var ErrRegisterCourierCommandIsNotConstructed = errors.New(
	"RegisterCourierCommand must be created via NewRegisterCourierCommand constructor",
)

// RegisterCourierCommand registers a new courier in a unit. The courier
// starts active, Available, and at the tail of the queue.
type RegisterCourierCommand struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID
	name      string
	phone     kernel.Phone
	unit      kernel.Unit

	guard guard.ConstructorGuard
}

// NewRegisterCourierCommand creates a command to register a courier.
// Automatically generates a unique ID for the courier.
func NewRegisterCourierCommand(name string, phone kernel.Phone, unit kernel.Unit) (RegisterCourierCommand, error) {
	command := RegisterCourierCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setCourierID(kernel.NewUUID()),
		command.setName(name),
		command.setPhone(phone),
		command.setUnit(unit),
	); err != nil {
		return RegisterCourierCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterCourierCommand) Validate() error {
	return c.guard.Validate(ErrRegisterCourierCommandIsNotConstructed)
}

// CourierID returns the generated courier ID.
func (c RegisterCourierCommand) CourierID() kernel.UUID {
	return c.courierID
}

// Name returns the courier name from the command.
func (c RegisterCourierCommand) Name() string {
	return c.name
}

// Phone returns the courier phone from the command.
func (c RegisterCourierCommand) Phone() kernel.Phone {
	return c.phone
}

// Unit returns the unit the courier joins.
func (c RegisterCourierCommand) Unit() kernel.Unit {
	return c.unit
}

func (c *RegisterCourierCommand) setCourierID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.courierID = id
	return nil
}

func (c *RegisterCourierCommand) setName(name string) error {
	if name == "" {
		return ErrCourierNameIsRequired
	}

	c.name = name
	return nil
}

func (c *RegisterCourierCommand) setPhone(phone kernel.Phone) error {
	if err := phone.Validate(); err != nil {
		return err
	}

	c.phone = phone
	return nil
}

func (c *RegisterCourierCommand) setUnit(unit kernel.Unit) error {
	if err := unit.Validate(); err != nil {
		return err
	}

	c.unit = unit
	return nil
}
