package commands

import (
	"errors"

	"rotafila/internal/core/domain/model/courier"
	"rotafila/internal/core/domain/model/kernel"
	"rotafila/internal/pkg/guard"
)

var ErrUpdateCourierProfileCommandIsNotConstructed = errors.New(
	"UpdateCourierProfileCommand must be created via NewUpdateCourierProfileCommand constructor",
)

// CourierProfilePatch carries the optional profile changes. Nil fields are
// left untouched. UseDefaultShift and Shift are mutually exclusive: setting
// a personal window clears the default flag and vice versa.
type CourierProfilePatch struct {
	Name            *string
	Phone           *kernel.Phone
	Workdays        *courier.Workdays
	Shift           *courier.ShiftWindow
	UseDefaultShift bool
}

// UpdateCourierProfileCommand applies a partial update to a courier's
// profile: name, phone, weekly schedule, and shift window.
type UpdateCourierProfileCommand struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID
	patch     CourierProfilePatch

	guard guard.ConstructorGuard
}

// NewUpdateCourierProfileCommand creates a command to update a courier profile.
func NewUpdateCourierProfileCommand(courierID kernel.UUID, patch CourierProfilePatch) (UpdateCourierProfileCommand, error) {
	command := UpdateCourierProfileCommand{
		patch: patch,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setCourierID(courierID),
		command.validatePatch(),
	); err != nil {
		return UpdateCourierProfileCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateCourierProfileCommand) Validate() error {
	return c.guard.Validate(ErrUpdateCourierProfileCommandIsNotConstructed)
}

// CourierID returns the courier ID from the command.
func (c UpdateCourierProfileCommand) CourierID() kernel.UUID {
	return c.courierID
}

// Patch returns the requested profile changes.
func (c UpdateCourierProfileCommand) Patch() CourierProfilePatch {
	return c.patch
}

func (c *UpdateCourierProfileCommand) setCourierID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.courierID = id
	return nil
}

func (c *UpdateCourierProfileCommand) validatePatch() error {
	if c.patch.Name != nil && *c.patch.Name == "" {
		return ErrCourierNameIsRequired
	}
	if c.patch.Phone != nil {
		if err := c.patch.Phone.Validate(); err != nil {
			return err
		}
	}
	return nil
}
