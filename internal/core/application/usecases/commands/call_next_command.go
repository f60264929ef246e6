package commands

import (
	"errors"

	"rotafila/internal/core/domain/model/courier"
	"rotafila/internal/core/domain/model/kernel"
	"rotafila/internal/pkg/errs"
	"rotafila/internal/pkg/guard"
)

var ErrCallNextCommandIsNotConstructed = errors.New(
	"CallNextCommand must be created via NewCallNextCommand constructor",
)

const maxDeliveriesPerCall = 10

// CallNextCommand requests the next delivery call in a unit: the courier at
// the head of the line is called with the given bag. The delivery count is
// informational, it only enriches the notification text and is never
// persisted.
type CallNextCommand struct { //nolint:recvcheck //using for validation
	unit       kernel.Unit
	bagType    courier.BagType
	deliveries int

	guard guard.ConstructorGuard
}

// NewCallNextCommand creates a command to call the next courier of a unit.
func NewCallNextCommand(unit kernel.Unit, bagType courier.BagType, deliveries int) (CallNextCommand, error) {
	command := CallNextCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setUnit(unit),
		command.setBagType(bagType),
		command.setDeliveries(deliveries),
	); err != nil {
		return CallNextCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CallNextCommand) Validate() error {
	return c.guard.Validate(ErrCallNextCommandIsNotConstructed)
}

// Unit returns the unit whose queue is being advanced.
func (c CallNextCommand) Unit() kernel.Unit {
	return c.unit
}

// BagType returns the bag assigned for the call.
func (c CallNextCommand) BagType() courier.BagType {
	return c.bagType
}

// Deliveries returns how many deliveries the courier is picking up.
func (c CallNextCommand) Deliveries() int {
	return c.deliveries
}

func (c *CallNextCommand) setUnit(unit kernel.Unit) error {
	if err := unit.Validate(); err != nil {
		return err
	}

	c.unit = unit
	return nil
}

func (c *CallNextCommand) setBagType(bagType courier.BagType) error {
	if err := bagType.Validate(); err != nil {
		return err
	}

	c.bagType = bagType
	return nil
}

func (c *CallNextCommand) setDeliveries(deliveries int) error {
	if deliveries < 1 || deliveries > maxDeliveriesPerCall {
		return errs.NewValueIsOutOfRangeError("deliveries", deliveries, 1, maxDeliveriesPerCall)
	}

	c.deliveries = deliveries
	return nil
}
