package commands

import (
	"errors"

	"rotafila/internal/core/domain/model/kernel"
	"rotafila/internal/pkg/errs"
	"rotafila/internal/pkg/guard"
)

var ErrReorderQueueCommandIsNotConstructed = errors.New(
	"ReorderQueueCommand must be created via NewReorderQueueCommand constructor",
)

// ReorderQueueCommand rewrites the full order of a unit queue. The operator
// drags the line into shape and submits every courier ID in the desired
// order.
type ReorderQueueCommand struct { //nolint:recvcheck //using for validation
	unit       kernel.Unit
	orderedIDs []kernel.UUID

	guard guard.ConstructorGuard
}

// NewReorderQueueCommand creates a command to reorder a unit queue.
func NewReorderQueueCommand(unit kernel.Unit, orderedIDs []kernel.UUID) (ReorderQueueCommand, error) {
	command := ReorderQueueCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setUnit(unit),
		command.setOrderedIDs(orderedIDs),
	); err != nil {
		return ReorderQueueCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c ReorderQueueCommand) Validate() error {
	return c.guard.Validate(ErrReorderQueueCommandIsNotConstructed)
}

// Unit returns the unit whose queue is being reordered.
func (c ReorderQueueCommand) Unit() kernel.Unit {
	return c.unit
}

// OrderedIDs returns the courier IDs in the requested order.
func (c ReorderQueueCommand) OrderedIDs() []kernel.UUID {
	out := make([]kernel.UUID, len(c.orderedIDs))
	copy(out, c.orderedIDs)
	return out
}

func (c *ReorderQueueCommand) setUnit(unit kernel.Unit) error {
	if err := unit.Validate(); err != nil {
		return err
	}

	c.unit = unit
	return nil
}

func (c *ReorderQueueCommand) setOrderedIDs(ids []kernel.UUID) error {
	if len(ids) == 0 {
		return errs.NewValueIsRequiredError("orderedIDs")
	}

	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return err
		}
	}

	c.orderedIDs = make([]kernel.UUID, len(ids))
	copy(c.orderedIDs, ids)
	return nil
}
