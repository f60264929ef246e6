package commands

import (
	"errors"

	"rotafila/internal/pkg/guard"
)

var ErrSweepOverdueCommandIsNotConstructed = errors.New(
	"SweepOverdueCommand must be created via NewSweepOverdueCommand constructor",
)

// SweepOverdueCommand triggers the overtime failsafe: every courier out
// delivering past the threshold is forced back into the queue.
type SweepOverdueCommand struct {
	guard guard.ConstructorGuard
}

// NewSweepOverdueCommand creates a command to run the overtime sweep.
func NewSweepOverdueCommand() SweepOverdueCommand {
	return SweepOverdueCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c SweepOverdueCommand) Validate() error {
	return c.guard.Validate(ErrSweepOverdueCommandIsNotConstructed)
}
