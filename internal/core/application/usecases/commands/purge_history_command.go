package commands

import (
	"errors"

	"rotafila/internal/pkg/guard"
)

var ErrPurgeHistoryCommandIsNotConstructed = errors.New(
	"PurgeHistoryCommand must be created via NewPurgeHistoryCommand constructor",
)

// PurgeHistoryCommand deletes delivery events from previous days. The purge
// waits for midday so the morning crew can still read yesterday's report.
type PurgeHistoryCommand struct {
	guard guard.ConstructorGuard
}

// NewPurgeHistoryCommand creates a command to purge old delivery events.
func NewPurgeHistoryCommand() PurgeHistoryCommand {
	return PurgeHistoryCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c PurgeHistoryCommand) Validate() error {
	return c.guard.Validate(ErrPurgeHistoryCommandIsNotConstructed)
}
