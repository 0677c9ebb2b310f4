package commands

import (
	"errors"

	"quickbite/internal/pkg/guard"
)

var ErrExpireStaleOrdersCommandIsNotConstructed = errors.New(
	"ExpireStaleOrdersCommand must be created via NewExpireStaleOrdersCommand constructor",
)

// ExpireStaleOrdersCommand triggers cancellation of unpaid pending orders
// older than the configured time-to-live. Run periodically by the job
// scheduler.
//
// Example:
//
//	cmd := commands.NewExpireStaleOrdersCommand()
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    log.Printf("expiry sweep failed: %v", err)
//	}
type ExpireStaleOrdersCommand struct {
	guard guard.ConstructorGuard
}

// NewExpireStaleOrdersCommand creates a command to sweep stale pending orders.
// This is a parameterless command; the cutoff is the handler's configuration.
func NewExpireStaleOrdersCommand() ExpireStaleOrdersCommand {
	return ExpireStaleOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
// Returns ErrExpireStaleOrdersCommandIsNotConstructed if validation fails.
func (c *ExpireStaleOrdersCommand) Validate() error {
	return c.guard.Validate(ErrExpireStaleOrdersCommandIsNotConstructed)
}
