package commands

import (
	"errors"

	"quickbite/internal/pkg/errs"
	"quickbite/internal/pkg/guard"
)

var ErrSetAgentAvailabilityCommandIsNotConstructed = errors.New(
	"SetAgentAvailabilityCommand must be created via NewSetAgentAvailabilityCommand constructor",
)

// SetAgentAvailabilityCommand represents a delivery agent going online or
// offline. Agents are keyed by phone number; the first time an unknown
// phone goes online, an agent profile is created from the supplied name and
// vehicle.
//
// Example:
//
//	cmd, err := commands.NewSetAgentAvailabilityCommand("+919876543210", "Ravi", "bike", true)
//	if err != nil {
//	    return err
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return err
//	}
type SetAgentAvailabilityCommand struct { //nolint:recvcheck //using for validation
	phone   string
	name    string
	vehicle string
	online  bool

	guard guard.ConstructorGuard
}

// NewSetAgentAvailabilityCommand creates a command to toggle agent
// availability. The phone is required; name and vehicle are only consulted
// when a new profile has to be created.
func NewSetAgentAvailabilityCommand(phone, name, vehicle string, online bool) (SetAgentAvailabilityCommand, error) {
	command := SetAgentAvailabilityCommand{
		name:    name,
		vehicle: vehicle,
		online:  online,
		guard:   guard.NewConstructorGuard(),
	}

	if err := command.setPhone(phone); err != nil {
		return SetAgentAvailabilityCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrSetAgentAvailabilityCommandIsNotConstructed if validation fails.
func (c SetAgentAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrSetAgentAvailabilityCommandIsNotConstructed)
}

// Phone returns the agent's phone number, the external agent key.
func (c SetAgentAvailabilityCommand) Phone() string {
	return c.phone
}

// Name returns the display name used when creating a new agent profile.
func (c SetAgentAvailabilityCommand) Name() string {
	return c.name
}

// Vehicle returns the vehicle type used when creating a new agent profile.
func (c SetAgentAvailabilityCommand) Vehicle() string {
	return c.vehicle
}

// Online reports whether the agent is going online or offline.
func (c SetAgentAvailabilityCommand) Online() bool {
	return c.online
}

func (c *SetAgentAvailabilityCommand) setPhone(phone string) error {
	if phone == "" {
		return errs.NewValueIsRequiredError("phone")
	}

	c.phone = phone
	return nil
}
