package commands

import (
	"errors"

	"quickbite/internal/core/domain/model/kernel"
	"quickbite/internal/pkg/guard"
)

var ErrUpdateAgentLocationCommandIsNotConstructed = errors.New(
	"UpdateAgentLocationCommand must be created via NewUpdateAgentLocationCommand constructor",
)

// UpdateAgentLocationCommand represents a location ping from an agent's
// device. Only the latest coarse position is kept.
type UpdateAgentLocationCommand struct { //nolint:recvcheck //using for validation
	agentID kernel.UUID
	point   kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewUpdateAgentLocationCommand creates a command to record an agent's
// current position. Validates the agent ID and the coordinates.
func NewUpdateAgentLocationCommand(agentID kernel.UUID, point kernel.GeoPoint) (UpdateAgentLocationCommand, error) {
	command := UpdateAgentLocationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setAgentID(agentID),
		command.setPoint(point),
	); err != nil {
		return UpdateAgentLocationCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrUpdateAgentLocationCommandIsNotConstructed if validation fails.
func (c UpdateAgentLocationCommand) Validate() error {
	return c.guard.Validate(ErrUpdateAgentLocationCommandIsNotConstructed)
}

// AgentID returns the identifier of the reporting agent.
func (c UpdateAgentLocationCommand) AgentID() kernel.UUID {
	return c.agentID
}

// Point returns the reported position.
func (c UpdateAgentLocationCommand) Point() kernel.GeoPoint {
	return c.point
}

func (c *UpdateAgentLocationCommand) setAgentID(agentID kernel.UUID) error {
	if err := agentID.Validate(); err != nil {
		return err
	}

	c.agentID = agentID
	return nil
}

func (c *UpdateAgentLocationCommand) setPoint(point kernel.GeoPoint) error {
	if err := point.Validate(); err != nil {
		return err
	}

	c.point = point
	return nil
}
