package commands

import (
	"context"
	"time"
)

// UpdateAgentLocationCommandHandler records agent location pings.
type UpdateAgentLocationCommandHandler struct {
	uowFactory AgentUoWFactory
}

// NewUpdateAgentLocationCommandHandler creates a handler for location pings.
func NewUpdateAgentLocationCommandHandler(uowFactory AgentUoWFactory) UpdateAgentLocationCommandHandler {
	return UpdateAgentLocationCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the location ping.
// Overwrites the agent's last known position and its timestamp.
func (h UpdateAgentLocationCommandHandler) Handle(ctx context.Context, cmd UpdateAgentLocationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	agentRepo := uow.AgentRepository()

	courier, err := agentRepo.Get(ctx, cmd.AgentID())
	if err != nil {
		return err
	}

	if err = courier.UpdateLocation(cmd.Point(), time.Now()); err != nil {
		return err
	}

	if err = agentRepo.Update(ctx, courier); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
