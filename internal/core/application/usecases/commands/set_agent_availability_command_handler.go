package commands

import (
	"context"
	"errors"

	"quickbite/internal/core/domain/model/agent"
	"quickbite/internal/core/domain/model/kernel"
	"quickbite/internal/pkg/errs"
)

// SetAgentAvailabilityCommandHandler toggles an agent's online flag.
// Unknown phone numbers going online get a profile created on the fly, so
// agents never need a separate registration step.
type SetAgentAvailabilityCommandHandler struct {
	uowFactory AgentUoWFactory
}

// NewSetAgentAvailabilityCommandHandler creates a handler for availability
// toggles. Requires an AgentUoWFactory for transactional persistence.
func NewSetAgentAvailabilityCommandHandler(uowFactory AgentUoWFactory) SetAgentAvailabilityCommandHandler {
	return SetAgentAvailabilityCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the availability command.
// Looks the agent up by phone; a missing agent going online is created,
// a missing agent going offline is a not-found error. Going offline never
// drops an active order: the agent stays responsible for it until handoff.
func (h SetAgentAvailabilityCommandHandler) Handle(ctx context.Context, cmd SetAgentAvailabilityCommand) error {
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

	courier, err := agentRepo.GetByPhone(ctx, cmd.Phone())
	switch {
	case errors.Is(err, errs.ErrObjectNotFound) && cmd.Online():
		courier, err = agent.NewDeliveryAgent(kernel.NewUUID(), cmd.Name(), cmd.Phone(), cmd.Vehicle())
		if err != nil {
			return err
		}
		courier.SetOnline(true)

		if err = agentRepo.Add(ctx, courier); err != nil {
			return err
		}
	case err != nil:
		return err
	default:
		courier.SetOnline(cmd.Online())

		if err = agentRepo.Update(ctx, courier); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
