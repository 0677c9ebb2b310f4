package commands

import (
	"context"
	"time"

	"quickbite/internal/core/domain/model/agent"
	"quickbite/internal/core/domain/model/kernel"
	"quickbite/internal/core/domain/model/order"
	"quickbite/internal/core/domain/services"
	"quickbite/internal/core/ports"
)

// settleDelivery finalizes a handoff after the OTP already passed: it marks
// the assigned agent's delivery complete, accrues the commission, appends
// the immutable earning entry, and frees the agent for the next order. All
// writes stay inside the caller's transaction.
func settleDelivery(
	ctx context.Context,
	agentRepo ports.AgentRepository,
	deliveredOrder *order.Order,
	now time.Time,
) error {
	snapshot := deliveredOrder.Courier()
	if snapshot == nil {
		return nil
	}

	courier, err := agentRepo.Get(ctx, snapshot.AgentID)
	if err != nil {
		return err
	}

	commission := services.CommissionFor(deliveredOrder.Total())
	if err = courier.CompleteDelivery(deliveredOrder.ID(), commission); err != nil {
		return err
	}

	earning, err := agent.NewEarning(
		kernel.NewUUID(),
		courier.ID(),
		deliveredOrder.ID(),
		commission,
		deliveredOrder.Total(),
		now,
	)
	if err != nil {
		return err
	}

	if err = agentRepo.Update(ctx, courier); err != nil {
		return err
	}

	return agentRepo.AddEarning(ctx, earning)
}
