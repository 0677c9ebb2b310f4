package commands

import (
	"context"
	"errors"
	"time"

	"quickbite/internal/core/ports"
)

// ErrNotAssignedAgent is returned when an agent tries to complete a
// delivery that is assigned to a different agent (or to nobody).
var ErrNotAssignedAgent = errors.New("order is assigned to a different agent")

// CompleteDeliveryCommandHandler finishes a handoff from the agent's side.
// A matching OTP marks the order delivered, credits the agent's commission,
// records the earning entry, and frees the agent, all in one transaction.
//
// Example:
//
//	handler := commands.NewCompleteDeliveryCommandHandler(uowFactory, notifier)
//	err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, order.ErrInvalidOtp):
//	    // wrong code, nothing changed
//	case errors.Is(err, commands.ErrNotAssignedAgent):
//	    // caller is not this order's courier
//	}
type CompleteDeliveryCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.NotificationSink
}

// NewCompleteDeliveryCommandHandler creates a handler for agent-side
// delivery completion. Requires a UoWFactory spanning both repositories.
func NewCompleteDeliveryCommandHandler(uowFactory UoWFactory, notifier ports.NotificationSink) CompleteDeliveryCommandHandler {
	return CompleteDeliveryCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the delivery completion command.
// Only the assigned agent may complete the handoff, and only with the
// correct OTP. A failed check leaves the order, the agent, and the
// earnings history untouched.
func (h CompleteDeliveryCommandHandler) Handle(ctx context.Context, cmd CompleteDeliveryCommand) error {
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

	orderRepo := uow.OrderRepository()
	agentRepo := uow.AgentRepository()

	deliveredOrder, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	snapshot := deliveredOrder.Courier()
	if snapshot == nil || !snapshot.AgentID.IsEqual(cmd.AgentID()) {
		return ErrNotAssignedAgent
	}

	now := time.Now()
	if err = deliveredOrder.VerifyDeliveryOtp(cmd.Otp(), now); err != nil {
		return err
	}

	if err = settleDelivery(ctx, agentRepo, deliveredOrder, now); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, deliveredOrder); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	notifyOrderStatus(ctx, h.notifier, deliveredOrder, nil)

	return nil
}
