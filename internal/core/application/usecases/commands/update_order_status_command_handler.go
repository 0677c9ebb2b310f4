package commands

import (
	"context"
	"time"

	"quickbite/internal/core/domain/model/order"
	"quickbite/internal/core/ports"
)

// UpdateOrderStatusCommandHandler applies administrative status updates.
// The override bypasses the transition guards but can never resurrect a
// delivered or cancelled order, and the customer is notified of every
// change, including custom statuses. Cancelling an order that already has
// a courier also frees that courier in the same transaction.
type UpdateOrderStatusCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.NotificationSink
}

// NewUpdateOrderStatusCommandHandler creates a handler for administrative
// status updates. Requires a UoWFactory spanning both repositories so a
// cancellation can release the assigned courier atomically.
func NewUpdateOrderStatusCommandHandler(
	uowFactory UoWFactory,
	notifier ports.NotificationSink,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the status update command.
// Loads the order, applies the override, and persists the change. Known
// target statuses stamp their lifecycle timestamps; unknown ones are
// recorded verbatim and notified with the generic message template.
func (h UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) error {
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

	updated, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = updated.OverrideStatus(cmd.Target(), time.Now()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, updated); err != nil {
		return err
	}

	// Cancelling a dispatched order strands its courier unless the active
	// order is dropped here; the agent would otherwise stay busy forever.
	if cmd.Target() == order.StatusCancelled && updated.Courier() != nil {
		agentRepo := uow.AgentRepository()
		courier, agentErr := agentRepo.Get(ctx, updated.Courier().AgentID)
		if agentErr != nil {
			return agentErr
		}
		if courier.CurrentOrderID() != nil && courier.CurrentOrderID().IsEqual(updated.ID()) {
			courier.ReleaseOrder()
			if agentErr = agentRepo.Update(ctx, courier); agentErr != nil {
				return agentErr
			}
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	notifyOrderStatus(ctx, h.notifier, updated, nil)

	return nil
}
