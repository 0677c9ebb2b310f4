package commands

import (
	"context"
	"errors"
	"time"

	"quickbite/internal/core/domain/model/agent"
	"quickbite/internal/core/domain/model/order"
	"quickbite/internal/core/domain/services"
	"quickbite/internal/core/ports"
	"quickbite/internal/pkg/errs"
)

// AssignCourierCommandHandler assigns a delivery agent to an order that is
// ready for pickup. Updates both aggregates in a single transaction: the
// order records the courier snapshot and moves to out_for_delivery, the
// agent becomes busy with this order.
//
// When two agents race for the same order, the optimistic version check on
// the order row lets exactly one commit; the loser surfaces as
// order.ErrCourierAlreadyAssigned. The same check on the agent row guards
// two orders racing for one agent; there the loser surfaces as
// agent.ErrAgentBusy.
//
// Example:
//
//	handler := commands.NewAssignCourierCommandHandler(uowFactory, notifier)
//	err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, order.ErrCourierAlreadyAssigned):
//	    // lost the race
//	case errors.Is(err, agent.ErrAgentUnavailable), errors.Is(err, agent.ErrAgentBusy):
//	    // agent cannot take the order right now
//	}
type AssignCourierCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.NotificationSink
}

// NewAssignCourierCommandHandler creates a handler for courier assignment.
// Requires a UoWFactory spanning both the order and agent repositories.
func NewAssignCourierCommandHandler(uowFactory UoWFactory, notifier ports.NotificationSink) AssignCourierCommandHandler {
	return AssignCourierCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the courier assignment command.
// The agent must be online and idle; the order must be confirmed or
// preparing with no courier yet. On success the customer is notified that
// the order is out for delivery, with the handoff OTP and courier details
// in the payload.
func (h AssignCourierCommandHandler) Handle(ctx context.Context, cmd AssignCourierCommand) error {
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

	assignedOrder, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	courier, err := agentRepo.Get(ctx, cmd.AgentID())
	if err != nil {
		return err
	}

	if err = courier.AcceptOrder(assignedOrder.ID()); err != nil {
		return err
	}

	// Orders restored from before the OTP column carry no code; the
	// handoff gate still needs one before the courier leaves.
	if assignedOrder.DeliveryOtp() == "" {
		otp, otpErr := services.GenerateDeliveryOtp()
		if otpErr != nil {
			return otpErr
		}
		if err = assignedOrder.EnsureOtp(otp); err != nil {
			return err
		}
	}

	snapshot := order.CourierSnapshot{
		AgentID: courier.ID(),
		Name:    courier.Name(),
		Phone:   courier.Phone(),
	}
	if err = assignedOrder.AssignCourier(snapshot, time.Now()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, assignedOrder); err != nil {
		// A concurrent assignment committed first; to this caller the
		// order already has a courier.
		if errors.Is(err, errs.ErrVersionIsInvalid) {
			return order.ErrCourierAlreadyAssigned
		}
		return err
	}

	if err = agentRepo.Update(ctx, courier); err != nil {
		// A concurrent assignment claimed this agent first; to this
		// caller the agent is already busy.
		if errors.Is(err, errs.ErrVersionIsInvalid) {
			return agent.ErrAgentBusy
		}
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		if errors.Is(err, errs.ErrVersionIsInvalid) {
			return order.ErrCourierAlreadyAssigned
		}
		return err
	}

	notifyOrderStatus(ctx, h.notifier, assignedOrder, map[string]string{
		"delivery_otp":  assignedOrder.DeliveryOtp(),
		"courier_name":  snapshot.Name,
		"courier_phone": snapshot.Phone,
	})

	return nil
}
