package commands

import (
	"context"
	"time"

	"quickbite/internal/core/ports"
)

// VerifyDeliveryOtpCommandHandler finishes a handoff from the customer's
// side. Semantically identical to agent-side completion: the same OTP gate,
// the same commission settlement; only the authorization differs.
type VerifyDeliveryOtpCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.NotificationSink
}

// NewVerifyDeliveryOtpCommandHandler creates a handler for customer-side
// handoff confirmation. Requires a UoWFactory spanning both repositories.
func NewVerifyDeliveryOtpCommandHandler(uowFactory UoWFactory, notifier ports.NotificationSink) VerifyDeliveryOtpCommandHandler {
	return VerifyDeliveryOtpCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the customer-side handoff confirmation.
// The caller must own the order and submit the exact OTP. On success the
// order is delivered and the assigned agent's commission is settled in the
// same transaction.
func (h VerifyDeliveryOtpCommandHandler) Handle(ctx context.Context, cmd VerifyDeliveryOtpCommand) error {
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

	deliveredOrder, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if deliveredOrder.CustomerID() != cmd.CustomerID() {
		return ErrOrderAccessDenied
	}

	now := time.Now()
	if err = deliveredOrder.VerifyDeliveryOtp(cmd.Otp(), now); err != nil {
		return err
	}

	if err = settleDelivery(ctx, uow.AgentRepository(), deliveredOrder, now); err != nil {
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
