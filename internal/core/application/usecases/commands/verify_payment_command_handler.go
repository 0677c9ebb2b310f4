package commands

import (
	"context"
	"errors"
	"time"

	"quickbite/internal/core/ports"
)

// ErrOrderAccessDenied is returned when the caller does not own the order
// it is trying to act on.
var ErrOrderAccessDenied = errors.New("order belongs to a different customer")

// VerifyPaymentCommandHandler confirms online payments. The caller must
// own the order; only then is the signature checked against the payment
// gateway's shared secret before the order may move from pending to
// confirmed. A rejected signature leaves the order untouched.
//
// Example:
//
//	handler := commands.NewVerifyPaymentCommandHandler(uowFactory, verifier, notifier)
//	err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, ports.ErrInvalidSignature):
//	    // forged or corrupted callback
//	case errors.Is(err, commands.ErrOrderAccessDenied):
//	    // caller is not the order owner
//	}
type VerifyPaymentCommandHandler struct {
	uowFactory OrderUoWFactory
	verifier   ports.PaymentVerifier
	notifier   ports.NotificationSink
}

// NewVerifyPaymentCommandHandler creates a handler for payment verification.
// Requires an OrderUoWFactory for persistence, a PaymentVerifier for the
// signature check, and a NotificationSink for the confirmation notification.
func NewVerifyPaymentCommandHandler(
	uowFactory OrderUoWFactory,
	verifier ports.PaymentVerifier,
	notifier ports.NotificationSink,
) VerifyPaymentCommandHandler {
	return VerifyPaymentCommandHandler{
		uowFactory: uowFactory,
		verifier:   verifier,
		notifier:   notifier,
	}
}

// Handle processes the payment verification command.
// Loads the order and checks ownership before touching the verifier, so a
// caller probing someone else's order learns nothing about signature
// validity. Only then is the gateway signature checked and the order moved
// from pending to confirmed, all within a single transaction.
func (h VerifyPaymentCommandHandler) Handle(ctx context.Context, cmd VerifyPaymentCommand) error {
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

	paidOrder, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if paidOrder.CustomerID() != cmd.CustomerID() {
		return ErrOrderAccessDenied
	}

	if err = h.verifier.Verify(cmd.GatewayOrderID(), cmd.GatewayPaymentID(), cmd.Signature()); err != nil {
		return err
	}

	if err = paidOrder.ConfirmPayment(
		cmd.GatewayOrderID(),
		cmd.GatewayPaymentID(),
		cmd.Signature(),
		time.Now(),
	); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, paidOrder); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	notifyOrderStatus(ctx, h.notifier, paidOrder, nil)

	return nil
}
