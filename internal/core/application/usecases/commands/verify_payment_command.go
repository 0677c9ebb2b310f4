package commands

import (
	"errors"

	"quickbite/internal/core/domain/model/kernel"
	"quickbite/internal/pkg/errs"
	"quickbite/internal/pkg/guard"
)

var ErrVerifyPaymentCommandIsNotConstructed = errors.New(
	"VerifyPaymentCommand must be created via NewVerifyPaymentCommand constructor",
)

// VerifyPaymentCommand represents a request to confirm an online payment.
// Carries the gateway's order/payment identifiers and the signature that
// cryptographically binds them.
//
// Example:
//
//	cmd, err := commands.NewVerifyPaymentCommand(orderID, "cust-42", gwOrder, gwPayment, signature)
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
//	if errors.Is(err, ports.ErrInvalidSignature) {
//	    // payment rejected, order stays pending
//	}
type VerifyPaymentCommand struct { //nolint:recvcheck //using for validation
	orderID          kernel.UUID
	customerID       string
	gatewayOrderID   string
	gatewayPaymentID string
	signature        string

	guard guard.ConstructorGuard
}

// NewVerifyPaymentCommand creates a command to verify an online payment.
// Validates that the order ID is valid and the caller identity, gateway
// identifiers, and signature are all present.
func NewVerifyPaymentCommand(
	orderID kernel.UUID,
	customerID string,
	gatewayOrderID string,
	gatewayPaymentID string,
	signature string,
) (VerifyPaymentCommand, error) {
	command := VerifyPaymentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setCustomerID(customerID),
		command.setGatewayIDs(gatewayOrderID, gatewayPaymentID),
		command.setSignature(signature),
	); err != nil {
		return VerifyPaymentCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrVerifyPaymentCommandIsNotConstructed if validation fails.
func (c VerifyPaymentCommand) Validate() error {
	return c.guard.Validate(ErrVerifyPaymentCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being paid.
func (c VerifyPaymentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the identity of the caller; must match the order owner.
func (c VerifyPaymentCommand) CustomerID() string {
	return c.customerID
}

// GatewayOrderID returns the payment gateway's order identifier.
func (c VerifyPaymentCommand) GatewayOrderID() string {
	return c.gatewayOrderID
}

// GatewayPaymentID returns the payment gateway's payment identifier.
func (c VerifyPaymentCommand) GatewayPaymentID() string {
	return c.gatewayPaymentID
}

// Signature returns the gateway signature binding the order/payment pair.
func (c VerifyPaymentCommand) Signature() string {
	return c.signature
}

func (c *VerifyPaymentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *VerifyPaymentCommand) setCustomerID(customerID string) error {
	if customerID == "" {
		return errs.NewValueIsRequiredError("customerID")
	}

	c.customerID = customerID
	return nil
}

func (c *VerifyPaymentCommand) setGatewayIDs(gatewayOrderID, gatewayPaymentID string) error {
	if gatewayOrderID == "" {
		return errs.NewValueIsRequiredError("gatewayOrderID")
	}
	if gatewayPaymentID == "" {
		return errs.NewValueIsRequiredError("gatewayPaymentID")
	}

	c.gatewayOrderID = gatewayOrderID
	c.gatewayPaymentID = gatewayPaymentID
	return nil
}

func (c *VerifyPaymentCommand) setSignature(signature string) error {
	if signature == "" {
		return errs.NewValueIsRequiredError("signature")
	}

	c.signature = signature
	return nil
}
