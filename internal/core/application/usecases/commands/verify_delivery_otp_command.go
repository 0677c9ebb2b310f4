package commands

import (
	"errors"

	"quickbite/internal/core/domain/model/kernel"
	"quickbite/internal/pkg/errs"
	"quickbite/internal/pkg/guard"
)

var ErrVerifyDeliveryOtpCommandIsNotConstructed = errors.New(
	"VerifyDeliveryOtpCommand must be created via NewVerifyDeliveryOtpCommand constructor",
)

// VerifyDeliveryOtpCommand represents the customer confirming a handoff by
// submitting the delivery OTP themselves, for flows where the courier's app
// is unavailable at the door.
type VerifyDeliveryOtpCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	customerID string
	otp        string

	guard guard.ConstructorGuard
}

// NewVerifyDeliveryOtpCommand creates a command for a customer-side handoff
// confirmation. Validates the order ID and requires the caller identity and
// a non-empty OTP.
func NewVerifyDeliveryOtpCommand(orderID kernel.UUID, customerID, otp string) (VerifyDeliveryOtpCommand, error) {
	command := VerifyDeliveryOtpCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setCustomerID(customerID),
		command.setOtp(otp),
	); err != nil {
		return VerifyDeliveryOtpCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrVerifyDeliveryOtpCommandIsNotConstructed if validation fails.
func (c VerifyDeliveryOtpCommand) Validate() error {
	return c.guard.Validate(ErrVerifyDeliveryOtpCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being handed off.
func (c VerifyDeliveryOtpCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the identity of the caller; must match the order owner.
func (c VerifyDeliveryOtpCommand) CustomerID() string {
	return c.customerID
}

// Otp returns the submitted handoff code.
func (c VerifyDeliveryOtpCommand) Otp() string {
	return c.otp
}

func (c *VerifyDeliveryOtpCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *VerifyDeliveryOtpCommand) setCustomerID(customerID string) error {
	if customerID == "" {
		return errs.NewValueIsRequiredError("customerID")
	}

	c.customerID = customerID
	return nil
}

func (c *VerifyDeliveryOtpCommand) setOtp(otp string) error {
	if otp == "" {
		return errs.NewValueIsRequiredError("otp")
	}

	c.otp = otp
	return nil
}
