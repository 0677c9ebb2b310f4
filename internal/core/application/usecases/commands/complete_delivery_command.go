package commands

import (
	"errors"

	"quickbite/internal/core/domain/model/kernel"
	"quickbite/internal/pkg/errs"
	"quickbite/internal/pkg/guard"
)

var ErrCompleteDeliveryCommandIsNotConstructed = errors.New(
	"CompleteDeliveryCommand must be created via NewCompleteDeliveryCommand constructor",
)

// CompleteDeliveryCommand represents a delivery agent finishing a handoff.
// The agent submits the OTP the customer read out at the door; a match is
// the only path to the delivered status.
//
// Example:
//
//	cmd, err := commands.NewCompleteDeliveryCommand(orderID, agentID, "4821")
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
//	if errors.Is(err, order.ErrInvalidOtp) {
//	    // wrong code, order still out for delivery
//	}
type CompleteDeliveryCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	agentID kernel.UUID
	otp     string

	guard guard.ConstructorGuard
}

// NewCompleteDeliveryCommand creates a command for an agent-side handoff.
// Validates both identifiers and requires a non-empty OTP; whether the code
// matches is decided by the order aggregate, not here.
func NewCompleteDeliveryCommand(orderID, agentID kernel.UUID, otp string) (CompleteDeliveryCommand, error) {
	command := CompleteDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setAgentID(agentID),
		command.setOtp(otp),
	); err != nil {
		return CompleteDeliveryCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCompleteDeliveryCommandIsNotConstructed if validation fails.
func (c CompleteDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCompleteDeliveryCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being handed off.
func (c CompleteDeliveryCommand) OrderID() kernel.UUID {
	return c.orderID
}

// AgentID returns the identifier of the agent completing the delivery.
func (c CompleteDeliveryCommand) AgentID() kernel.UUID {
	return c.agentID
}

// Otp returns the submitted handoff code.
func (c CompleteDeliveryCommand) Otp() string {
	return c.otp
}

func (c *CompleteDeliveryCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CompleteDeliveryCommand) setAgentID(agentID kernel.UUID) error {
	if err := agentID.Validate(); err != nil {
		return err
	}

	c.agentID = agentID
	return nil
}

func (c *CompleteDeliveryCommand) setOtp(otp string) error {
	if otp == "" {
		return errs.NewValueIsRequiredError("otp")
	}

	c.otp = otp
	return nil
}
