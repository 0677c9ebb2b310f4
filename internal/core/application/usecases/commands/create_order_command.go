package commands

import (
	"errors"

	"quickbite/internal/core/domain/model/kernel"
	"quickbite/internal/core/domain/model/order"
	"quickbite/internal/pkg/errs"
	"quickbite/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrItemsAreRequired = errors.New("order must contain at least one item")
)

// OrderItemInput identifies one menu item and the desired quantity.
// Name and price are looked up and snapshotted by the handler; clients
// never supply prices.
type OrderItemInput struct {
	MenuItemID kernel.UUID
	Quantity   int
}

// CreateOrderCommand represents a request to place a new food order.
// Carries the customer identity, the requested menu items, the drop-off
// address, and the chosen payment method.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	items := []commands.OrderItemInput{{MenuItemID: pizzaID, Quantity: 2}}
//	cmd, err := commands.NewCreateOrderCommand(orderID, "cust-42", items, address, order.PaymentMethodOnline)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := commands.NewCreateOrderCommandHandler(uowFactory, menu, settings, notifier)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to place order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	customerID    string
	items         []OrderItemInput
	address       order.DeliveryAddress
	paymentMethod order.PaymentMethod

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new order.
// Validates that the order ID is valid, the customer is identified, at
// least one item with a positive quantity is requested, the address is
// complete, and the payment method is supported.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	customerID string,
	items []OrderItemInput,
	address order.DeliveryAddress,
	paymentMethod order.PaymentMethod,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setCustomerID(customerID),
		orderCommand.setItems(items),
		orderCommand.setAddress(address),
		orderCommand.setPaymentMethod(paymentMethod),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the identity of the ordering customer.
func (c CreateOrderCommand) CustomerID() string {
	return c.customerID
}

// Items returns the requested menu items and quantities.
func (c CreateOrderCommand) Items() []OrderItemInput {
	items := make([]OrderItemInput, len(c.items))
	copy(items, c.items)
	return items
}

// Address returns the drop-off destination.
func (c CreateOrderCommand) Address() order.DeliveryAddress {
	return c.address
}

// PaymentMethod returns the chosen payment method.
func (c CreateOrderCommand) PaymentMethod() order.PaymentMethod {
	return c.paymentMethod
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCustomerID(customerID string) error {
	if customerID == "" {
		return errs.NewValueIsRequiredError("customerID")
	}

	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setItems(items []OrderItemInput) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}

	for _, item := range items {
		if err := item.MenuItemID.Validate(); err != nil {
			return err
		}
		if item.Quantity <= 0 {
			return errs.NewValueIsOutOfRangeError("quantity", item.Quantity, 1, 100)
		}
	}

	c.items = make([]OrderItemInput, len(items))
	copy(c.items, items)
	return nil
}

func (c *CreateOrderCommand) setAddress(address order.DeliveryAddress) error {
	if err := address.Validate(); err != nil {
		return err
	}

	c.address = address
	return nil
}

func (c *CreateOrderCommand) setPaymentMethod(paymentMethod order.PaymentMethod) error {
	if err := paymentMethod.Validate(); err != nil {
		return err
	}

	c.paymentMethod = paymentMethod
	return nil
}
