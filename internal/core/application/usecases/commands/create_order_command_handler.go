package commands

import (
	"context"
	"errors"
	"time"

	"quickbite/internal/core/domain/model/kernel"
	"quickbite/internal/core/domain/model/order"
	"quickbite/internal/core/domain/services"
	"quickbite/internal/core/ports"
)

// ErrMenuItemUnavailable is returned when a requested menu item exists but
// is currently not available for ordering.
var ErrMenuItemUnavailable = errors.New("menu item is not available")

// CreateOrderCommandHandler handles the business logic for order placement.
// Snapshots menu prices onto line items, computes the full fee breakdown,
// generates the order code and delivery OTP, and persists the order.
//
// Online orders start in pending status awaiting payment verification;
// cash-on-delivery orders are confirmed immediately.
//
// Example:
//
//	handler := commands.NewCreateOrderCommandHandler(uowFactory, menu, settings, notifier)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    switch {
//	    case errors.Is(err, services.ErrOutOfServiceArea):
//	        // drop-off is outside the delivery radius
//	    case errors.Is(err, commands.ErrMenuItemUnavailable):
//	        // an item went off the menu
//	    }
//	}
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	menu       ports.MenuProvider
	settings   ports.SettingsProvider
	notifier   ports.NotificationSink
}

// NewCreateOrderCommandHandler creates a handler for order placement.
// Requires an OrderUoWFactory for transactional persistence, a MenuProvider
// for price snapshots, a SettingsProvider for the fee configuration, and a
// NotificationSink for the placement notification.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	menu ports.MenuProvider,
	settings ports.SettingsProvider,
	notifier ports.NotificationSink,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		menu:       menu,
		settings:   settings,
		notifier:   notifier,
	}
}

// Handle processes the order placement command.
// Looks up every requested menu item, snapshots its current name and price
// onto a line item, derives the fee breakdown from the delivery settings,
// and persists the new order within a transaction. Publishes the placement
// notification only after the commit succeeds.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	items, err := h.snapshotItems(ctx, cmd.Items())
	if err != nil {
		return err
	}

	subtotal := kernel.Money(0)
	for _, item := range items {
		subtotal = subtotal.Add(item.LineTotal())
	}

	settings := h.settings.Current()
	fees, err := services.NewFeeCalculator().Calculate(subtotal, cmd.Address().Point, settings)
	if err != nil {
		return err
	}

	code, err := services.GenerateOrderCode(time.Now())
	if err != nil {
		return err
	}

	otp, err := services.GenerateDeliveryOtp()
	if err != nil {
		return err
	}

	newOrder, err := order.NewOrder(
		cmd.OrderID(),
		code,
		cmd.CustomerID(),
		items,
		cmd.Address(),
		cmd.PaymentMethod(),
		fees.DeliveryCharge,
		fees.PlatformFee,
		fees.GST,
		otp,
		time.Now(),
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	notifyOrderStatus(ctx, h.notifier, newOrder, nil)

	return nil
}

func (h CreateOrderCommandHandler) snapshotItems(
	ctx context.Context,
	inputs []OrderItemInput,
) ([]order.LineItem, error) {
	items := make([]order.LineItem, 0, len(inputs))
	for _, input := range inputs {
		menuItem, err := h.menu.Item(ctx, input.MenuItemID)
		if err != nil {
			return nil, err
		}
		if !menuItem.Available {
			return nil, ErrMenuItemUnavailable
		}

		lineItem, err := order.NewLineItem(menuItem.ID, menuItem.Name, menuItem.UnitPrice, input.Quantity)
		if err != nil {
			return nil, err
		}

		items = append(items, lineItem)
	}

	return items, nil
}
