package commands

import (
	"context"

	"quickbite/internal/core/domain/model/order"
	"quickbite/internal/core/ports"
)

const notificationCategoryOrder = "order"

// notifyOrderStatus publishes the customer-facing notification for the
// order's current status. Called only after a successful commit, so a sink
// failure can never undo a state transition. Extra metadata entries (the
// delivery OTP, courier details) are merged into the payload.
func notifyOrderStatus(
	ctx context.Context,
	sink ports.NotificationSink,
	o *order.Order,
	extra map[string]string,
) {
	content := order.NotificationFor(o.Status(), o.Code())

	metadata := map[string]string{
		"order_id":   o.ID().String(),
		"order_code": o.Code(),
		"status":     string(o.Status()),
	}
	for key, value := range extra {
		metadata[key] = value
	}

	sink.Publish(ctx, ports.Notification{
		UserID:   o.CustomerID(),
		Title:    content.Title,
		Message:  content.Message,
		Category: notificationCategoryOrder,
		Icon:     string(o.Status()),
		Metadata: metadata,
	})
}
