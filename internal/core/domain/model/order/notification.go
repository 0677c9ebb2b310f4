package order

import "fmt"

// StatusNotification holds the user-facing text emitted for a lifecycle
// transition. Exactly one notification is produced per committed transition.
type StatusNotification struct {
	Title   string
	Message string
}

// NotificationFor builds the customer-facing notification for an order code
// entering the given status. Canonical statuses get dedicated copy; any other
// status (administrative overrides with custom values) falls back to a
// generic templated message.
func NotificationFor(status Status, code string) StatusNotification {
	switch status {
	case StatusPending:
		return StatusNotification{
			Title:   "Order placed",
			Message: fmt.Sprintf("Your order %s has been placed and is awaiting payment confirmation.", code),
		}
	case StatusConfirmed:
		return StatusNotification{
			Title:   "Order confirmed",
			Message: fmt.Sprintf("Your order %s is confirmed. The restaurant will start preparing it shortly.", code),
		}
	case StatusPreparing:
		return StatusNotification{
			Title:   "Order being prepared",
			Message: fmt.Sprintf("The kitchen has started preparing your order %s.", code),
		}
	case StatusOutForDelivery:
		return StatusNotification{
			Title:   "Order on the way",
			Message: fmt.Sprintf("Your order %s is out for delivery.", code),
		}
	case StatusDelivered:
		return StatusNotification{
			Title:   "Order delivered",
			Message: fmt.Sprintf("Your order %s has been delivered. Enjoy your meal!", code),
		}
	case StatusCancelled:
		return StatusNotification{
			Title:   "Order cancelled",
			Message: fmt.Sprintf("Your order %s has been cancelled.", code),
		}
	default:
		return StatusNotification{
			Title:   "Order update",
			Message: fmt.Sprintf("Your order %s is now %s.", code, status),
		}
	}
}
