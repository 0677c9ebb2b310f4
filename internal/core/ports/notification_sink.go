package ports

import "context"

// Notification is one user-facing lifecycle event.
type Notification struct {
	UserID   string
	Title    string
	Message  string
	Category string
	Icon     string
	Metadata map[string]string
}

// NotificationSink accepts lifecycle events for user-facing delivery.
//
// Delivery is best-effort and fire-and-forget: implementations must never
// block the caller on delivery and must swallow (and log) failures, so that
// a notification problem is structurally incapable of affecting a committed
// state transition.
type NotificationSink interface {
	Publish(ctx context.Context, notification Notification)
}
