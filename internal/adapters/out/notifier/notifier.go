package notifier

import (
	"context"
	"log/slog"
	"time"

	"quickbite/internal/core/ports"

	"github.com/go-resty/resty/v2"
)

// HTTPNotifier delivers notifications to an external push service over HTTP.
// Publish is fire-and-forget: delivery runs on its own goroutine and failures
// are logged, never returned, so a flaky push service cannot undo or delay a
// committed order transition.
type HTTPNotifier struct {
	client *resty.Client
	logger *slog.Logger
}

// NewHTTPNotifier creates a notifier posting to the push service at baseURL.
func NewHTTPNotifier(baseURL string, logger *slog.Logger) *HTTPNotifier {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(5 * time.Second).
		SetRetryCount(2)

	return &HTTPNotifier{
		client: client,
		logger: logger.With("component", "http_notifier"),
	}
}

// Publish sends the notification in the background. The caller's context is
// deliberately not used for the request: the caller's transaction has already
// committed and must not be tied to delivery.
func (n *HTTPNotifier) Publish(_ context.Context, notification ports.Notification) {
	go func() {
		ctx := context.Background()

		resp, err := n.client.R().
			SetContext(ctx).
			SetHeader("Content-Type", "application/json").
			SetBody(notification).
			Post("/notifications")
		if err != nil {
			n.logger.ErrorContext(ctx, "Notification delivery failed",
				"user_id", notification.UserID,
				"title", notification.Title,
				"error", err)
			return
		}

		if resp.IsError() {
			n.logger.ErrorContext(ctx, "Notification rejected by push service",
				"user_id", notification.UserID,
				"title", notification.Title,
				"status", resp.StatusCode())
		}
	}()
}
