package notifier_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"quickbite/internal/adapters/out/notifier"
	"quickbite/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestHTTPNotifier_Publish(t *testing.T) {
	t.Run("should post the notification as JSON", func(t *testing.T) {
		var mu sync.Mutex
		var received []ports.Notification

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "/notifications", r.URL.Path)

			var n ports.Notification
			require.NoError(t, json.NewDecoder(r.Body).Decode(&n))

			mu.Lock()
			received = append(received, n)
			mu.Unlock()

			w.WriteHeader(http.StatusAccepted)
		}))
		defer server.Close()

		sink := notifier.NewHTTPNotifier(server.URL, discardLogger())
		sink.Publish(context.Background(), ports.Notification{
			UserID:   "cust-42",
			Title:    "Order placed",
			Message:  "Your order ORD-1 is now pending.",
			Category: "order",
			Icon:     "pending",
			Metadata: map[string]string{"order_code": "ORD-1"},
		})

		assert.Eventually(t, func() bool {
			mu.Lock()
			defer mu.Unlock()
			return len(received) == 1
		}, 2*time.Second, 10*time.Millisecond)

		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, "cust-42", received[0].UserID)
		assert.Equal(t, "Order placed", received[0].Title)
		assert.Equal(t, "ORD-1", received[0].Metadata["order_code"])
	})

	t.Run("should not block or panic when the push service is down", func(t *testing.T) {
		sink := notifier.NewHTTPNotifier("http://127.0.0.1:1", discardLogger())

		done := make(chan struct{})
		go func() {
			sink.Publish(context.Background(), ports.Notification{UserID: "cust-42", Title: "Order placed"})
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("Publish blocked on an unreachable push service")
		}
	})
}
