package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"
)

// RestaurantStatus is the event payload pushed to feed subscribers.
type RestaurantStatus struct {
	Open    bool   `json:"open"`
	Message string `json:"message,omitempty"`
}

// RestaurantFeed broadcasts restaurant open/closed changes to SSE
// subscribers. Each subscriber gets a buffered channel; a subscriber that
// cannot keep up misses events instead of blocking the broadcast, and the
// next event brings it back in sync because every event carries the full
// status.
type RestaurantFeed struct {
	mu          sync.RWMutex
	subscribers map[chan RestaurantStatus]struct{}
	current     RestaurantStatus
	logger      *slog.Logger
}

// NewRestaurantFeed creates a feed that starts in the open state.
func NewRestaurantFeed(logger *slog.Logger) *RestaurantFeed {
	return &RestaurantFeed{
		subscribers: make(map[chan RestaurantStatus]struct{}),
		current:     RestaurantStatus{Open: true},
		logger:      logger.With("component", "restaurant_feed"),
	}
}

// Current returns the latest broadcast status.
func (f *RestaurantFeed) Current() RestaurantStatus {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.current
}

// Subscribe registers a new listener and returns its event channel. The
// channel is primed with the current status so late joiners render
// immediately.
func (f *RestaurantFeed) Subscribe() chan RestaurantStatus {
	events := make(chan RestaurantStatus, 8)

	f.mu.Lock()
	f.subscribers[events] = struct{}{}
	events <- f.current
	count := len(f.subscribers)
	f.mu.Unlock()

	f.logger.Debug("Feed subscriber added", "subscribers", count)
	return events
}

// Unsubscribe removes the listener. Safe to call for a channel that was
// already removed.
func (f *RestaurantFeed) Unsubscribe(events chan RestaurantStatus) {
	f.mu.Lock()
	delete(f.subscribers, events)
	count := len(f.subscribers)
	f.mu.Unlock()

	f.logger.Debug("Feed subscriber removed", "subscribers", count)
}

// Broadcast stores the new status and fans it out to every subscriber
// without blocking on any of them.
func (f *RestaurantFeed) Broadcast(status RestaurantStatus) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.current = status
	for events := range f.subscribers {
		select {
		case events <- status:
		default:
		}
	}
}

// SubscriberCount reports the number of connected listeners.
func (f *RestaurantFeed) SubscriberCount() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.subscribers)
}

// RestaurantStatusFeed handles GET /api/v1/restaurant/feed as an SSE stream.
// The subscription lasts until the client disconnects.
func (s *Server) RestaurantStatusFeed(ctx echo.Context) error {
	response := ctx.Response()
	response.Header().Set(echo.HeaderContentType, "text/event-stream")
	response.Header().Set(echo.HeaderCacheControl, "no-cache")
	response.Header().Set(echo.HeaderConnection, "keep-alive")
	response.WriteHeader(http.StatusOK)

	events := s.restaurantFeed.Subscribe()
	defer s.restaurantFeed.Unsubscribe(events)

	for {
		select {
		case <-ctx.Request().Context().Done():
			return nil
		case status := <-events:
			payload, err := json.Marshal(status)
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintf(response, "event: restaurant_status\ndata: %s\n\n", payload); err != nil {
				return nil
			}
			response.Flush()
		}
	}
}

type restaurantStatusRequest struct {
	Open    bool   `json:"open"`
	Message string `json:"message"`
}

// SetRestaurantStatus handles POST /api/v1/restaurant/status and broadcasts
// the change to all feed subscribers.
func (s *Server) SetRestaurantStatus(ctx echo.Context) error {
	var req restaurantStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, envelope{Success: false, Message: "invalid request body"})
	}

	status := RestaurantStatus{Open: req.Open, Message: req.Message}
	s.restaurantFeed.Broadcast(status)

	return respond(ctx, http.StatusOK, status)
}
