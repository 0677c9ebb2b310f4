package ports

import (
	"context"
	"time"

	"quickbite/internal/core/domain/model/kernel"
	"quickbite/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Orders are durable, independently addressable by id, and queryable by
// owner identity and by status. They are never deleted; history is append-only.
type OrderRepository interface {
	// Add persists a new order aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order using an optimistic
	// version check: it fails with errs.ErrVersionIsInvalid when another
	// operation committed against the same aggregate version first. This is
	// the mechanism behind the exactly-one-winner concurrency contract.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by its internal unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByCustomer retrieves a customer's orders, most recent first.
	GetByCustomer(ctx context.Context, customerID string) ([]*order.Order, error)

	// GetAllInStatus retrieves orders currently in the given status.
	GetAllInStatus(ctx context.Context, status order.Status) ([]*order.Order, error)

	// GetStalePending retrieves unpaid pending orders created before the
	// cutoff, for expiry processing.
	GetStalePending(ctx context.Context, cutoff time.Time) ([]*order.Order, error)
}
