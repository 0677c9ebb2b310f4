package ports

import (
	"context"

	"quickbite/internal/core/domain/model/kernel"
)

// MenuItem is the read model the core needs from the externally managed
// menu: enough to snapshot price and display name onto a new order.
type MenuItem struct {
	ID        kernel.UUID
	Name      string
	UnitPrice kernel.Money
	Available bool
}

// MenuProvider supplies menu items for order creation. Menu CRUD itself is
// an external collaborator; the core only reads current items.
type MenuProvider interface {
	// Item returns the menu item with the given id, or an
	// errs.ErrObjectNotFound classified error when absent.
	Item(ctx context.Context, id kernel.UUID) (MenuItem, error)
}
