package order

import (
	"errors"

	"quickbite/internal/core/domain/model/kernel"
	"quickbite/internal/pkg/errs"
	"quickbite/internal/pkg/guard"
)

// ErrLineItemIsNotConstructed is returned when a LineItem was not created via
// the NewLineItem constructor.
var ErrLineItemIsNotConstructed = errors.New("LineItem must be created via NewLineItem constructor")

// LineItem is an immutable snapshot of one ordered menu item.
// The name and unit price are captured at order creation time so that later
// menu edits never change historical orders.
type LineItem struct {
	menuItemID kernel.UUID
	name       string
	unitPrice  kernel.Money
	quantity   int
	guard      guard.ConstructorGuard
}

// NewLineItem creates a validated line-item snapshot.
// Quantity must be at least 1, the display name must be non-empty, and the
// unit price must not be negative.
func NewLineItem(menuItemID kernel.UUID, name string, unitPrice kernel.Money, quantity int) (LineItem, error) {
	item := LineItem{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		item.setMenuItemID(menuItemID),
		item.setName(name),
		item.setUnitPrice(unitPrice),
		item.setQuantity(quantity),
	); err != nil {
		return LineItem{}, err
	}

	return item, nil
}

// Validate checks that the LineItem was created via NewLineItem.
func (i LineItem) Validate() error {
	return i.guard.Validate(ErrLineItemIsNotConstructed)
}

// MenuItemID returns the referenced menu item's identifier.
func (i LineItem) MenuItemID() kernel.UUID {
	return i.menuItemID
}

// Name returns the display name snapshotted at order time.
func (i LineItem) Name() string {
	return i.name
}

// UnitPrice returns the unit price snapshotted at order time.
func (i LineItem) UnitPrice() kernel.Money {
	return i.unitPrice
}

// Quantity returns the ordered quantity.
func (i LineItem) Quantity() int {
	return i.quantity
}

// LineTotal returns unit price multiplied by quantity.
func (i LineItem) LineTotal() kernel.Money {
	return i.unitPrice.MulInt(i.quantity)
}

func (i *LineItem) setMenuItemID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.menuItemID = id
	return nil
}

func (i *LineItem) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	i.name = name
	return nil
}

func (i *LineItem) setUnitPrice(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return err
	}
	i.unitPrice = price
	return nil
}

func (i *LineItem) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, 100)
	}
	i.quantity = quantity
	return nil
}
