// Package menurepo provides read access to the externally managed menu.
// The core only snapshots item names and prices at order creation; menu
// CRUD itself belongs to a different system writing the same table.
package menurepo

import (
	"context"
	"errors"

	"quickbite/internal/core/domain/model/kernel"
	"quickbite/internal/core/ports"
	"quickbite/internal/pkg/errs"

	"gorm.io/gorm"
)

// MenuItemDTO represents one menu item row.
type MenuItemDTO struct {
	ID        string `gorm:"type:uuid;primaryKey"`
	Name      string
	Price     int64
	Available bool
}

// TableName specifies the database table name for menu items.
func (MenuItemDTO) TableName() string {
	return "menu_items"
}

// GormMenuProvider implements ports.MenuProvider on the shared menu table.
type GormMenuProvider struct {
	db *gorm.DB
}

// NewGormMenuProvider creates a menu provider backed by the given connection.
func NewGormMenuProvider(db *gorm.DB) *GormMenuProvider {
	return &GormMenuProvider{db: db}
}

// Item returns the menu item with the given id.
func (p *GormMenuProvider) Item(ctx context.Context, id kernel.UUID) (ports.MenuItem, error) {
	if err := id.Validate(); err != nil {
		return ports.MenuItem{}, err
	}

	var dto MenuItemDTO
	if err := p.db.WithContext(ctx).First(&dto, "id = ?", id.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.MenuItem{}, errs.NewObjectNotFoundError("menuItem", id.String())
		}
		return ports.MenuItem{}, err
	}

	itemID, err := kernel.UUIDFromString(dto.ID)
	if err != nil {
		return ports.MenuItem{}, err
	}

	return ports.MenuItem{
		ID:        itemID,
		Name:      dto.Name,
		UnitPrice: kernel.MoneyFromPaise(dto.Price),
		Available: dto.Available,
	}, nil
}

// Save inserts or replaces a menu item. Used by seeding and by admin tooling.
func (p *GormMenuProvider) Save(ctx context.Context, item ports.MenuItem) error {
	dto := MenuItemDTO{
		ID:        item.ID.String(),
		Name:      item.Name,
		Price:     item.UnitPrice.Paise(),
		Available: item.Available,
	}
	return p.db.WithContext(ctx).Save(&dto).Error
}
