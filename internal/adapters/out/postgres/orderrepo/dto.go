// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"quickbite/internal/core/domain/model/kernel"
	"quickbite/internal/core/domain/model/order"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Maps order domain entities to relational tables with indexes for the
// frequent lookups: by customer, by status, and by courier assignment.
//
// Version backs the optimistic concurrency check on updates.
type OrderDTO struct {
	ID         string `gorm:"type:uuid;primaryKey"`
	Code       string `gorm:"uniqueIndex"`
	CustomerID string `gorm:"index"`

	Items []OrderItemDTO `gorm:"foreignKey:OrderID;references:ID;constraint:OnDelete:CASCADE"`

	AddressLine string
	AddressLat  *float64
	AddressLng  *float64

	Subtotal       int64
	DeliveryCharge int64
	PlatformFee    int64
	Gst            int64
	Total          int64

	PaymentMethod    string
	GatewayOrderID   string
	GatewayPaymentID string
	GatewaySignature string
	Paid             bool

	Status      string `gorm:"index"`
	DeliveryOtp string
	OtpVerified bool
	Eta         time.Time

	CourierAgentID *string `gorm:"type:uuid;index"`
	CourierName    string
	CourierPhone   string

	AssignedAt  *time.Time
	ConfirmedAt *time.Time
	DeliveredAt *time.Time
	CancelledAt *time.Time

	CreatedAt time.Time `gorm:"index"`
	Version   int
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO represents one persisted line-item snapshot of an order.
// Rows are written once at order creation and never updated.
type OrderItemDTO struct {
	ID         uint   `gorm:"primaryKey;autoIncrement"`
	OrderID    string `gorm:"type:uuid;index"`
	MenuItemID string `gorm:"type:uuid"`
	Name       string
	UnitPrice  int64
	Quantity   int
}

// TableName specifies the database table name for order line items.
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order domain aggregate to its database representation.
// Money fields are stored as integer paise; the courier snapshot and the
// optional drop-off coordinates flatten into nullable columns.
func fromDomain(aggregate *order.Order) OrderDTO {
	dto := OrderDTO{
		ID:               aggregate.ID().String(),
		Code:             aggregate.Code(),
		CustomerID:       aggregate.CustomerID(),
		AddressLine:      aggregate.Address().Line,
		Subtotal:         aggregate.Subtotal().Paise(),
		DeliveryCharge:   aggregate.DeliveryCharge().Paise(),
		PlatformFee:      aggregate.PlatformFee().Paise(),
		Gst:              aggregate.GST().Paise(),
		Total:            aggregate.Total().Paise(),
		PaymentMethod:    string(aggregate.PaymentMethod()),
		GatewayOrderID:   aggregate.GatewayOrderID(),
		GatewayPaymentID: aggregate.GatewayPaymentID(),
		GatewaySignature: aggregate.GatewaySignature(),
		Paid:             aggregate.IsPaid(),
		Status:           string(aggregate.Status()),
		DeliveryOtp:      aggregate.DeliveryOtp(),
		OtpVerified:      aggregate.IsOtpVerified(),
		Eta:              aggregate.ETA(),
		AssignedAt:       aggregate.AssignedAt(),
		ConfirmedAt:      aggregate.ConfirmedAt(),
		DeliveredAt:      aggregate.DeliveredAt(),
		CancelledAt:      aggregate.CancelledAt(),
		CreatedAt:        aggregate.CreatedAt(),
		Version:          aggregate.Version(),
	}

	if point := aggregate.Address().Point; point != nil {
		lat, lng := point.Latitude(), point.Longitude()
		dto.AddressLat = &lat
		dto.AddressLng = &lng
	}

	if courier := aggregate.Courier(); courier != nil {
		agentID := courier.AgentID.String()
		dto.CourierAgentID = &agentID
		dto.CourierName = courier.Name
		dto.CourierPhone = courier.Phone
	}

	for _, item := range aggregate.Items() {
		dto.Items = append(dto.Items, OrderItemDTO{
			OrderID:    dto.ID,
			MenuItemID: item.MenuItemID().String(),
			Name:       item.Name(),
			UnitPrice:  item.UnitPrice().Paise(),
			Quantity:   item.Quantity(),
		})
	}

	return dto
}

// toDomain converts a database DTO to an order domain aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromString(dto.ID)
	if err != nil {
		return nil, err
	}

	items := make([]order.LineItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		menuItemID, itemErr := kernel.UUIDFromString(itemDTO.MenuItemID)
		if itemErr != nil {
			return nil, itemErr
		}

		item, itemErr := order.NewLineItem(
			menuItemID, itemDTO.Name, kernel.MoneyFromPaise(itemDTO.UnitPrice), itemDTO.Quantity)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	address := order.DeliveryAddress{Line: dto.AddressLine}
	if dto.AddressLat != nil && dto.AddressLng != nil {
		point, pointErr := kernel.NewGeoPoint(*dto.AddressLat, *dto.AddressLng)
		if pointErr != nil {
			return nil, pointErr
		}
		address.Point = &point
	}

	var courier *order.CourierSnapshot
	if dto.CourierAgentID != nil {
		agentID, courierErr := kernel.UUIDFromString(*dto.CourierAgentID)
		if courierErr != nil {
			return nil, courierErr
		}
		courier = &order.CourierSnapshot{
			AgentID: agentID,
			Name:    dto.CourierName,
			Phone:   dto.CourierPhone,
		}
	}

	return order.RestoreOrder(order.RestoreOrderProps{
		ID:               id,
		Code:             dto.Code,
		CustomerID:       dto.CustomerID,
		Items:            items,
		Address:          address,
		Subtotal:         kernel.MoneyFromPaise(dto.Subtotal),
		DeliveryCharge:   kernel.MoneyFromPaise(dto.DeliveryCharge),
		PlatformFee:      kernel.MoneyFromPaise(dto.PlatformFee),
		GST:              kernel.MoneyFromPaise(dto.Gst),
		Total:            kernel.MoneyFromPaise(dto.Total),
		PaymentMethod:    order.PaymentMethod(dto.PaymentMethod),
		GatewayOrderID:   dto.GatewayOrderID,
		GatewayPaymentID: dto.GatewayPaymentID,
		GatewaySignature: dto.GatewaySignature,
		Paid:             dto.Paid,
		Status:           order.Status(dto.Status),
		DeliveryOtp:      dto.DeliveryOtp,
		OtpVerified:      dto.OtpVerified,
		ETA:              dto.Eta,
		Courier:          courier,
		AssignedAt:       dto.AssignedAt,
		ConfirmedAt:      dto.ConfirmedAt,
		DeliveredAt:      dto.DeliveredAt,
		CancelledAt:      dto.CancelledAt,
		CreatedAt:        dto.CreatedAt,
		Version:          dto.Version,
	})
}
