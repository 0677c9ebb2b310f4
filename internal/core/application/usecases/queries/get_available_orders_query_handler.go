package queries

import (
	"context"

	"quickbite/internal/core/domain/model/kernel"
	"quickbite/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GetAvailableOrdersQueryHandler retrieves the unassigned ready-for-pickup
// orders, oldest first, so agents naturally drain the backlog.
type GetAvailableOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetAvailableOrdersQueryHandler creates a handler for the pickup pool query.
func NewGetAvailableOrdersQueryHandler(db *gorm.DB) GetAvailableOrdersQueryHandler {
	return GetAvailableOrdersQueryHandler{db: db}
}

// Handle executes the query for orders in confirmed or preparing status
// with no assigned courier.
func (h GetAvailableOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetAvailableOrdersQuery,
) ([]GetAvailableOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetAvailableOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			code,
			status,
			address_line,
			total,
			created_at
		FROM orders
		WHERE status IN (?, ?) AND courier_agent_id IS NULL
		ORDER BY created_at
	`, string(order.StatusConfirmed), string(order.StatusPreparing)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetAvailableOrdersQueryResponse
		var id string
		var total int64

		if err = rows.Scan(&id, &resp.Code, &resp.Status, &resp.AddressLine, &total, &resp.CreatedAt); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromString(id)
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID
		resp.Total = kernel.MoneyFromPaise(total)
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
