package queries

import (
	"context"
	"time"

	"quickbite/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GetEarningsSummaryQueryHandler computes earnings summaries from the
// append-only earnings table. Window boundaries are computed in Go so the
// SQL stays portable across engines.
//
// Example:
//
//	handler := queries.NewGetEarningsSummaryQueryHandler(db)
//	summary, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("today: %s, lifetime: %s\n", summary.Today, summary.Lifetime)
type GetEarningsSummaryQueryHandler struct {
	db *gorm.DB
}

// NewGetEarningsSummaryQueryHandler creates a handler for earnings summaries.
// Requires a GORM database connection for query execution.
func NewGetEarningsSummaryQueryHandler(db *gorm.DB) GetEarningsSummaryQueryHandler {
	return GetEarningsSummaryQueryHandler{db: db}
}

// Handle executes the earnings summary query.
// Sums the day, week, and month windows anchored at the query's reference
// time, the lifetime totals, and the ten most recent entries.
func (h GetEarningsSummaryQueryHandler) Handle(
	ctx context.Context,
	query GetEarningsSummaryQuery,
) (GetEarningsSummaryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetEarningsSummaryQueryResponse{}, err
	}

	asOf := query.AsOf()
	dayStart := time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, asOf.Location())
	weekStart := dayStart.AddDate(0, 0, -int(dayStart.Weekday()))
	monthStart := time.Date(asOf.Year(), asOf.Month(), 1, 0, 0, 0, 0, asOf.Location())

	response := GetEarningsSummaryQueryResponse{AgentID: query.AgentID()}
	agentID := query.AgentID().String()

	today, err := h.sumSince(ctx, agentID, &dayStart)
	if err != nil {
		return GetEarningsSummaryQueryResponse{}, err
	}
	response.Today = today

	week, err := h.sumSince(ctx, agentID, &weekStart)
	if err != nil {
		return GetEarningsSummaryQueryResponse{}, err
	}
	response.ThisWeek = week

	month, err := h.sumSince(ctx, agentID, &monthStart)
	if err != nil {
		return GetEarningsSummaryQueryResponse{}, err
	}
	response.ThisMonth = month

	lifetime, err := h.sumSince(ctx, agentID, nil)
	if err != nil {
		return GetEarningsSummaryQueryResponse{}, err
	}
	response.Lifetime = lifetime

	err = h.db.WithContext(ctx).Raw(`
		SELECT COUNT(*) FROM earnings WHERE agent_id = ?
	`, agentID).Scan(&response.TotalDeliveries).Error
	if err != nil {
		return GetEarningsSummaryQueryResponse{}, err
	}

	recent, err := h.recentEntries(ctx, agentID)
	if err != nil {
		return GetEarningsSummaryQueryResponse{}, err
	}
	response.Recent = recent

	return response, nil
}

func (h GetEarningsSummaryQueryHandler) sumSince(
	ctx context.Context,
	agentID string,
	since *time.Time,
) (kernel.Money, error) {
	var paise int64

	tx := h.db.WithContext(ctx)
	var err error
	if since != nil {
		err = tx.Raw(`
			SELECT COALESCE(SUM(amount), 0) FROM earnings
			WHERE agent_id = ? AND earned_at >= ?
		`, agentID, *since).Scan(&paise).Error
	} else {
		err = tx.Raw(`
			SELECT COALESCE(SUM(amount), 0) FROM earnings WHERE agent_id = ?
		`, agentID).Scan(&paise).Error
	}
	if err != nil {
		return 0, err
	}

	return kernel.MoneyFromPaise(paise), nil
}

func (h GetEarningsSummaryQueryHandler) recentEntries(
	ctx context.Context,
	agentID string,
) ([]EarningEntryResponse, error) {
	entries := make([]EarningEntryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			order_id,
			amount,
			order_total,
			earned_at
		FROM earnings
		WHERE agent_id = ?
		ORDER BY earned_at DESC
		LIMIT 10
	`, agentID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var entry EarningEntryResponse
		var orderID string
		var amount, orderTotal int64

		if err = rows.Scan(&orderID, &amount, &orderTotal, &entry.EarnedAt); err != nil {
			return nil, err
		}

		id, idErr := kernel.UUIDFromString(orderID)
		if idErr != nil {
			return nil, idErr
		}
		entry.OrderID = id
		entry.Amount = kernel.MoneyFromPaise(amount)
		entry.OrderTotal = kernel.MoneyFromPaise(orderTotal)
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
