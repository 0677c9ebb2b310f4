// Package queries contains read-only operations over the persisted state.
// Queries bypass the domain aggregates and read projections directly from
// the database, the read side of the CQRS split.
package queries

import (
	"errors"
	"time"

	"quickbite/internal/core/domain/model/kernel"
	"quickbite/internal/pkg/errs"
	"quickbite/internal/pkg/guard"
)

var ErrGetEarningsSummaryQueryIsNotConstructed = errors.New(
	"GetEarningsSummaryQuery must be created via NewGetEarningsSummaryQuery constructor",
)

// GetEarningsSummaryQuery retrieves a delivery agent's earnings summary:
// rolling day, week, and month windows, lifetime totals, and the most
// recent entries.
//
// The windows are anchored at the query's reference time: today starts at
// local midnight, the week starts on Sunday, the month on its first day.
//
// Example:
//
//	query, err := queries.NewGetEarningsSummaryQuery(agentID, time.Now())
//	if err != nil {
//	    return err
//	}
//	summary, err := handler.Handle(ctx, query)
type GetEarningsSummaryQuery struct {
	agentID kernel.UUID
	asOf    time.Time

	guard guard.ConstructorGuard
}

// NewGetEarningsSummaryQuery creates a query for an agent's earnings summary.
// Validates the agent ID and requires a non-zero reference time.
func NewGetEarningsSummaryQuery(agentID kernel.UUID, asOf time.Time) (GetEarningsSummaryQuery, error) {
	if err := agentID.Validate(); err != nil {
		return GetEarningsSummaryQuery{}, err
	}
	if asOf.IsZero() {
		return GetEarningsSummaryQuery{}, errs.NewValueIsRequiredError("asOf")
	}

	return GetEarningsSummaryQuery{
		agentID: agentID,
		asOf:    asOf,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetEarningsSummaryQueryIsNotConstructed if validation fails.
func (q GetEarningsSummaryQuery) Validate() error {
	return q.guard.Validate(ErrGetEarningsSummaryQueryIsNotConstructed)
}

// AgentID returns the agent whose earnings are summarized.
func (q GetEarningsSummaryQuery) AgentID() kernel.UUID {
	return q.agentID
}

// AsOf returns the reference time anchoring the summary windows.
func (q GetEarningsSummaryQuery) AsOf() time.Time {
	return q.asOf
}

// EarningEntryResponse is one row of the recent-earnings list.
type EarningEntryResponse struct {
	OrderID    kernel.UUID
	Amount     kernel.Money
	OrderTotal kernel.Money
	EarnedAt   time.Time
}

// GetEarningsSummaryQueryResponse aggregates an agent's earnings.
type GetEarningsSummaryQueryResponse struct {
	AgentID         kernel.UUID
	Today           kernel.Money
	ThisWeek        kernel.Money
	ThisMonth       kernel.Money
	Lifetime        kernel.Money
	TotalDeliveries int
	Recent          []EarningEntryResponse
}
