package agent

import (
	"errors"
	"time"

	"quickbite/internal/core/domain/model/kernel"
	"quickbite/internal/pkg/guard"
)

// ErrEarningIsNotConstructed is returned when an Earning was not created via
// the NewEarning constructor.
var ErrEarningIsNotConstructed = errors.New("Earning must be created via NewEarning constructor")

// Earning is one immutable entry in an agent's append-only earnings history:
// the commission accrued for a single completed delivery. Entries are never
// edited or deleted; summary queries aggregate over them.
type Earning struct {
	id         kernel.UUID
	agentID    kernel.UUID
	orderID    kernel.UUID
	amount     kernel.Money
	orderTotal kernel.Money
	earnedAt   time.Time
	guard      guard.ConstructorGuard
}

// NewEarning creates an earnings entry for a completed delivery.
func NewEarning(
	id kernel.UUID,
	agentID kernel.UUID,
	orderID kernel.UUID,
	amount kernel.Money,
	orderTotal kernel.Money,
	earnedAt time.Time,
) (Earning, error) {
	if err := errors.Join(
		id.Validate(),
		agentID.Validate(),
		orderID.Validate(),
		amount.Validate(),
		orderTotal.Validate(),
	); err != nil {
		return Earning{}, err
	}

	return Earning{
		id:         id,
		agentID:    agentID,
		orderID:    orderID,
		amount:     amount,
		orderTotal: orderTotal,
		earnedAt:   earnedAt,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate checks that the Earning was created via NewEarning.
func (e Earning) Validate() error {
	return e.guard.Validate(ErrEarningIsNotConstructed)
}

// ID returns the entry's unique identifier.
func (e Earning) ID() kernel.UUID { return e.id }

// AgentID returns the agent the commission belongs to.
func (e Earning) AgentID() kernel.UUID { return e.agentID }

// OrderID returns the delivered order.
func (e Earning) OrderID() kernel.UUID { return e.orderID }

// Amount returns the accrued commission.
func (e Earning) Amount() kernel.Money { return e.amount }

// OrderTotal returns the delivered order's total at completion time.
func (e Earning) OrderTotal() kernel.Money { return e.orderTotal }

// EarnedAt returns when the delivery completed.
func (e Earning) EarnedAt() time.Time { return e.earnedAt }
