package agent

import (
	"errors"
	"time"

	"quickbite/internal/core/domain/model/kernel"
	"quickbite/internal/pkg/errs"
	"quickbite/internal/pkg/guard"
)

// Domain errors for delivery-agent operations.
var (
	// ErrAgentIsNotConstructed is returned when using an improperly
	// initialized DeliveryAgent.
	ErrAgentIsNotConstructed = errors.New("DeliveryAgent must be created via NewDeliveryAgent constructor")
	// ErrAgentUnavailable is returned when assigning an order to an agent
	// that is offline.
	ErrAgentUnavailable = errors.New("agent is offline")
	// ErrAgentBusy is returned when assigning an order to an agent that
	// already carries an active order. An agent holds at most one active
	// order at a time.
	ErrAgentBusy = errors.New("agent already has an active order")
	// ErrNoActiveOrder is returned when completing a delivery for an agent
	// with no order in progress.
	ErrNoActiveOrder = errors.New("agent has no active order")
)

// BankDetails holds the agent's payout destination.
type BankDetails struct {
	AccountHolder string
	AccountNumber string
	IFSC          string
}

// DeliveryAgent is the aggregate root for a delivery partner: identity,
// online/availability state, coarse location, the single active order, and
// lifetime accounting (deliveries and earnings).
//
// Business rules:
//   - An agent may hold at most one active (in-progress) order at a time
//   - Orders can only be accepted while the agent is online
//   - Completing a delivery accrues commission and frees the agent for
//     new assignments
//
// Agents are created lazily on first profile interaction; phone numbers are
// unique across agents.
type DeliveryAgent struct {
	id      kernel.UUID
	name    string
	phone   string
	vehicle string

	online    bool
	location  *kernel.GeoPoint
	locatedAt *time.Time

	currentOrderID *kernel.UUID

	totalDeliveries int
	totalEarnings   kernel.Money
	bank            BankDetails

	version int

	guard guard.ConstructorGuard
}

// NewDeliveryAgent creates an agent in the offline state with no active
// order and zeroed accounting.
func NewDeliveryAgent(id kernel.UUID, name, phone, vehicle string) (*DeliveryAgent, error) {
	a := &DeliveryAgent{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		a.setID(id),
		a.setName(name),
		a.setPhone(phone),
	); err != nil {
		return nil, err
	}

	a.vehicle = vehicle
	return a, nil
}

// RestoreAgentProps carries persisted agent state for RestoreAgent.
type RestoreAgentProps struct {
	ID              kernel.UUID
	Name            string
	Phone           string
	Vehicle         string
	Online          bool
	Location        *kernel.GeoPoint
	LocatedAt       *time.Time
	CurrentOrderID  *kernel.UUID
	TotalDeliveries int
	TotalEarnings   kernel.Money
	Bank            BankDetails
	Version         int
}

// RestoreAgent reconstructs a DeliveryAgent aggregate from persistent storage.
func RestoreAgent(props RestoreAgentProps) (*DeliveryAgent, error) {
	a := &DeliveryAgent{
		vehicle:         props.Vehicle,
		online:          props.Online,
		location:        props.Location,
		locatedAt:       props.LocatedAt,
		currentOrderID:  props.CurrentOrderID,
		totalDeliveries: props.TotalDeliveries,
		totalEarnings:   props.TotalEarnings,
		bank:            props.Bank,
		version:         props.Version,
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		a.setID(props.ID),
		a.setName(props.Name),
		a.setPhone(props.Phone),
		props.TotalEarnings.Validate(),
	); err != nil {
		return nil, err
	}

	return a, nil
}

// Validate ensures the agent was constructed via NewDeliveryAgent or RestoreAgent.
func (a *DeliveryAgent) Validate() error {
	if a == nil {
		return ErrAgentIsNotConstructed
	}
	return a.guard.Validate(ErrAgentIsNotConstructed)
}

// IsEqual compares two agents by identity.
func (a *DeliveryAgent) IsEqual(other *DeliveryAgent) bool {
	return other != nil && a.id.IsEqual(other.id)
}

// ID returns the agent's unique identifier.
func (a *DeliveryAgent) ID() kernel.UUID { return a.id }

// Name returns the agent's display name.
func (a *DeliveryAgent) Name() string { return a.name }

// Phone returns the agent's unique phone number.
func (a *DeliveryAgent) Phone() string { return a.phone }

// Vehicle returns the agent's vehicle description.
func (a *DeliveryAgent) Vehicle() string { return a.vehicle }

// IsOnline reports whether the agent accepts assignments.
func (a *DeliveryAgent) IsOnline() bool { return a.online }

// IsAvailable reports whether the agent is online with no active order.
func (a *DeliveryAgent) IsAvailable() bool { return a.online && a.currentOrderID == nil }

// Location returns the last reported coarse location, or nil.
func (a *DeliveryAgent) Location() *kernel.GeoPoint { return a.location }

// LocatedAt returns when the location was last reported, or nil.
func (a *DeliveryAgent) LocatedAt() *time.Time { return a.locatedAt }

// CurrentOrderID returns the active order's id, or nil when idle.
func (a *DeliveryAgent) CurrentOrderID() *kernel.UUID { return a.currentOrderID }

// TotalDeliveries returns the lifetime completed-delivery count.
func (a *DeliveryAgent) TotalDeliveries() int { return a.totalDeliveries }

// TotalEarnings returns the lifetime accrued commission.
func (a *DeliveryAgent) TotalEarnings() kernel.Money { return a.totalEarnings }

// Bank returns the payout details.
func (a *DeliveryAgent) Bank() BankDetails { return a.bank }

// Version returns the optimistic-concurrency version of the aggregate.
// The repository increments it on every successful update; a stale version
// means another operation claimed or released this agent first.
func (a *DeliveryAgent) Version() int { return a.version }

// SetOnline toggles the agent's availability flag.
func (a *DeliveryAgent) SetOnline(online bool) {
	a.online = online
}

// UpdateLocation records a coarse location ping.
func (a *DeliveryAgent) UpdateLocation(point kernel.GeoPoint, now time.Time) error {
	if err := point.Validate(); err != nil {
		return err
	}
	a.location = &point
	locatedAt := now
	a.locatedAt = &locatedAt
	return nil
}

// UpdateBank replaces the payout details.
func (a *DeliveryAgent) UpdateBank(bank BankDetails) {
	a.bank = bank
}

// AcceptOrder marks the order as the agent's single active delivery.
// Fails with ErrAgentUnavailable when offline and ErrAgentBusy when an
// active order is already held.
func (a *DeliveryAgent) AcceptOrder(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	if !a.online {
		return ErrAgentUnavailable
	}
	if a.currentOrderID != nil {
		return ErrAgentBusy
	}

	a.currentOrderID = &orderID
	return nil
}

// CompleteDelivery closes the active order, accrues the commission, and
// returns the agent to the available pool.
func (a *DeliveryAgent) CompleteDelivery(orderID kernel.UUID, commission kernel.Money) error {
	if a.currentOrderID == nil || !a.currentOrderID.IsEqual(orderID) {
		return ErrNoActiveOrder
	}
	if err := commission.Validate(); err != nil {
		return err
	}

	a.currentOrderID = nil
	a.totalDeliveries++
	a.totalEarnings = a.totalEarnings.Add(commission)
	a.online = true
	return nil
}

// ReleaseOrder drops the active order without accrual, used when an
// in-flight order is cancelled.
func (a *DeliveryAgent) ReleaseOrder() {
	a.currentOrderID = nil
}

func (a *DeliveryAgent) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *DeliveryAgent) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	a.name = name
	return nil
}

func (a *DeliveryAgent) setPhone(phone string) error {
	if phone == "" {
		return errs.NewValueIsRequiredError("phone")
	}
	a.phone = phone
	return nil
}
