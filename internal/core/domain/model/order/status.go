package order

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is returned when a requested status change is not
// allowed from the order's current status. Terminal statuses (delivered,
// cancelled) reject every further transition with this error.
var ErrInvalidTransition = errors.New("invalid status transition")

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure orders
// follow the correct fulfillment workflow.
//
// State transitions:
//
//	pending ──> confirmed ──> preparing ──┐
//	               │                      ├──> out_for_delivery ──> delivered
//	               └──────────────────────┘
//	(any non-terminal) ──> cancelled
//
// Status is backed by a string so that administrative overrides can carry
// operator-defined statuses; such custom values are outside the guarded
// state machine and only receive the generic notification text.
type Status string

const (
	// StatusPending is the initial status of an online-payment order that has
	// not yet passed payment verification.
	StatusPending Status = "pending"

	// StatusConfirmed indicates payment has been verified (or the order is
	// cash-on-delivery) and the kitchen may accept it.
	StatusConfirmed Status = "confirmed"

	// StatusPreparing indicates the kitchen has started preparing the order.
	StatusPreparing Status = "preparing"

	// StatusOutForDelivery indicates a courier has picked up the order.
	StatusOutForDelivery Status = "out_for_delivery"

	// StatusDelivered indicates the handoff was completed and OTP-verified.
	// Terminal.
	StatusDelivered Status = "delivered"

	// StatusCancelled indicates the order was explicitly cancelled. Terminal.
	StatusCancelled Status = "cancelled"
)

// knownStatuses lists the statuses that take part in the guarded state machine.
func knownStatuses() map[Status]struct{} {
	return map[Status]struct{}{
		StatusPending:        {},
		StatusConfirmed:      {},
		StatusPreparing:      {},
		StatusOutForDelivery: {},
		StatusDelivered:      {},
		StatusCancelled:      {},
	}
}

// IsKnown reports whether the status is one of the canonical lifecycle states.
func (s Status) IsKnown() bool {
	_, ok := knownStatuses()[s]
	return ok
}

// IsTerminal reports whether the status accepts no further transitions.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// IsReadyForPickup reports whether a courier may be assigned in this status.
// "Ready for pickup" covers confirmed and preparing orders.
func (s Status) IsReadyForPickup() bool {
	return s == StatusConfirmed || s == StatusPreparing
}

// String implements fmt.Stringer.
func (s Status) String() string {
	return string(s)
}

// Confirm transitions pending -> confirmed after payment verification.
func (s Status) Confirm() (Status, error) {
	if s != StatusPending {
		return "", s.transitionError(StatusConfirmed)
	}
	return StatusConfirmed, nil
}

// StartPreparing transitions confirmed -> preparing when the kitchen starts.
func (s Status) StartPreparing() (Status, error) {
	if s != StatusConfirmed {
		return "", s.transitionError(StatusPreparing)
	}
	return StatusPreparing, nil
}

// Dispatch transitions a ready-for-pickup order to out_for_delivery on
// courier assignment.
func (s Status) Dispatch() (Status, error) {
	if !s.IsReadyForPickup() {
		return "", s.transitionError(StatusOutForDelivery)
	}
	return StatusOutForDelivery, nil
}

// Deliver transitions out_for_delivery -> delivered on OTP verification.
func (s Status) Deliver() (Status, error) {
	if s != StatusOutForDelivery {
		return "", s.transitionError(StatusDelivered)
	}
	return StatusDelivered, nil
}

// Cancel transitions any non-terminal status to cancelled.
func (s Status) Cancel() (Status, error) {
	if s.IsTerminal() {
		return "", s.transitionError(StatusCancelled)
	}
	return StatusCancelled, nil
}

func (s Status) transitionError(target Status) error {
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s, target)
}
