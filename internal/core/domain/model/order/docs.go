// Package order provides domain entities and business logic for order
// lifecycle management in the quickbite system. It implements the Order
// aggregate root with its state machine, money breakdown, line-item
// snapshots, payment block, and OTP-verified handoff.
//
// The package includes:
//   - Order: The aggregate root coordinating the fulfillment lifecycle
//   - Status: A state machine enforcing valid status transitions
//   - LineItem: A price/name snapshot of an ordered menu item
//   - CourierSnapshot: Denormalized courier identity captured at assignment
//   - NotificationFor: Customer-facing notification text per status
//
// Key business rules:
//   - total = subtotal + deliveryCharge + platformFee + gst, fixed two-decimal
//   - otpVerified implies the order is delivered
//   - at most one assigned courier per order
//   - delivered and cancelled are terminal; nothing is reachable from them
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
