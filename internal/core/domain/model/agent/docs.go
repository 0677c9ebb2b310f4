// Package agent provides domain entities for delivery partners in the
// quickbite system.
//
// The package includes:
//   - DeliveryAgent: The aggregate root for a delivery partner: identity,
//     online/availability state, coarse location, the single active order,
//     and lifetime accounting
//   - Earning: An immutable entry in the append-only earnings history
//   - BankDetails: The agent's payout destination
//
// Key business rules:
//   - An agent holds at most one active order at a time
//   - Orders can only be accepted while the agent is online
//   - Completing a delivery accrues commission, increments the delivery
//     count, and returns the agent to the available pool
package agent
