package ports

import "errors"

// Payment verification errors.
var (
	// ErrInvalidSignature is returned when the gateway signature does not
	// bind the order/payment pair. Never retried automatically; the order
	// is left untouched.
	ErrInvalidSignature = errors.New("payment signature is invalid")
	// ErrGatewayUnavailable is returned when the payment gateway is
	// unreachable or unconfigured, so callers can degrade to the cash flow.
	ErrGatewayUnavailable = errors.New("payment gateway is unavailable")
)

// PaymentVerifier validates the cryptographic signature binding a gateway
// order/payment pair before an order may be marked paid.
type PaymentVerifier interface {
	// Verify returns nil iff signature is a valid binding of gatewayOrderID
	// and gatewayPaymentID under the shared secret. Implementations compare
	// in constant time and must not leak comparison details in errors.
	Verify(gatewayOrderID, gatewayPaymentID, signature string) error
}
