package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	"quickbite/internal/core/ports"
)

// HmacVerifier validates gateway payment signatures with HMAC-SHA256.
// The signature must be the hex digest of "<gatewayOrderID>|<gatewayPaymentID>"
// keyed with the secret shared with the payment gateway.
type HmacVerifier struct {
	secret []byte
}

// NewHmacVerifier creates a verifier bound to the gateway's shared secret.
func NewHmacVerifier(secret string) HmacVerifier {
	return HmacVerifier{secret: []byte(secret)}
}

// Verify checks that signature binds the order/payment pair under the shared
// secret. Returns ports.ErrGatewayUnavailable when no secret is configured
// and ports.ErrInvalidSignature when the digest does not match. Comparison
// is constant time.
func (v HmacVerifier) Verify(gatewayOrderID, gatewayPaymentID, signature string) error {
	if len(v.secret) == 0 {
		return ports.ErrGatewayUnavailable
	}

	mac := hmac.New(sha256.New, v.secret)
	mac.Write([]byte(gatewayOrderID + "|" + gatewayPaymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ports.ErrInvalidSignature
	}

	return nil
}
