package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// otpMin and otpMax bound the delivery confirmation code range.
// Every code is a 4-digit numeric string with no leading zero.
const (
	otpMin = 1000
	otpMax = 9999
)

// GenerateDeliveryOtp produces a delivery confirmation code drawn uniformly
// from [1000, 9999] using crypto/rand. The code is generated exactly once,
// at order creation, and proves physical handoff between courier and customer.
func GenerateDeliveryOtp() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(otpMax-otpMin+1))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d", otpMin+n.Int64()), nil
}
