package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// GenerateOrderCode produces the externally visible, human-readable order
// code, distinct from the internal UUID. The code is time-derived with a
// random suffix to disambiguate orders placed in the same second, e.g.
// "ORD-20250101-120500-4821".
func GenerateOrderCode(now time.Time) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("ORD-%s-%04d", now.Format("20060102-150405"), n.Int64()), nil
}
