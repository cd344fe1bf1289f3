package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const trackingSpace = 1000000

// GenerateTrackingNumber returns "TRK-<n>" with n in [0, 999999].
// Numbers are random, not globally unique.
func GenerateTrackingNumber() string {
	n, err := rand.Int(rand.Reader, big.NewInt(trackingSpace))
	if err != nil {
		n = big.NewInt(time.Now().UnixNano() % trackingSpace)
	}
	return fmt.Sprintf("TRK-%d", n.Int64())
}
