// Package shared provides small helpers used by both the CLI and the
// development backend: random one-time codes and wiping secrets from memory.
package shared

import (
	"crypto/rand"
	"math/big"
	"strings"
)

// MakeRandDigits returns a string of n uniformly random decimal digits, as
// used for emailed one-time codes.
//
// It returns an error if the random number generator fails.
func MakeRandDigits(n int) (string, error) {
	var b strings.Builder
	b.Grow(n)
	ten := big.NewInt(10)
	for i := 0; i < n; i++ {
		d, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", err
		}
		b.WriteByte(byte('0' + d.Int64()))
	}
	return b.String(), nil
}

// WipeByteArray overwrites the contents of the provided byte slice with zeros.
// Used for passwords read from the terminal once they have been sent.
//
// If the slice is nil, the function does nothing.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
