package registry

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	// randomLocalLen is the length of generated local parts.
	randomLocalLen = 10

	randomAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
)

// randomLocalPart draws a local part from a cryptographically secure source.
func randomLocalPart(length int) (string, error) {
	buf := make([]byte, length)
	max := big.NewInt(int64(len(randomAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("registry: random source: %w", err)
		}
		buf[i] = randomAlphabet[n.Int64()]
	}
	return string(buf), nil
}
