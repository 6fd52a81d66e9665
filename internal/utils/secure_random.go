package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
)

// GenerateSecureRandomString returns lengthInBytes bytes of cryptographic
// randomness, hex encoded, so the result is twice as many characters.
func GenerateSecureRandomString(lengthInBytes int) (string, error) {
	if lengthInBytes <= 0 {
		return "", fmt.Errorf("random string length must be positive, got %d", lengthInBytes)
	}
	buf := make([]byte, lengthInBytes)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return "", fmt.Errorf("reading entropy: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
