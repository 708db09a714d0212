package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// SessionSecretBytes is the entropy of a generated JWT_SECRET (256-bit)
const SessionSecretBytes = 32

// GenerateSecret generates a cryptographically secure random secret
func GenerateSecret(bytes int) (string, error) {
	if bytes <= 0 {
		return "", fmt.Errorf("secret length must be positive, got %d", bytes)
	}
	b := make([]byte, bytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// GenerateSessionSecret generates a secret for signing session tokens
func GenerateSessionSecret() (string, error) {
	return GenerateSecret(SessionSecretBytes)
}
