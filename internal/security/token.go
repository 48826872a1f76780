package security

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// GenerateToken returns a 32-byte url-safe random token, used for email
// verification links.
func GenerateToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(bytes), nil
}
