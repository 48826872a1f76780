package security

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/olangriffin/fyp-helpdesk/internal/constants"
	"golang.org/x/crypto/pbkdf2"
)

const (
	saltLength       = 16
	derivedKeyLength = 32
	pbkdf2Iterations = 100_000
)

var (
	ErrPasswordTooShort   = errors.New("Password must be at least 8 characters long")
	ErrPasswordCaseMixing = errors.New("Password must include both uppercase and lowercase letters")
	ErrPasswordNoDigit    = errors.New("Password must include at least one digit")
)

// PasswordData holds a derived password hash and its salt, both hex-encoded.
type PasswordData struct {
	Hash string
	Salt string
}

func deriveKey(password string, salt []byte) string {
	key := pbkdf2.Key([]byte(password), salt, pbkdf2Iterations, derivedKeyLength, sha256.New)
	return hex.EncodeToString(key)
}

// HashPassword derives a PBKDF2-HMAC-SHA256 hash with a fresh random salt.
func HashPassword(password string) (PasswordData, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return PasswordData{}, fmt.Errorf("failed to generate salt: %w", err)
	}
	return PasswordData{
		Hash: deriveKey(password, salt),
		Salt: hex.EncodeToString(salt),
	}, nil
}

// VerifyPassword recomputes the derivation with the stored salt and compares
// in constant time. A malformed salt yields false rather than an error.
func VerifyPassword(password, storedHash, saltHex string) bool {
	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return false
	}
	return hmac.Equal([]byte(deriveKey(password, salt)), []byte(storedHash))
}

// ValidatePasswordStrength enforces the signup password policy: minimum
// length, mixed case, and at least one digit. Special characters are not
// required.
func ValidatePasswordStrength(password string) error {
	if len(password) < constants.MinPasswordLength {
		return ErrPasswordTooShort
	}
	if strings.ToLower(password) == password || strings.ToUpper(password) == password {
		return ErrPasswordCaseMixing
	}
	hasDigit := false
	for _, ch := range password {
		if unicode.IsDigit(ch) {
			hasDigit = true
			break
		}
	}
	if !hasDigit {
		return ErrPasswordNoDigit
	}
	return nil
}
