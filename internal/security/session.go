package security

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"
)

// SessionPayload is the signed content of a session token. Fields are declared
// in sorted key order so the serialized form is canonical.
type SessionPayload struct {
	Exp    int64  `json:"exp"`
	Role   string `json:"role"`
	UserID string `json:"user_id"`
}

// SessionCodec signs and verifies self-contained session tokens. A token is
// "<base64url(payload JSON)>.<hex HMAC-SHA256 signature>". There is no
// server-side revocation; tokens stay valid until exp or a secret change.
type SessionCodec struct {
	secret        []byte
	defaultExpiry time.Duration
}

// NewSessionCodec creates a codec with the server secret and the default
// session lifetime.
func NewSessionCodec(secret string, expirationMinutes int) *SessionCodec {
	return &SessionCodec{
		secret:        []byte(secret),
		defaultExpiry: time.Duration(expirationMinutes) * time.Minute,
	}
}

func (c *SessionCodec) sign(data string) string {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write([]byte(data))
	return hex.EncodeToString(mac.Sum(nil))
}

// CreateToken builds a signed token for the given identity. A zero
// expiresMinutes uses the codec default.
func (c *SessionCodec) CreateToken(userID, role string, expiresMinutes int) (string, error) {
	expiry := c.defaultExpiry
	if expiresMinutes != 0 {
		expiry = time.Duration(expiresMinutes) * time.Minute
	}

	payload := SessionPayload{
		Exp:    time.Now().UTC().Add(expiry).Unix(),
		Role:   role,
		UserID: userID,
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	encoded := base64.URLEncoding.EncodeToString(raw)
	return encoded + "." + c.sign(encoded), nil
}

// DecodeToken verifies and parses a token. Any failure (shape, signature,
// encoding, expiry) yields nil rather than an error; callers treat a nil
// payload as unauthenticated.
func (c *SessionCodec) DecodeToken(token string) *SessionPayload {
	encoded, signature, found := strings.Cut(token, ".")
	if !found {
		return nil
	}

	expected := c.sign(encoded)
	if !hmac.Equal([]byte(signature), []byte(expected)) {
		return nil
	}

	raw, err := base64.URLEncoding.DecodeString(encoded)
	if err != nil {
		return nil
	}

	var payload SessionPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil
	}

	if payload.Exp != 0 && payload.Exp < time.Now().UTC().Unix() {
		return nil
	}

	return &payload
}
