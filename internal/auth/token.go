package auth

import (
	"crypto/rand"
	"encoding/base64"
	"time"
)

const (
	// TokenTTL is how long an issued token stays valid.
	TokenTTL = time.Hour

	// ReuseBuffer is the minimum remaining validity for an existing token
	// to be reused on login instead of minting a new one.
	ReuseBuffer = 60 * time.Second

	tokenBytes = 32
)

// NewToken returns an opaque bearer token from a cryptographically secure
// random source, encoded as a fixed-length printable string.
func NewToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
