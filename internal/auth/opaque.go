package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
)

// NewOpaqueToken generates a 256-bit random token. The raw value is handed
// to the user exactly once; only the SHA-256 hash is ever persisted, so a
// database read alone cannot redeem the token.
func NewOpaqueToken() (raw, hash string, err error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", "", err
	}
	raw = hex.EncodeToString(buf)
	return raw, HashOpaqueToken(raw), nil
}

// HashOpaqueToken returns the hex-encoded SHA-256 digest of a raw token.
func HashOpaqueToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
