package utils

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
)

// GenerateResetToken returns a high-entropy random value. The raw value is
// only ever sent to the account owner; storage keeps its keyed hash.
func GenerateResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// HashResetToken produces the deterministic digest persisted on the profile.
// HMAC keyed with the server secret so a leaked database alone cannot be
// used to forge reset lookups.
func HashResetToken(secret, rawToken string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(rawToken))
	return hex.EncodeToString(mac.Sum(nil))
}
