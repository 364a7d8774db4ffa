package service

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
)

const csrfSecretBytes = 32

// GenerateCSRFSecret produces a fresh per-session anti-forgery secret.
func GenerateCSRFSecret() (string, error) {
	b := make([]byte, csrfSecretBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return hex.EncodeToString(b), nil
}

// ValidateCSRFToken compares the header-presented token against the
// session's stored secret in constant time. Length is checked first since
// ConstantTimeCompare only guards equal-length inputs.
func ValidateCSRFToken(stored, presented string) bool {
	if stored == "" || presented == "" {
		return false
	}
	if len(stored) != len(presented) {
		return false
	}

	return subtle.ConstantTimeCompare([]byte(stored), []byte(presented)) == 1
}
