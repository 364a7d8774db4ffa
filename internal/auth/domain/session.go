package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Session is the server-side source of truth for one authenticated device.
// At most one row exists per (UserID, DeviceFingerprint); a new sign-in from
// the same device overwrites the row in place.
type Session struct {
	ID                string
	UserID            string
	DeviceFingerprint string
	CSRFSecret        string
	CreatedAt         time.Time
	ExpiresAt         time.Time
	Revoked           bool
	RevokedAt         *time.Time
}

// RefreshToken is the persisted record backing a long-lived refresh
// credential, keyed by (UserID, DeviceFingerprint) like Session.
// ReplacedByToken links to the value that overwrote this one on rotation.
type RefreshToken struct {
	ID                string
	UserID            string
	Token             string
	DeviceFingerprint string
	UserAgent         string
	IPAddress         string
	CreatedAt         time.Time
	ExpiresAt         time.Time
	Revoked           bool
	RevokedAt         *time.Time
	ReplacedByToken   *string
}

// Fingerprint derives a stable device identifier from the client's
// user-agent and IP address.
func Fingerprint(userAgent, ipAddress string) string {
	sum := sha256.Sum256([]byte(userAgent + "|" + ipAddress))
	return hex.EncodeToString(sum[:])
}
