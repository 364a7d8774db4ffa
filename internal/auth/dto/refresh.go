package dto

import "time"

// RefreshResult is returned by a successful token refresh. The refresh
// token itself is not reissued; only the access token and CSRF secret
// rotate.
type RefreshResult struct {
	AccessToken     string
	AccessExpiresAt time.Time
	CSRFToken       string
}
