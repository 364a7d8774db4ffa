package dto

import "time"

type SignInInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Device   DeviceInfo
}

// SignInResult carries everything the transport layer needs to set the
// token cookies and hand the CSRF value back in the response body.
type SignInResult struct {
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
	CSRFToken        string
}
