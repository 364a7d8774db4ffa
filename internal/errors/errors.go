package errors

import (
	"errors"
)

var (
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrEmailAlreadyInUse    = errors.New("email already in use")
	ErrUserNotFound         = errors.New("user not found")
	ErrNoRefreshToken       = errors.New("no refresh token found")
	ErrInvalidRefreshToken  = errors.New("invalid or expired refresh token")
	ErrRefreshTokenNotFound = errors.New("refresh token not found in store")
	ErrRefreshTokenRevoked  = errors.New("refresh token revoked")
	ErrRefreshTokenExpired  = errors.New("refresh token expired")
	ErrNoAccessToken        = errors.New("no access token found")
	ErrInvalidAccessToken   = errors.New("access token invalid or expired")
	ErrSessionIDMissing     = errors.New("session id missing in token")
	ErrSessionRevoked       = errors.New("invalid or expired session")
	ErrCSRFMismatch         = errors.New("invalid csrf token")
)
