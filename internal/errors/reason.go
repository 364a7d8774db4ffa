package errors

import "errors"

// ReasonCode maps a session-validation sentinel to the stage code exposed
// to clients. Revealing the failing stage here leaks no secret and lets the
// client choose between attempting a refresh and redirecting to sign-in.
func ReasonCode(err error) string {
	switch {
	case errors.Is(err, ErrNoRefreshToken):
		return "no-refresh-token"
	case errors.Is(err, ErrInvalidRefreshToken):
		return "invalid-refresh"
	case errors.Is(err, ErrRefreshTokenNotFound):
		return "not-in-store"
	case errors.Is(err, ErrRefreshTokenExpired):
		return "db-expired"
	case errors.Is(err, ErrNoAccessToken):
		return "no-access-token"
	case errors.Is(err, ErrInvalidAccessToken):
		return "access-invalid"
	case errors.Is(err, ErrSessionIDMissing):
		return "session-id-missing"
	case errors.Is(err, ErrSessionRevoked):
		return "session-revoked"
	}

	return ""
}
