package dto

// SessionStatus is the read-side answer to "is this session still good,
// and for how long". ExpiresIn counts seconds until the access token
// expires.
type SessionStatus struct {
	UserID    string
	ExpiresIn int
}

type UserOutput struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}
