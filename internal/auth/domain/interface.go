package domain

import (
	"context"
	"time"
)

// AuthRepository abstracts the backing store. Lookup methods return
// (nil, nil) when no record matches.
type AuthRepository interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByID(ctx context.Context, id string) (*User, error)

	UpsertSession(ctx context.Context, session *Session) error
	GetSessionByID(ctx context.Context, id string) (*Session, error)
	RevokeSessionByOwnerDevice(ctx context.Context, userID, fingerprint string, at time.Time) error
	RevokeSessionsByUserID(ctx context.Context, userID string, at time.Time) error

	UpsertRefreshToken(ctx context.Context, rt *RefreshToken) error
	GetRefreshTokenByUserID(ctx context.Context, userID string) (*RefreshToken, error)
	GetRefreshTokenByValue(ctx context.Context, token string) (*RefreshToken, error)
	DeleteRefreshTokensByUserID(ctx context.Context, userID string) error
}
