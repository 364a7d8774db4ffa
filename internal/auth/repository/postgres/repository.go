package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/h-hub/secure-webapp/internal/auth/domain"
)

// PgxIface is the slice of pgxpool.Pool the repository needs. Tests
// substitute a pgxmock pool.
type PgxIface interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresRepository struct {
	db PgxIface
}

func NewPostgresRepository(db PgxIface) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreateUser(ctx context.Context, user *domain.User) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO users (id, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4)
	`, user.ID, user.Email, user.PasswordHash, user.CreatedAt)

	return err
}

func (r *PostgresRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, email, password_hash, created_at
		FROM users
		WHERE email = $1
		LIMIT 1;
	`
	row := r.db.QueryRow(ctx, query, email)

	var user domain.User
	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return &user, nil
}

func (r *PostgresRepository) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	query := `
		SELECT id, email, password_hash, created_at
		FROM users
		WHERE id = $1
		LIMIT 1;
	`
	row := r.db.QueryRow(ctx, query, id)

	var user domain.User
	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return &user, nil
}

// UpsertSession enforces the one-session-per-(owner, device) invariant at
// the store: a conflicting sign-in overwrites the existing row, id
// included, so the prior session id stops resolving.
func (r *PostgresRepository) UpsertSession(ctx context.Context, session *domain.Session) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO sessions (
			id, user_id, device_fingerprint, csrf_secret, created_at, expires_at, revoked, revoked_at
		) VALUES ($1, $2, $3, $4, $5, $6, false, NULL)
		ON CONFLICT (user_id, device_fingerprint)
		DO UPDATE SET
			id = EXCLUDED.id,
			csrf_secret = EXCLUDED.csrf_secret,
			created_at = EXCLUDED.created_at,
			expires_at = EXCLUDED.expires_at,
			revoked = false,
			revoked_at = NULL
	`, session.ID, session.UserID, session.DeviceFingerprint, session.CSRFSecret,
		session.CreatedAt, session.ExpiresAt)

	return err
}

func (r *PostgresRepository) GetSessionByID(ctx context.Context, id string) (*domain.Session, error) {
	query := `
		SELECT id, user_id, device_fingerprint, csrf_secret, created_at, expires_at, revoked, revoked_at
		FROM sessions
		WHERE id = $1
		LIMIT 1;
	`
	row := r.db.QueryRow(ctx, query, id)

	var session domain.Session
	err := row.Scan(&session.ID, &session.UserID, &session.DeviceFingerprint, &session.CSRFSecret,
		&session.CreatedAt, &session.ExpiresAt, &session.Revoked, &session.RevokedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to get session by id: %w", err)
	}

	return &session, nil
}

func (r *PostgresRepository) RevokeSessionByOwnerDevice(ctx context.Context, userID, fingerprint string, at time.Time) error {
	_, err := r.db.Exec(ctx, `
		UPDATE sessions
		SET revoked = true, revoked_at = $3
		WHERE user_id = $1 AND device_fingerprint = $2 AND NOT revoked
	`, userID, fingerprint, at)

	return err
}

func (r *PostgresRepository) RevokeSessionsByUserID(ctx context.Context, userID string, at time.Time) error {
	_, err := r.db.Exec(ctx, `
		UPDATE sessions
		SET revoked = true, revoked_at = $2
		WHERE user_id = $1 AND NOT revoked
	`, userID, at)

	return err
}

// UpsertRefreshToken mirrors UpsertSession's in-place overwrite, keeping
// the previous token value in replaced_by_token as the rotation chain link.
func (r *PostgresRepository) UpsertRefreshToken(ctx context.Context, rt *domain.RefreshToken) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO refresh_tokens (
			id, user_id, token, device_fingerprint, user_agent, ip_address,
			created_at, expires_at, revoked, revoked_at, replaced_by_token
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, false, NULL, NULL)
		ON CONFLICT (user_id, device_fingerprint)
		DO UPDATE SET
			replaced_by_token = refresh_tokens.token,
			id = EXCLUDED.id,
			token = EXCLUDED.token,
			user_agent = EXCLUDED.user_agent,
			ip_address = EXCLUDED.ip_address,
			created_at = EXCLUDED.created_at,
			expires_at = EXCLUDED.expires_at,
			revoked = false,
			revoked_at = NULL
	`, rt.ID, rt.UserID, rt.Token, rt.DeviceFingerprint, rt.UserAgent, rt.IPAddress,
		rt.CreatedAt, rt.ExpiresAt)

	return err
}

func (r *PostgresRepository) GetRefreshTokenByUserID(ctx context.Context, userID string) (*domain.RefreshToken, error) {
	query := `
		SELECT id, user_id, token, device_fingerprint, user_agent, ip_address,
		       created_at, expires_at, revoked, revoked_at, replaced_by_token
		FROM refresh_tokens
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1;
	`

	return r.scanRefreshToken(r.db.QueryRow(ctx, query, userID))
}

func (r *PostgresRepository) GetRefreshTokenByValue(ctx context.Context, token string) (*domain.RefreshToken, error) {
	query := `
		SELECT id, user_id, token, device_fingerprint, user_agent, ip_address,
		       created_at, expires_at, revoked, revoked_at, replaced_by_token
		FROM refresh_tokens
		WHERE token = $1
		LIMIT 1;
	`

	return r.scanRefreshToken(r.db.QueryRow(ctx, query, token))
}

func (r *PostgresRepository) DeleteRefreshTokensByUserID(ctx context.Context, userID string) error {
	_, err := r.db.Exec(ctx, `
		DELETE FROM refresh_tokens
		WHERE user_id = $1
	`, userID)

	return err
}

func (r *PostgresRepository) scanRefreshToken(row pgx.Row) (*domain.RefreshToken, error) {
	var rt domain.RefreshToken
	err := row.Scan(&rt.ID, &rt.UserID, &rt.Token, &rt.DeviceFingerprint, &rt.UserAgent, &rt.IPAddress,
		&rt.CreatedAt, &rt.ExpiresAt, &rt.Revoked, &rt.RevokedAt, &rt.ReplacedByToken)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to get refresh token: %w", err)
	}

	return &rt, nil
}
