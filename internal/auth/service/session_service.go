package service

//go:generate mockgen -destination=../../mocks/mock_repository.go -package=mocks github.com/h-hub/secure-webapp/internal/auth/domain AuthRepository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/h-hub/secure-webapp/internal/auth/domain"
	"github.com/h-hub/secure-webapp/internal/auth/dto"
	autherror "github.com/h-hub/secure-webapp/internal/errors"
	"github.com/h-hub/secure-webapp/internal/metrics"
)

// SessionService orchestrates the session and token lifecycle: sign-up,
// sign-in, validation, refresh rotation and revocation. It owns every
// cross-entity invariant between tokens, session records and CSRF secrets.
type SessionService struct {
	repo       domain.AuthRepository
	tokens     TokenGenerator
	metrics    *metrics.Metrics
	log        zerolog.Logger
	sessionTTL time.Duration
}

func NewSessionService(repo domain.AuthRepository, tokens TokenGenerator, m *metrics.Metrics,
	log zerolog.Logger, sessionMinutes int) *SessionService {
	return &SessionService{
		repo:       repo,
		tokens:     tokens,
		metrics:    m,
		log:        log,
		sessionTTL: time.Duration(sessionMinutes) * time.Minute,
	}
}

func (s *SessionService) SignUp(ctx context.Context, input dto.SignUpInput) (*domain.User, error) {
	existing, err := s.repo.GetUserByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		s.metrics.SignUps.WithLabelValues("conflict").Inc()
		return nil, autherror.ErrEmailAlreadyInUse
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        input.Email,
		PasswordHash: string(hashed),
		CreatedAt:    time.Now(),
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.metrics.SignUps.WithLabelValues("success").Inc()
	s.log.Info().Str("user_id", user.ID).Msg("user registered")

	return user, nil
}

// SignIn verifies credentials and establishes the single session for this
// (user, device) pair, replacing any prior one in place. The failure for a
// wrong password and an unknown email is identical on purpose.
func (s *SessionService) SignIn(ctx context.Context, input dto.SignInInput) (*dto.SignInResult, error) {
	user, err := s.repo.GetUserByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}

	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
		s.metrics.SignIns.WithLabelValues("failure").Inc()
		s.log.Debug().Str("email", input.Email).Msg("sign-in rejected")

		return nil, autherror.ErrInvalidCredentials
	}

	csrfSecret, err := GenerateCSRFSecret()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	session := &domain.Session{
		ID:                uuid.NewString(),
		UserID:            user.ID,
		DeviceFingerprint: input.Device.Fingerprint(),
		CSRFSecret:        csrfSecret,
		CreatedAt:         now,
		ExpiresAt:         now.Add(s.sessionTTL),
	}

	if err := s.repo.UpsertSession(ctx, session); err != nil {
		return nil, err
	}

	accessToken, accessExpiresAt, err := s.tokens.GenerateAccessToken(user.ID, user.Email, session.ID)
	if err != nil {
		return nil, err
	}

	refreshToken, refreshExpiresAt, err := s.tokens.GenerateRefreshToken(user.ID, user.Email, session.ID)
	if err != nil {
		return nil, err
	}

	rt := &domain.RefreshToken{
		ID:                uuid.NewString(),
		UserID:            user.ID,
		Token:             refreshToken,
		DeviceFingerprint: session.DeviceFingerprint,
		UserAgent:         input.Device.UserAgent,
		IPAddress:         input.Device.IPAddress,
		CreatedAt:         now,
		ExpiresAt:         refreshExpiresAt,
	}

	if err := s.repo.UpsertRefreshToken(ctx, rt); err != nil {
		return nil, err
	}

	s.metrics.SignIns.WithLabelValues("success").Inc()
	s.log.Info().Str("user_id", user.ID).Str("session_id", session.ID).Msg("sign-in")

	return &dto.SignInResult{
		AccessToken:      accessToken,
		AccessExpiresAt:  accessExpiresAt,
		RefreshToken:     refreshToken,
		RefreshExpiresAt: refreshExpiresAt,
		CSRFToken:        csrfSecret,
	}, nil
}

// ValidateSession is the read-side dual-token check. It never mutates
// state, so callers may poll it freely. Check order is fixed: refresh
// token presence, signature, store record, store-level expiry, then access
// token presence, signature, session id, session state. Each checkpoint
// fails with its own sentinel so the transport layer can report the stage.
func (s *SessionService) ValidateSession(ctx context.Context, accessToken, refreshToken string) (*dto.SessionStatus, error) {
	status, err := s.validateSession(ctx, accessToken, refreshToken)
	if err != nil {
		if code := autherror.ReasonCode(err); code != "" {
			s.metrics.Validations.WithLabelValues(code).Inc()
		}
		return nil, err
	}

	s.metrics.Validations.WithLabelValues("valid").Inc()

	return status, nil
}

func (s *SessionService) validateSession(ctx context.Context, accessToken, refreshToken string) (*dto.SessionStatus, error) {
	if refreshToken == "" {
		return nil, autherror.ErrNoRefreshToken
	}

	if _, err := s.tokens.VerifyRefreshToken(refreshToken); err != nil {
		return nil, autherror.ErrInvalidRefreshToken
	}

	stored, err := s.repo.GetRefreshTokenByValue(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, autherror.ErrRefreshTokenNotFound
	}

	// Store-level expiry is checked independently of the JWT expiry claim:
	// the two clocks can disagree when signing secrets outlive deployments.
	if time.Now().After(stored.ExpiresAt) {
		return nil, autherror.ErrRefreshTokenExpired
	}

	if accessToken == "" {
		return nil, autherror.ErrNoAccessToken
	}

	claims, err := s.tokens.VerifyAccessToken(accessToken)
	if err != nil {
		return nil, autherror.ErrInvalidAccessToken
	}

	if claims.SessionID == "" {
		return nil, autherror.ErrSessionIDMissing
	}

	session, err := s.repo.GetSessionByID(ctx, claims.SessionID)
	if err != nil {
		return nil, err
	}
	if session == nil || session.Revoked || time.Now().After(session.ExpiresAt) {
		return nil, autherror.ErrSessionRevoked
	}

	expiresIn := 0
	if claims.ExpiresAt != nil {
		expiresIn = int(time.Until(claims.ExpiresAt.Time).Seconds())
	}

	return &dto.SessionStatus{UserID: stored.UserID, ExpiresIn: expiresIn}, nil
}

// Refresh rotates the session for (owner, device): the current session is
// revoked and a fresh one created under a new id, so any access token still
// carrying the old session id is dead from this point on, expired or not.
// A new access token and CSRF secret are issued against the new session.
func (s *SessionService) Refresh(ctx context.Context, refreshToken string, device dto.DeviceInfo) (*dto.RefreshResult, error) {
	if refreshToken == "" {
		s.metrics.Refreshes.WithLabelValues("failure").Inc()
		return nil, autherror.ErrNoRefreshToken
	}

	claims, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		s.metrics.Refreshes.WithLabelValues("failure").Inc()
		return nil, autherror.ErrInvalidRefreshToken
	}

	stored, err := s.repo.GetRefreshTokenByUserID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}

	switch {
	case stored == nil:
		s.metrics.Refreshes.WithLabelValues("failure").Inc()
		return nil, autherror.ErrRefreshTokenNotFound
	case stored.Revoked:
		s.metrics.Refreshes.WithLabelValues("failure").Inc()
		return nil, autherror.ErrRefreshTokenRevoked
	case time.Now().After(stored.ExpiresAt):
		s.metrics.Refreshes.WithLabelValues("failure").Inc()
		return nil, autherror.ErrRefreshTokenExpired
	}

	user, err := s.repo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		s.metrics.Refreshes.WithLabelValues("failure").Inc()
		return nil, autherror.ErrUserNotFound
	}

	now := time.Now()
	fingerprint := device.Fingerprint()

	if err := s.repo.RevokeSessionByOwnerDevice(ctx, user.ID, fingerprint, now); err != nil {
		return nil, fmt.Errorf("failed to revoke session: %w", err)
	}

	csrfSecret, err := GenerateCSRFSecret()
	if err != nil {
		return nil, err
	}

	session := &domain.Session{
		ID:                uuid.NewString(),
		UserID:            user.ID,
		DeviceFingerprint: fingerprint,
		CSRFSecret:        csrfSecret,
		CreatedAt:         now,
		ExpiresAt:         now.Add(s.sessionTTL),
	}

	if err := s.repo.UpsertSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to store rotated session: %w", err)
	}

	accessToken, accessExpiresAt, err := s.tokens.GenerateAccessToken(user.ID, user.Email, session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate new access token: %w", err)
	}

	s.metrics.Refreshes.WithLabelValues("success").Inc()
	s.log.Debug().Str("user_id", user.ID).Str("session_id", session.ID).Msg("session rotated")

	return &dto.RefreshResult{
		AccessToken:     accessToken,
		AccessExpiresAt: accessExpiresAt,
		CSRFToken:       csrfSecret,
	}, nil
}

// SignOut revokes everything tied to the token's owner. An unverifiable
// token is treated as already signed out rather than an error, so a client
// holding a stale cookie can always complete sign-out.
func (s *SessionService) SignOut(ctx context.Context, refreshToken string) error {
	claims, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		s.log.Debug().Err(err).Msg("sign-out with unverifiable refresh token")
		return nil
	}

	if err := s.repo.DeleteRefreshTokensByUserID(ctx, claims.UserID); err != nil {
		return err
	}

	if err := s.repo.RevokeSessionsByUserID(ctx, claims.UserID, time.Now()); err != nil {
		return err
	}

	s.metrics.SignOuts.Inc()
	s.log.Info().Str("user_id", claims.UserID).Msg("sign-out")

	return nil
}

// Profile resolves the authenticated user behind an access token. The
// session lookup makes a signature-valid token worthless once its session
// is revoked, and the CSRF echo is compared in constant time.
func (s *SessionService) Profile(ctx context.Context, accessToken, csrfToken string) (*dto.UserOutput, error) {
	if accessToken == "" {
		return nil, autherror.ErrNoAccessToken
	}

	claims, err := s.tokens.VerifyAccessToken(accessToken)
	if err != nil {
		return nil, autherror.ErrInvalidAccessToken
	}

	if claims.SessionID == "" {
		return nil, autherror.ErrSessionIDMissing
	}

	session, err := s.repo.GetSessionByID(ctx, claims.SessionID)
	if err != nil {
		return nil, err
	}
	if session == nil || session.Revoked || time.Now().After(session.ExpiresAt) {
		return nil, autherror.ErrSessionRevoked
	}

	if !ValidateCSRFToken(session.CSRFSecret, csrfToken) {
		return nil, autherror.ErrCSRFMismatch
	}

	user, err := s.repo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, autherror.ErrInvalidCredentials
	}

	return &dto.UserOutput{ID: user.ID, Email: user.Email}, nil
}
