package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/bookinglab/admin-portal/internal/core/domain"
	"github.com/bookinglab/admin-portal/internal/core/ports"
)

const defaultSessionTimeout = 30 * time.Minute

// validate is shared across calls; validator.Validate is safe for concurrent use.
var validate = validator.New()

// AuthService implements login, per-request authorization and logout on top of
// a credential repository and a session store.
type AuthService struct {
	repo     ports.AuthRepository
	sessions ports.SessionStore
	timeout  time.Duration
	logger   zerolog.Logger
}

func NewAuthService(repo ports.AuthRepository, sessions ports.SessionStore, timeout time.Duration, logger zerolog.Logger) *AuthService {
	if timeout <= 0 {
		timeout = defaultSessionTimeout
	}
	return &AuthService{repo: repo, sessions: sessions, timeout: timeout, logger: logger}
}

// Login validates the submitted credentials and establishes a session.
// Input checks run before any repository access; a failed lookup and a failed
// hash comparison are indistinguishable to the caller so that responses cannot
// be used to enumerate accounts.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	if err := validate.Var(email, "required,email"); err != nil {
		return nil, domain.ErrInvalidInput
	}
	if password == "" {
		return nil, domain.ErrInvalidInput
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.logger.Info().Str("email", email).Msg("login rejected: unknown account")
			return nil, domain.ErrInvalidCredentials
		}
		s.logger.Error().Err(err).Msg("credential lookup failed")
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.logger.Info().Str("email", email).Msg("login rejected: password mismatch")
		return nil, domain.ErrInvalidCredentials
	}

	session, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		s.logger.Error().Err(err).Msg("session create failed")
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Str("session_id", session.ID).Msg("login succeeded")
	return session, nil
}

// Authorize re-checks expiry against now on every call; expired sessions are
// destroyed before the rejection is returned so no later request can ride on a
// stale record.
func (s *AuthService) Authorize(ctx context.Context, sessionID string, now time.Time) (*ports.AuthorizedContext, error) {
	if sessionID == "" {
		return nil, domain.ErrNoSession
	}

	session, err := s.sessions.Find(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if session.Expired(now, s.timeout) {
		if err := s.sessions.Destroy(ctx, sessionID); err != nil {
			s.logger.Error().Err(err).Str("session_id", sessionID).Msg("expired session destroy failed")
		}
		s.logger.Info().Str("session_id", sessionID).Msg("session expired")
		return nil, domain.ErrSessionExpired
	}

	touched, err := s.sessions.Touch(ctx, sessionID, now)
	if err != nil {
		// A concurrent logout or expiry won the race; treat as gone.
		return nil, err
	}

	return &ports.AuthorizedContext{SessionID: touched.ID, UserID: touched.UserID}, nil
}

// Logout destroys the session. Destroying an already-absent session is fine.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.sessions.Destroy(ctx, sessionID); err != nil {
		s.logger.Error().Err(err).Str("session_id", sessionID).Msg("logout destroy failed")
		return err
	}
	return nil
}
