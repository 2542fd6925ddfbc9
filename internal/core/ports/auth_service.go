package ports

import (
	"context"
	"time"

	"github.com/bookinglab/admin-portal/internal/core/domain"
)

// AuthorizedContext is the identity a request handler may act on after a
// successful authorization check.
type AuthorizedContext struct {
	SessionID string
	UserID    string
}

// AuthService is the gate in front of every protected operation.
type AuthService interface {
	// Login validates the credentials and, on success, establishes a session.
	// Validation failures (empty/malformed email, empty password) surface as
	// domain.ErrInvalidInput before any storage access; a non-matching account
	// or password surfaces as domain.ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (*domain.Session, error)
	// Authorize checks session freshness at now, touching the session when live.
	// Absent sessions yield domain.ErrNoSession; expired sessions are destroyed
	// and yield domain.ErrSessionExpired.
	Authorize(ctx context.Context, sessionID string, now time.Time) (*AuthorizedContext, error)
	// Logout destroys the session unconditionally. Always succeeds.
	Logout(ctx context.Context, sessionID string) error
}
