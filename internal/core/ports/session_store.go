package ports

import (
	"context"
	"time"

	"github.com/bookinglab/admin-portal/internal/core/domain"
)

// SessionStore holds live sessions. Implementations must serialize writes per
// session identifier: once Destroy has run for an id, a concurrent Touch on the
// same id must fail with domain.ErrNoSession rather than resurrect the record.
type SessionStore interface {
	// Create allocates a new session with CreatedAt = LastActivityAt = now.
	Create(ctx context.Context, userID string) (*domain.Session, error)
	// Find returns the session or domain.ErrNoSession.
	Find(ctx context.Context, id string) (*domain.Session, error)
	// Touch sets LastActivityAt = now and returns the updated session,
	// or domain.ErrNoSession if the session was destroyed or never existed.
	Touch(ctx context.Context, id string, now time.Time) (*domain.Session, error)
	// Destroy removes the session. Idempotent: destroying an absent id is a no-op.
	Destroy(ctx context.Context, id string) error
}
