package domain

import (
	"errors"
	"time"
)

var ErrNoSession = errors.New("no session")
var ErrSessionExpired = errors.New("session expired")

// Session binds a successful login to a time-bounded authorization window.
// LastActivityAt advances on every authorized request; CreatedAt never changes.
type Session struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	CreatedAt      time.Time `json:"created_at"`
	LastActivityAt time.Time `json:"last_activity_at"`
}

// Expired reports whether the session's inactivity window has elapsed.
// The boundary is inclusive: a session touched exactly timeout ago is still live.
func (s *Session) Expired(now time.Time, timeout time.Duration) bool {
	return now.Sub(s.LastActivityAt) > timeout
}
