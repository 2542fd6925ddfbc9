// Package memory provides the in-process session store used by single-node
// deployments and tests. Multi-process deployments should use the redis-backed
// store instead so all nodes see the same sessions.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bookinglab/admin-portal/internal/core/domain"
)

// SessionStore keeps sessions in a mutex-guarded map. Writes for any session
// id run under the write lock, so a Destroy can never be overtaken by a
// concurrent Touch on the same id.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*domain.Session)}
}

func clone(s *domain.Session) *domain.Session {
	c := *s
	return &c
}

func (st *SessionStore) Create(_ context.Context, userID string) (*domain.Session, error) {
	now := time.Now().UTC()
	s := &domain.Session{
		ID:             uuid.NewString(),
		UserID:         userID,
		CreatedAt:      now,
		LastActivityAt: now,
	}

	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()

	return clone(s), nil
}

func (st *SessionStore) Find(_ context.Context, id string) (*domain.Session, error) {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()

	if !ok {
		return nil, domain.ErrNoSession
	}
	return clone(s), nil
}

func (st *SessionStore) Touch(_ context.Context, id string, now time.Time) (*domain.Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	// Existence is re-checked under the lock: a destroy that won the race
	// must not be undone here.
	s, ok := st.sessions[id]
	if !ok {
		return nil, domain.ErrNoSession
	}
	s.LastActivityAt = now
	return clone(s), nil
}

func (st *SessionStore) Destroy(_ context.Context, id string) error {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
	return nil
}

// Len reports the number of live sessions. Exposed for the active-sessions gauge.
func (st *SessionStore) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// StartJanitor evicts sessions idle longer than maxIdle every interval until
// ctx is cancelled. This is garbage collection only: the auth gate recomputes
// expiry on every request and never relies on the janitor having run.
func (st *SessionStore) StartJanitor(ctx context.Context, interval, maxIdle time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				st.evictIdle(time.Now().UTC(), maxIdle)
			}
		}
	}()
}

func (st *SessionStore) evictIdle(now time.Time, maxIdle time.Duration) {
	st.mu.Lock()
	defer st.mu.Unlock()
	for id, s := range st.sessions {
		if now.Sub(s.LastActivityAt) > maxIdle {
			delete(st.sessions, id)
		}
	}
}
