package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/bookinglab/admin-portal/internal/core/domain"
)

type stubAuthRepo struct {
	users   map[string]*domain.User
	lookups int
}

func newStubAuthRepo() *stubAuthRepo {
	return &stubAuthRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubAuthRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.lookups++
	if u, ok := r.users[email]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubAuthRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Email]; exists {
		return nil, domain.ErrUserExists
	}
	copy := cloneUser(user)
	if copy.ID == "" {
		copy.ID = user.Email
	}
	r.users[copy.Email] = cloneUser(copy)
	return cloneUser(copy), nil
}

// stubSessionStore is a map-backed store with an adjustable clock so tests can
// walk sessions up to and past the inactivity boundary.
type stubSessionStore struct {
	sessions map[string]*domain.Session
	now      time.Time
	seq      int
}

func newStubSessionStore(now time.Time) *stubSessionStore {
	return &stubSessionStore{sessions: make(map[string]*domain.Session), now: now}
}

func cloneSession(s *domain.Session) *domain.Session {
	if s == nil {
		return nil
	}
	clone := *s
	return &clone
}

func (st *stubSessionStore) Create(_ context.Context, userID string) (*domain.Session, error) {
	st.seq++
	s := &domain.Session{
		ID:             string(rune('a' + st.seq)),
		UserID:         userID,
		CreatedAt:      st.now,
		LastActivityAt: st.now,
	}
	st.sessions[s.ID] = s
	return cloneSession(s), nil
}

func (st *stubSessionStore) Find(_ context.Context, id string) (*domain.Session, error) {
	if s, ok := st.sessions[id]; ok {
		return cloneSession(s), nil
	}
	return nil, domain.ErrNoSession
}

func (st *stubSessionStore) Touch(_ context.Context, id string, now time.Time) (*domain.Session, error) {
	s, ok := st.sessions[id]
	if !ok {
		return nil, domain.ErrNoSession
	}
	s.LastActivityAt = now
	return cloneSession(s), nil
}

func (st *stubSessionStore) Destroy(_ context.Context, id string) error {
	delete(st.sessions, id)
	return nil
}

func registerUser(t *testing.T, repo *stubAuthRepo, email, password string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user, err := repo.Create(context.Background(), &domain.User{Email: email, PasswordHash: string(hash)})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

var testBase = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func newTestAuthService(timeout time.Duration) (*AuthService, *stubAuthRepo, *stubSessionStore) {
	repo := newStubAuthRepo()
	store := newStubSessionStore(testBase)
	svc := NewAuthService(repo, store, timeout, zerolog.Nop())
	return svc, repo, store
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, repo, _ := newTestAuthService(time.Minute)
	user := registerUser(t, repo, "a@b.com", "secret")

	session, err := svc.Login(context.Background(), "a@b.com", "secret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if session.UserID != user.ID {
		t.Fatalf("session bound to %q, want %q", session.UserID, user.ID)
	}
	if !session.LastActivityAt.Equal(session.CreatedAt) {
		t.Fatalf("fresh session LastActivityAt %v != CreatedAt %v", session.LastActivityAt, session.CreatedAt)
	}
}

func TestAuthService_Login_ValidationBeforeLookup(t *testing.T) {
	svc, repo, _ := newTestAuthService(time.Minute)
	registerUser(t, repo, "a@b.com", "secret")

	cases := []struct {
		name     string
		email    string
		password string
	}{
		{"empty email", "", "secret"},
		{"malformed email", "not-an-address", "secret"},
		{"empty password", "a@b.com", ""},
	}
	for _, tc := range cases {
		if _, err := svc.Login(context.Background(), tc.email, tc.password); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", tc.name, err)
		}
	}
	if repo.lookups != 0 {
		t.Fatalf("validation failures reached the repository (%d lookups)", repo.lookups)
	}
}

func TestAuthService_Login_UnknownAndWrongPasswordLookAlike(t *testing.T) {
	svc, repo, _ := newTestAuthService(time.Minute)
	registerUser(t, repo, "a@b.com", "secret")

	_, errUnknown := svc.Login(context.Background(), "ghost@b.com", "secret")
	_, errWrong := svc.Login(context.Background(), "a@b.com", "wrong")

	if !errors.Is(errUnknown, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown account: expected ErrInvalidCredentials, got %v", errUnknown)
	}
	if !errors.Is(errWrong, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", errWrong)
	}
	if errUnknown.Error() != errWrong.Error() {
		t.Fatalf("error text leaks which check failed: %q vs %q", errUnknown, errWrong)
	}
}

func TestAuthService_Authorize_AfterLogin(t *testing.T) {
	svc, repo, store := newTestAuthService(time.Minute)
	registerUser(t, repo, "a@b.com", "secret")

	session, err := svc.Login(context.Background(), "a@b.com", "secret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	authz, err := svc.Authorize(context.Background(), session.ID, testBase.Add(time.Second))
	if err != nil {
		t.Fatalf("authorize failed: %v", err)
	}
	if authz.UserID != session.UserID {
		t.Fatalf("authorized user %q, want %q", authz.UserID, session.UserID)
	}

	stored := store.sessions[session.ID]
	if !stored.CreatedAt.Equal(session.CreatedAt) {
		t.Fatalf("authorize mutated CreatedAt: %v -> %v", session.CreatedAt, stored.CreatedAt)
	}
	if !stored.LastActivityAt.Equal(testBase.Add(time.Second)) {
		t.Fatalf("authorize did not touch LastActivityAt: %v", stored.LastActivityAt)
	}
}

func TestAuthService_Authorize_InclusiveTimeoutBoundary(t *testing.T) {
	svc, repo, store := newTestAuthService(60 * time.Second)
	registerUser(t, repo, "a@b.com", "secret")

	session, err := svc.Login(context.Background(), "a@b.com", "secret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	// Exactly at the boundary the session is still live.
	if _, err := svc.Authorize(context.Background(), session.ID, testBase.Add(60*time.Second)); err != nil {
		t.Fatalf("authorize at t+60s should succeed, got %v", err)
	}

	// One second past the (slid) boundary it expires and is destroyed.
	if _, err := svc.Authorize(context.Background(), session.ID, testBase.Add(121*time.Second)); !errors.Is(err, domain.ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
	if _, ok := store.sessions[session.ID]; ok {
		t.Fatalf("expired session left in store")
	}

	// The identifier is terminal after destruction.
	if _, err := svc.Authorize(context.Background(), session.ID, testBase.Add(122*time.Second)); !errors.Is(err, domain.ErrNoSession) {
		t.Fatalf("expected ErrNoSession after expiry, got %v", err)
	}
}

func TestAuthService_Authorize_SlidingWindow(t *testing.T) {
	svc, repo, _ := newTestAuthService(60 * time.Second)
	registerUser(t, repo, "a@b.com", "secret")

	session, _ := svc.Login(context.Background(), "a@b.com", "secret")

	// Activity at t+40s slides the window; t+90s is only 50s of inactivity.
	if _, err := svc.Authorize(context.Background(), session.ID, testBase.Add(40*time.Second)); err != nil {
		t.Fatalf("authorize at t+40s: %v", err)
	}
	if _, err := svc.Authorize(context.Background(), session.ID, testBase.Add(90*time.Second)); err != nil {
		t.Fatalf("authorize at t+90s after touch: %v", err)
	}
}

func TestAuthService_Logout(t *testing.T) {
	svc, repo, _ := newTestAuthService(time.Minute)
	registerUser(t, repo, "a@b.com", "secret")

	session, _ := svc.Login(context.Background(), "a@b.com", "secret")

	if err := svc.Logout(context.Background(), session.ID); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if _, err := svc.Authorize(context.Background(), session.ID, testBase.Add(time.Second)); !errors.Is(err, domain.ErrNoSession) {
		t.Fatalf("expected ErrNoSession after logout, got %v", err)
	}

	// Logging out again, or with an unknown id, is a no-op.
	if err := svc.Logout(context.Background(), session.ID); err != nil {
		t.Fatalf("repeated logout failed: %v", err)
	}
	if err := svc.Logout(context.Background(), "never-existed"); err != nil {
		t.Fatalf("logout of unknown session failed: %v", err)
	}
}

func TestAuthService_ConcurrentLoginsPermitted(t *testing.T) {
	svc, repo, _ := newTestAuthService(time.Minute)
	registerUser(t, repo, "a@b.com", "secret")

	first, err := svc.Login(context.Background(), "a@b.com", "secret")
	if err != nil {
		t.Fatalf("first login: %v", err)
	}
	second, err := svc.Login(context.Background(), "a@b.com", "secret")
	if err != nil {
		t.Fatalf("second login: %v", err)
	}
	if first.ID == second.ID {
		t.Fatalf("expected distinct sessions, both got %q", first.ID)
	}

	// Both stay usable independently.
	if _, err := svc.Authorize(context.Background(), first.ID, testBase.Add(time.Second)); err != nil {
		t.Fatalf("first session unusable: %v", err)
	}
	if _, err := svc.Authorize(context.Background(), second.ID, testBase.Add(time.Second)); err != nil {
		t.Fatalf("second session unusable: %v", err)
	}
}
