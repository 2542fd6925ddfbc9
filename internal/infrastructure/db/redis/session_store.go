package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/bookinglab/admin-portal/internal/core/domain"
)

// touchScript updates last activity only if the session still exists, so a
// concurrent DEL always wins. EXPIRE is refreshed alongside.
var touchScript = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 0 then
  return 0
end
redis.call("HSET", KEYS[1], "last_activity_at", ARGV[1])
redis.call("EXPIRE", KEYS[1], ARGV[2])
return 1
`)

// SessionStore keeps sessions as Redis hashes under session:<id>, shared by
// every process pointed at the same instance. The key TTL is garbage
// collection only; inactivity expiry is always recomputed by the auth gate.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore wraps client. ttl should comfortably exceed the inactivity
// timeout (twice the timeout is the conventional choice).
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &SessionStore{client: client, ttl: ttl}
}

func sessionKey(id string) string {
	return "session:" + id
}

func (st *SessionStore) Create(ctx context.Context, userID string) (*domain.Session, error) {
	now := time.Now().UTC()
	s := &domain.Session{
		ID:             uuid.NewString(),
		UserID:         userID,
		CreatedAt:      now,
		LastActivityAt: now,
	}

	pipe := st.client.TxPipeline()
	pipe.HSet(ctx, sessionKey(s.ID), map[string]any{
		"user_id":          s.UserID,
		"created_at":       s.CreatedAt.UnixNano(),
		"last_activity_at": s.LastActivityAt.UnixNano(),
	})
	pipe.Expire(ctx, sessionKey(s.ID), st.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("session create: %w", err)
	}

	return s, nil
}

func (st *SessionStore) Find(ctx context.Context, id string) (*domain.Session, error) {
	fields, err := st.client.HGetAll(ctx, sessionKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("session find: %w", err)
	}
	if len(fields) == 0 {
		return nil, domain.ErrNoSession
	}
	return sessionFromFields(id, fields)
}

func (st *SessionStore) Touch(ctx context.Context, id string, now time.Time) (*domain.Session, error) {
	n, err := touchScript.Run(ctx, st.client,
		[]string{sessionKey(id)},
		now.UTC().UnixNano(),
		int(st.ttl.Seconds()),
	).Int()
	if err != nil {
		return nil, fmt.Errorf("session touch: %w", err)
	}
	if n == 0 {
		return nil, domain.ErrNoSession
	}
	return st.Find(ctx, id)
}

func (st *SessionStore) Destroy(ctx context.Context, id string) error {
	if err := st.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("session destroy: %w", err)
	}
	return nil
}

func sessionFromFields(id string, fields map[string]string) (*domain.Session, error) {
	createdAt, err := strconv.ParseInt(fields["created_at"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("session %s: bad created_at: %w", id, err)
	}
	lastActivity, err := strconv.ParseInt(fields["last_activity_at"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("session %s: bad last_activity_at: %w", id, err)
	}
	return &domain.Session{
		ID:             id,
		UserID:         fields["user_id"],
		CreatedAt:      time.Unix(0, createdAt).UTC(),
		LastActivityAt: time.Unix(0, lastActivity).UTC(),
	}, nil
}
