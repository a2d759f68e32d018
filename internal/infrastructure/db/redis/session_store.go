package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hakwonhub/dashboard-gateway/internal/core/domain"
)

const defaultSessionTTL = 24 * time.Hour

// SessionStore keeps whole sessions in redis hashes under session:<id>.
// Sessions survive gateway restarts; the TTL is a safety net matching the
// refresh token's practical lifetime, not a client-side expiry check.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionStore{client: client, ttl: ttl}
}

func (s *SessionStore) Save(ctx context.Context, sess *domain.Session) error {
	key := s.key(sess.ID)
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, key, map[string]any{
		"access":     sess.AccessToken,
		"refresh":    sess.RefreshToken,
		"role":       string(sess.Role),
		"full_name":  sess.FullName,
		"created_at": sess.CreatedAt.UTC().Format(time.RFC3339),
	})
	pipe.Expire(ctx, key, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Load returns nil, nil when no session exists under the id. A stored record
// whose role fell outside the enumeration reads the same way: the invariant
// says such a session is invalid, not an error.
func (s *SessionStore) Load(ctx context.Context, id string) (*domain.Session, error) {
	vals, err := s.client.HGetAll(ctx, s.key(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if len(vals) == 0 {
		return nil, nil
	}

	role, err := domain.ParseRole(vals["role"])
	if err != nil {
		return nil, nil
	}

	createdAt, _ := time.Parse(time.RFC3339, vals["created_at"])
	return &domain.Session{
		ID:           id,
		AccessToken:  vals["access"],
		RefreshToken: vals["refresh"],
		Role:         role,
		FullName:     vals["full_name"],
		CreatedAt:    createdAt,
	}, nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *SessionStore) key(id string) string {
	return "session:" + id
}
