package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/acadeval/report-server/internal/repository/models"
)

// ErrNotFound is returned when a token has no live session behind it,
// either because it never existed or because it expired.
var ErrNotFound = errors.New("session not found")

// Session is the request-scoped login state. It carries only identity
// and role; there is no process-wide notion of "the logged-in user".
type Session struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Cacher is the slice of the cache the store needs.
type Cacher interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Store keeps sessions in the cache with a TTL, one record per token.
type Store struct {
	cache  Cacher
	ttl    time.Duration
	logger *zap.Logger
}

func NewStore(cache Cacher, ttl time.Duration, logger *zap.Logger) *Store {
	if cache == nil {
		panic("cache must not be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		cache:  cache,
		ttl:    ttl,
		logger: logger.Named("sessions"),
	}
}

// Create opens a new session for the account and returns it.
func (s *Store) Create(ctx context.Context, account models.UserAccount) (Session, error) {
	sess := Session{
		Token:     uuid.NewString(),
		Username:  account.Username,
		Role:      account.Role,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.cache.Set(ctx, sessionKey(sess.Token), sess, s.ttl); err != nil {
		return Session{}, fmt.Errorf("store session: %w", err)
	}

	s.logger.Debug("session created",
		zap.String("username", account.Username),
		zap.Duration("ttl", s.ttl))
	return sess, nil
}

// Lookup resolves a token to its session.
func (s *Store) Lookup(ctx context.Context, token string) (Session, error) {
	if token == "" {
		return Session{}, ErrNotFound
	}

	var sess Session
	err := s.cache.Get(ctx, sessionKey(token), &sess)
	switch {
	case err == nil:
		return sess, nil
	case errors.Is(err, redis.Nil):
		return Session{}, ErrNotFound
	default:
		return Session{}, fmt.Errorf("lookup session: %w", err)
	}
}

// Destroy ends the session. Destroying an unknown token is not an error.
func (s *Store) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.cache.Delete(ctx, sessionKey(token)); err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}

func sessionKey(token string) string {
	return "session:" + token
}
