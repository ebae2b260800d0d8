package session

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/acadeval/report-server/internal/repository/models"
)

type fakeCacher struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newFakeCacher() *fakeCacher {
	return &fakeCacher{data: make(map[string][]byte)}
}

func (c *fakeCacher) Get(ctx context.Context, key string, dest any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.data[key]
	if !ok {
		return redis.Nil
	}
	return json.Unmarshal(raw, dest)
}

func (c *fakeCacher) Set(ctx context.Context, key string, value any, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = raw
	return nil
}

func (c *fakeCacher) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func TestStore(t *testing.T) {
	ctx := context.Background()
	account := models.UserAccount{Username: "dean", Role: models.RoleAdmin}

	t.Run("create and lookup round-trip", func(t *testing.T) {
		store := NewStore(newFakeCacher(), time.Hour, zap.NewNop())

		sess, err := store.Create(ctx, account)
		require.NoError(t, err)
		require.NotEmpty(t, sess.Token)

		got, err := store.Lookup(ctx, sess.Token)
		require.NoError(t, err)
		assert.Equal(t, "dean", got.Username)
		assert.Equal(t, models.RoleAdmin, got.Role)
	})

	t.Run("tokens are unique per session", func(t *testing.T) {
		store := NewStore(newFakeCacher(), time.Hour, zap.NewNop())

		first, err := store.Create(ctx, account)
		require.NoError(t, err)
		second, err := store.Create(ctx, account)
		require.NoError(t, err)

		assert.NotEqual(t, first.Token, second.Token)
	})

	t.Run("unknown token", func(t *testing.T) {
		store := NewStore(newFakeCacher(), time.Hour, zap.NewNop())

		_, err := store.Lookup(ctx, "nope")
		assert.ErrorIs(t, err, ErrNotFound)

		_, err = store.Lookup(ctx, "")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("destroy ends the session", func(t *testing.T) {
		store := NewStore(newFakeCacher(), time.Hour, zap.NewNop())

		sess, err := store.Create(ctx, account)
		require.NoError(t, err)

		require.NoError(t, store.Destroy(ctx, sess.Token))

		_, err = store.Lookup(ctx, sess.Token)
		assert.ErrorIs(t, err, ErrNotFound)

		// idempotent
		assert.NoError(t, store.Destroy(ctx, sess.Token))
		assert.NoError(t, store.Destroy(ctx, ""))
	})

	t.Run("nil cache panics", func(t *testing.T) {
		assert.Panics(t, func() {
			NewStore(nil, time.Hour, zap.NewNop())
		})
	})
}
