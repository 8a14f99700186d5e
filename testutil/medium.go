package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/ecodrive/internal/kv"
)

// RunMediumSuite exercises the kv.Medium contract against m. Every backend
// test calls it so all media behave identically. keyPrefix keeps runs against
// shared servers (Postgres, Redis) from colliding.
func RunMediumSuite(t *testing.T, m kv.Medium, keyPrefix string) {
	t.Helper()
	ctx := context.Background()

	t.Run("missing key is not an error", func(t *testing.T) {
		_, found, err := m.Get(ctx, keyPrefix+"missing")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("unconditional put round-trips", func(t *testing.T) {
		key := keyPrefix + "plain"

		rev, err := m.Put(ctx, key, []byte(`{"a":1}`), kv.AnyRevision)
		require.NoError(t, err)
		assert.Equal(t, int64(1), rev)

		rev, err = m.Put(ctx, key, []byte(`{"a":2}`), kv.AnyRevision)
		require.NoError(t, err)
		assert.Equal(t, int64(2), rev)

		e, found, err := m.Get(ctx, key)
		require.NoError(t, err)
		require.True(t, found)
		assert.JSONEq(t, `{"a":2}`, string(e.Value))
		assert.Equal(t, int64(2), e.Revision)
	})

	t.Run("create-only put", func(t *testing.T) {
		key := keyPrefix + "create"

		_, err := m.Put(ctx, key, []byte(`[]`), 0)
		require.NoError(t, err)

		_, err = m.Put(ctx, key, []byte(`[1]`), 0)
		assert.ErrorIs(t, err, kv.ErrConflict)
	})

	t.Run("stale revision conflicts", func(t *testing.T) {
		key := keyPrefix + "cas"

		rev, err := m.Put(ctx, key, []byte(`"v1"`), kv.AnyRevision)
		require.NoError(t, err)

		next, err := m.Put(ctx, key, []byte(`"v2"`), rev)
		require.NoError(t, err)
		assert.Equal(t, rev+1, next)

		// rev is now stale.
		_, err = m.Put(ctx, key, []byte(`"v3"`), rev)
		assert.ErrorIs(t, err, kv.ErrConflict)

		e, _, err := m.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, `"v2"`, string(e.Value))
	})

	t.Run("expected revision on missing key conflicts", func(t *testing.T) {
		_, err := m.Put(ctx, keyPrefix+"ghost", []byte(`1`), 3)
		assert.ErrorIs(t, err, kv.ErrConflict)
	})
}
