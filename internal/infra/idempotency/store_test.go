package idempotency

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	mr := miniredis.RunT(t)
	store := NewStore(mr.Addr(), 0, time.Minute)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Ping(context.Background()))
	return store
}

func TestStore_Reserve(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	ok, err := store.Reserve(ctx, "key-1")
	require.NoError(t, err)
	assert.True(t, ok)

	// Повторное резервирование того же ключа не проходит
	ok, err = store.Reserve(ctx, "key-1")
	require.NoError(t, err)
	assert.False(t, ok)

	// Другой ключ резервируется независимо
	ok, err = store.Reserve(ctx, "key-2")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestStore_Result(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("in flight", func(t *testing.T) {
		ok, err := store.Reserve(ctx, "key-1")
		require.NoError(t, err)
		require.True(t, ok)

		_, err = store.Result(ctx, "key-1")
		assert.ErrorIs(t, err, ErrInFlight)
	})

	t.Run("unknown key", func(t *testing.T) {
		_, err := store.Result(ctx, "missing")
		assert.ErrorIs(t, err, ErrInFlight)
	})

	t.Run("completed", func(t *testing.T) {
		ok, err := store.Reserve(ctx, "key-2")
		require.NoError(t, err)
		require.True(t, ok)

		require.NoError(t, store.Complete(ctx, "key-2", 42))

		id, err := store.Result(ctx, "key-2")
		require.NoError(t, err)
		assert.Equal(t, int64(42), id)
	})
}

func TestStore_Release(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	ok, err := store.Reserve(ctx, "key-1")
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, store.Release(ctx, "key-1"))

	// После освобождения ключ снова можно зарезервировать
	ok, err = store.Reserve(ctx, "key-1")
	require.NoError(t, err)
	assert.True(t, ok)
}
