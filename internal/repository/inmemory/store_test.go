package inmemory

import (
	"context"
	"testing"

	"goblog/internal/repository/redis"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionLifecycle(t *testing.T) {
	store := New()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, 1, "sess-a"))

	id, err := store.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "sess-a", id)

	// A second login replaces the whitelisted id.
	require.NoError(t, store.Save(ctx, 1, "sess-b"))
	id, err = store.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "sess-b", id)

	require.NoError(t, store.Delete(ctx, 1))
	_, err = store.Get(ctx, 1)
	assert.ErrorIs(t, err, redis.ErrSessionNotFound)
}

func TestFlashesAreReadOnce(t *testing.T) {
	store := New()
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, "visitor-1", "first"))
	require.NoError(t, store.Add(ctx, "visitor-1", "second"))

	msgs, err := store.PopAll(ctx, "visitor-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, msgs)

	msgs, err = store.PopAll(ctx, "visitor-1")
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestFlashesArePerVisitor(t *testing.T) {
	store := New()
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, "visitor-1", "mine"))

	msgs, err := store.PopAll(ctx, "visitor-2")
	require.NoError(t, err)
	assert.Empty(t, msgs)
}
