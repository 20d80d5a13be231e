package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKVStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewKVStore()

	_, ok, err := store.Get(ctx, "constitution_chat_history")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "constitution_chat_history", "[]"))
	value, ok, err := store.Get(ctx, "constitution_chat_history")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", value)

	require.NoError(t, store.Delete(ctx, "constitution_chat_history"))
	_, ok, err = store.Get(ctx, "constitution_chat_history")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestKVStore_Closed(t *testing.T) {
	ctx := context.Background()
	store := NewKVStore()
	require.NoError(t, store.Close())

	_, _, err := store.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, store.Set(ctx, "k", "v"), ErrClosed)
	assert.ErrorIs(t, store.Delete(ctx, "k"), ErrClosed)
}
