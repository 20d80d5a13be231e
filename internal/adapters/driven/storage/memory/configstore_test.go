package memory

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore(t *testing.T) {
	store := NewConfigStore()
	assert.Equal(t, ":memory:", store.Path())

	require.NoError(t, store.Set("llm.provider", "gemini"))
	require.NoError(t, store.Set("llm.provider", "ollama"))
	require.NoError(t, store.Set("audio.speed", 1.5))

	val, ok := store.Get("llm.provider")
	assert.True(t, ok)
	assert.Equal(t, "ollama", val)

	val, _ = store.Get("audio.speed")
	assert.Equal(t, 1.5, val, "values keep their type")

	require.NoError(t, store.Delete("llm.provider"))
	require.NoError(t, store.Delete("never-set"))
	_, ok = store.Get("llm.provider")
	assert.False(t, ok)
}

func TestConfigStore_Concurrent(t *testing.T) {
	store := NewConfigStore()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("key.%d", n)
			assert.NoError(t, store.Set(key, n))
			v, ok := store.Get(key)
			assert.True(t, ok)
			assert.Equal(t, n, v)
		}(i)
	}
	wg.Wait()
}
