package file

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/mashruteh/internal/core/ports/driven"
)

func newPromptStore(t *testing.T) (*PromptStore, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "prompts")
	store, err := NewPromptStore(dir)
	require.NoError(t, err)
	return store, dir
}

func writePrompt(t *testing.T, dir, name, text string, mtime time.Time) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o700))
	path := filepath.Join(dir, name+".txt")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o600))
	require.NoError(t, os.Chtimes(path, mtime, mtime))
}

func TestNewPromptStore_DefaultDir(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	store, err := NewPromptStore("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".mashruteh", "prompts"), store.Dir())
}

func TestPromptStore_LazySeeding(t *testing.T) {
	store, dir := newPromptStore(t)

	_, err := os.Stat(dir)
	require.True(t, os.IsNotExist(err), "constructor must not touch disk")

	prompt, err := store.Load(driven.PromptAnalysis)
	require.NoError(t, err)
	assert.Equal(t, strings.TrimSpace(driven.DefaultPrompts[driven.PromptAnalysis]), prompt)

	for _, f := range []string{"chat_system.txt", "suggestions.txt", "analysis.txt", "README.md"} {
		assert.FileExists(t, filepath.Join(dir, f))
	}
}

func TestPromptStore_Load(t *testing.T) {
	epoch := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		prompt   string
		file     string
		expected string
	}{
		{
			name:     "edited file wins",
			prompt:   driven.PromptChatSystem,
			file:     "منابع: %s\nگفتگو: %s\nپرسش: %s\n",
			expected: "منابع: %s\nگفتگو: %s\nپرسش: %s",
		},
		{
			name:     "blank file falls back",
			prompt:   driven.PromptSuggestions,
			file:     "  \n",
			expected: driven.DefaultPrompts[driven.PromptSuggestions],
		},
		{
			name:     "missing placeholder falls back",
			prompt:   driven.PromptAnalysis,
			file:     "explain %s",
			expected: driven.DefaultPrompts[driven.PromptAnalysis],
		},
		{
			name:     "extra placeholder falls back",
			prompt:   driven.PromptSuggestions,
			file:     "%s and %s",
			expected: driven.DefaultPrompts[driven.PromptSuggestions],
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, dir := newPromptStore(t)
			writePrompt(t, dir, tt.prompt, tt.file, epoch)

			got, err := store.Load(tt.prompt)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestPromptStore_UnknownName(t *testing.T) {
	store, _ := newPromptStore(t)

	_, err := store.Load("poem")
	assert.ErrorContains(t, err, `unknown prompt "poem"`)
}

func TestPromptStore_PicksUpEdits(t *testing.T) {
	store, dir := newPromptStore(t)
	epoch := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	writePrompt(t, dir, driven.PromptAnalysis, "first %s %s", epoch)
	got, err := store.Load(driven.PromptAnalysis)
	require.NoError(t, err)
	assert.Equal(t, "first %s %s", got)

	writePrompt(t, dir, driven.PromptAnalysis, "second %s %s", epoch.Add(time.Minute))
	got, err = store.Load(driven.PromptAnalysis)
	require.NoError(t, err)
	assert.Equal(t, "second %s %s", got)
}

func TestPromptStore_Reload(t *testing.T) {
	store, dir := newPromptStore(t)
	epoch := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	writePrompt(t, dir, driven.PromptAnalysis, "first %s %s", epoch)
	_, err := store.Load(driven.PromptAnalysis)
	require.NoError(t, err)

	// Same mtime: the cached copy is served until the cache is dropped.
	writePrompt(t, dir, driven.PromptAnalysis, "other %s %s", epoch)
	got, _ := store.Load(driven.PromptAnalysis)
	assert.Equal(t, "first %s %s", got)

	store.Reload()
	got, _ = store.Load(driven.PromptAnalysis)
	assert.Equal(t, "other %s %s", got)
}

func TestPromptStore_UnwritableDirFallsBack(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	store, err := NewPromptStore(filepath.Join(blocker, "prompts"))
	require.NoError(t, err)

	got, err := store.Load(driven.PromptChatSystem)
	require.NoError(t, err)
	assert.Equal(t, driven.DefaultPrompts[driven.PromptChatSystem], got)
}

func TestPromptStore_ConcurrentLoad(t *testing.T) {
	store, _ := newPromptStore(t)

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Load(driven.PromptChatSystem)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}
