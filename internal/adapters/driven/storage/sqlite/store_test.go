package sqlite

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) (*Store, string) {
	t.Helper()

	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NotNil(t, store)
	t.Cleanup(func() { assert.NoError(t, store.Close()) })

	return store, dir
}

func TestNewStore_CreatesDatabase(t *testing.T) {
	store, dir := setupTestStore(t)

	assert.Equal(t, filepath.Join(dir, "store.db"), store.Path())
	assert.FileExists(t, store.Path())
}

func TestNewStore_RecordsMigrations(t *testing.T) {
	store, _ := setupTestStore(t)

	v, err := store.version()

	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestNewStore_ReopenIsIdempotent(t *testing.T) {
	dir := t.TempDir()

	first, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.Set(context.Background(), "k", "v"))
	require.NoError(t, first.Close())

	second, err := NewStore(dir)
	require.NoError(t, err)
	defer second.Close()

	value, ok, err := second.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", value)
}

func TestStore_GetMissing(t *testing.T) {
	store, _ := setupTestStore(t)

	value, ok, err := store.Get(context.Background(), "constitution_chat_history")

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, value)
}

func TestStore_SetOverwrites(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "constitution_analysis_cache", `{}`))
	require.NoError(t, store.Set(ctx, "constitution_analysis_cache", `{"اصل اول":{}}`))

	value, ok, err := store.Get(ctx, "constitution_analysis_cache")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"اصل اول":{}}`, value)
}

func TestStore_Delete(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", "v"))
	require.NoError(t, store.Delete(ctx, "k"))
	require.NoError(t, store.Delete(ctx, "never-set"))

	_, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_ClosedReturnsErrors(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Close())

	_, _, err = store.Get(context.Background(), "k")
	assert.Error(t, err)
	assert.Error(t, store.Set(context.Background(), "k", "v"))
}

func TestStore_ConcurrentWrites(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, store.Set(ctx, "shared", "value"))
		}()
	}
	wg.Wait()

	value, ok, err := store.Get(ctx, "shared")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "value", value)
}

func TestPending(t *testing.T) {
	fsys := fstest.MapFS{
		"010_late.up.sql":    {},
		"002_second.up.sql":  {},
		"001_first.up.sql":   {},
		"001_first.down.sql": {},
		"notes.up.sql":       {},
		"x_bad.up.sql":       {},
	}

	tests := []struct {
		name     string
		applied  int
		expected []int
	}{
		{"fresh", 0, []int{1, 2, 10}},
		{"partly applied", 1, []int{2, 10}},
		{"current", 10, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			todo, err := pending(fsys, tt.applied)
			require.NoError(t, err)

			var got []int
			for _, m := range todo {
				got = append(got, m.version)
			}
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestMigrate_FailureRollsBack(t *testing.T) {
	store, _ := setupTestStore(t)

	fsys := fstest.MapFS{
		"002_broken.up.sql": {Data: []byte("CREATE TABLE half (id INTEGER); NOT SQL;")},
	}
	err := store.migrate(fsys)
	assert.ErrorContains(t, err, "002_broken.up.sql")

	v, err := store.version()
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestMigrate_SkipsUnnumberedFiles(t *testing.T) {
	store, _ := setupTestStore(t)

	fsys := fstest.MapFS{
		"002_extra.up.sql": {Data: []byte("CREATE TABLE extra (id INTEGER);")},
		"notes.up.sql":     {Data: []byte("this is not sql")},
	}

	require.NoError(t, store.migrate(fsys))

	v, err := store.version()
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}
