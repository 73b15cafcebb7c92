package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
	assert.Empty(t, store.Keys())
}

func TestNewConfigStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "courtfinder")

	_, err := NewConfigStore(dir)

	require.NoError(t, err)
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestNewConfigStore_InvalidTOML(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("not = [valid"), 0600))

	_, err := NewConfigStore(tmpDir)

	assert.Error(t, err)
}

func TestDefaultDir(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot determine home directory")
	}

	dir, err := DefaultDir()

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".courtfinder"), dir)
}

func TestConfigStore_SetPersistsNestedTables(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("search.google.api_key", "secret"))
	require.NoError(t, store.Set("search.provider", "google"))
	require.NoError(t, store.Set("favorites.max", int64(10)))

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "[search.google]")
	assert.Contains(t, string(raw), "api_key = 'secret'")

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_ReloadRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store.Set("search.google.api_key", "secret"))
	require.NoError(t, store.Set("favorites.max", int64(10)))
	require.NoError(t, store.Set("session.kafka.brokers", []string{"a:1", "b:2"}))

	reopened, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "secret", reopened.GetString("search.google.api_key"))
	assert.Equal(t, 10, reopened.GetInt("favorites.max"))
	assert.Equal(t, []string{"a:1", "b:2"}, reopened.GetStringSlice("session.kafka.brokers"))
	assert.Equal(t, []string{"favorites.max", "search.google.api_key", "session.kafka.brokers"}, reopened.Keys())
}

func TestConfigStore_LoadHandWrittenFile(t *testing.T) {
	tmpDir := t.TempDir()
	content := `
[store]
backend = "redis"

[store.redis]
url = "redis://cache:6379/1"

[cache]
freshness_minutes = 15

[session.kafka]
brokers = "k1:9092, k2:9092"
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "redis", store.GetString("store.backend"))
	assert.Equal(t, "redis://cache:6379/1", store.GetString("store.redis.url"))
	assert.Equal(t, 15, store.GetInt("cache.freshness_minutes"))
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, store.GetStringSlice("session.kafka.brokers"))
}

func TestConfigStore_TypedGettersWrongType(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("flag", true))
	require.NoError(t, store.Set("name", "x"))

	assert.True(t, store.GetBool("flag"))
	assert.False(t, store.GetBool("name"))
	assert.Equal(t, 0, store.GetInt("name"))
	assert.Equal(t, "", store.GetString("flag"))
	assert.Nil(t, store.GetStringSlice("flag"))
	assert.Nil(t, store.GetStringSlice("missing"))
}

func TestConfigStore_ConflictingKeys(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("search", "flat"))

	err = store.Set("search.provider", "google")

	assert.Error(t, err)
}

func TestNestMap(t *testing.T) {
	nested, err := nestMap(map[string]any{
		"a.b.c": 1,
		"a.d":   "x",
		"e":     true,
	})

	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"a": map[string]any{
			"b": map[string]any{"c": 1},
			"d": "x",
		},
		"e": true,
	}, nested)
	assert.Equal(t, map[string]any{"a.b.c": 1, "a.d": "x", "e": true}, flattenMap(nested, ""))
}

func TestConfigStore_FailedSetIsRolledBack(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("search", "flat"))

	require.Error(t, store.Set("search.provider", "google"))

	_, ok := store.Get("search.provider")
	assert.False(t, ok)
	assert.NoError(t, store.Save())
}
