package sqlite

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rdkhare/CourtFinder/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "courtfinder-test-*")
	require.NoError(t, err)

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NotNil(t, store)

	cleanup := func() {
		assert.NoError(t, store.Close())
		assert.NoError(t, os.RemoveAll(tempDir))
	}

	return store, cleanup
}

// ==================== Store Creation Tests ====================

func TestNewStore_CreatesDatabase(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	assert.Equal(t, "courtfinder.db", filepath.Base(store.Path()))
	_, err := os.Stat(store.Path())
	assert.NoError(t, err)
}

func TestNewStore_RecordsMigrations(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	var version int
	require.NoError(t, store.db.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version))
	assert.Equal(t, 1, version)
}

func TestNewStore_ReopenIsIdempotent(t *testing.T) {
	tempDir := t.TempDir()
	first, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NoError(t, first.MergeFavorites(context.Background(), "u1", json.RawMessage(`[]`)))
	require.NoError(t, first.Close())

	second, err := NewStore(tempDir)
	require.NoError(t, err)
	defer second.Close()

	doc, err := second.Get(context.Background(), "u1")
	require.NoError(t, err)
	_, ok := doc.Favorites()
	assert.True(t, ok)

	var count int
	require.NoError(t, second.db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, 1, count)
}

// ==================== User Store Tests ====================

func TestStore_GetMissing(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := store.Get(context.Background(), "nobody")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_UpdateFavorites_RequiresDocument(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	err := store.UpdateFavorites(ctx, "u1", json.RawMessage(`[]`))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = store.Get(ctx, "u1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_MergeThenUpdate(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.SetProfileField(ctx, "u1", domain.DisplayNameField, json.RawMessage(`"Jordan"`)))
	require.NoError(t, store.MergeFavorites(ctx, "u1", json.RawMessage(`[{"place_id":"a"}]`)))
	require.NoError(t, store.UpdateFavorites(ctx, "u1", json.RawMessage(`[{"place_id":"b"}]`)))

	doc, err := store.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", doc.UserID)

	raw, ok := doc.Favorites()
	require.True(t, ok)
	assert.JSONEq(t, `[{"place_id":"b"}]`, string(raw))

	name, ok := doc.String(domain.DisplayNameField)
	assert.True(t, ok)
	assert.Equal(t, "Jordan", name)
}

func TestStore_RejectsInvalidJSON(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	err := store.MergeFavorites(context.Background(), "u1", json.RawMessage(`[{`))

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStore_SetProfileField(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	require.NoError(t, store.MergeFavorites(ctx, "u1", json.RawMessage(`[{"place_id":"a"}]`)))

	require.NoError(t, store.SetProfileField(ctx, "u1", domain.UsernameField, json.RawMessage(`"jordan23"`)))
	require.NoError(t, store.SetProfileField(ctx, "u1", domain.UsernameField, json.RawMessage(`"jordan24"`)))
	require.NoError(t, store.SetProfileField(ctx, "u2", domain.PhotoURLField, json.RawMessage(`""`)))

	doc, err := store.Get(ctx, "u1")
	require.NoError(t, err)
	username, _ := doc.String(domain.UsernameField)
	assert.Equal(t, "jordan24", username)
	raw, ok := doc.Favorites()
	require.True(t, ok)
	assert.JSONEq(t, `[{"place_id":"a"}]`, string(raw))

	_, err = store.Get(ctx, "u2")
	assert.NoError(t, err, "profile writes create the document")

	assert.ErrorIs(t, store.SetProfileField(ctx, "u1", domain.FavoritesField, json.RawMessage(`[]`)), domain.ErrInvalidInput)
	assert.ErrorIs(t, store.SetProfileField(ctx, "u1", "groups", json.RawMessage(`[]`)), domain.ErrInvalidInput)
}

func TestStore_ConcurrentMerges(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, store.MergeFavorites(ctx, "u1", json.RawMessage(`[]`)))
		}()
	}
	wg.Wait()

	_, err := store.Get(ctx, "u1")
	assert.NoError(t, err)
}
