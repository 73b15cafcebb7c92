package memory

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rdkhare/CourtFinder/internal/core/domain"
)

func TestUserStore_GetMissing(t *testing.T) {
	store := NewUserStore()

	doc, err := store.Get(context.Background(), "u1")

	assert.Nil(t, doc)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserStore_UpdateRequiresDocument(t *testing.T) {
	store := NewUserStore()
	ctx := context.Background()

	err := store.UpdateFavorites(ctx, "u1", json.RawMessage(`[]`))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = store.Get(ctx, "u1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserStore_MergeCreatesAndKeepsOtherFields(t *testing.T) {
	store := NewUserStore()
	ctx := context.Background()
	require.NoError(t, store.SetProfileField(ctx, "u1", domain.DisplayNameField, json.RawMessage(`"Jordan"`)))

	require.NoError(t, store.MergeFavorites(ctx, "u1", json.RawMessage(`[{"place_id":"a"}]`)))
	require.NoError(t, store.UpdateFavorites(ctx, "u1", json.RawMessage(`[]`)))

	doc, err := store.Get(ctx, "u1")
	require.NoError(t, err)
	name, ok := doc.String(domain.DisplayNameField)
	assert.True(t, ok)
	assert.Equal(t, "Jordan", name)
	raw, ok := doc.Favorites()
	assert.True(t, ok)
	assert.JSONEq(t, `[]`, string(raw))
}

func TestUserStore_GetReturnsCopy(t *testing.T) {
	store := NewUserStore()
	ctx := context.Background()
	require.NoError(t, store.MergeFavorites(ctx, "u1", json.RawMessage(`[]`)))

	doc, err := store.Get(ctx, "u1")
	require.NoError(t, err)
	doc.Fields[domain.FavoritesField] = json.RawMessage(`null`)
	delete(doc.Fields, domain.FavoritesField)

	again, err := store.Get(ctx, "u1")
	require.NoError(t, err)
	_, ok := again.Favorites()
	assert.True(t, ok)
}

func TestUserStore_SetProfileField(t *testing.T) {
	store := NewUserStore()
	ctx := context.Background()
	require.NoError(t, store.MergeFavorites(ctx, "u1", json.RawMessage(`[{"place_id":"a"}]`)))

	require.NoError(t, store.SetProfileField(ctx, "u1", domain.UsernameField, json.RawMessage(`"jordan23"`)))
	require.NoError(t, store.SetProfileField(ctx, "u2", domain.DisplayNameField, json.RawMessage(`"New"`)))

	doc, err := store.Get(ctx, "u1")
	require.NoError(t, err)
	username, _ := doc.String(domain.UsernameField)
	assert.Equal(t, "jordan23", username)
	raw, _ := doc.Favorites()
	assert.JSONEq(t, `[{"place_id":"a"}]`, string(raw))

	_, err = store.Get(ctx, "u2")
	assert.NoError(t, err, "profile writes create the document")
}

func TestUserStore_SetProfileFieldRejects(t *testing.T) {
	store := NewUserStore()
	ctx := context.Background()

	assert.ErrorIs(t, store.SetProfileField(ctx, "u1", domain.FavoritesField, json.RawMessage(`[]`)), domain.ErrInvalidInput)
	assert.ErrorIs(t, store.SetProfileField(ctx, "u1", domain.UsernameField, json.RawMessage(`{`)), domain.ErrInvalidInput)

	_, err := store.Get(ctx, "u1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
