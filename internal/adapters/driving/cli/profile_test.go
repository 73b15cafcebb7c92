package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rdkhare/CourtFinder/internal/core/domain"
)

func storedFavoriteIDs(t *testing.T, env *testEnv, userID string) []string {
	t.Helper()
	doc, err := env.users.Get(t.Context(), userID)
	require.NoError(t, err)
	raw, ok := doc.Favorites()
	require.True(t, ok)
	courts, err := domain.DecodeFavorites(raw)
	require.NoError(t, err)
	ids := make([]string, 0, len(courts))
	for _, c := range courts {
		ids = append(ids, c.PlaceID)
	}
	return ids
}

func TestProfile_SetNameKeepsFavorites(t *testing.T) {
	env := setupTestServices(t)
	seedProfile(t, env, "kim")
	env.seedField(t, "kim", domain.FavoritesField, []any{testCourt("a", "Avenue A", 40.6, -73.9)})
	env.session.userID = "kim"

	out, _, err := execute(t, "profile", "set-name", "Kim", "Park")
	require.NoError(t, err)
	assert.Contains(t, out, "Profile updated for kim.")
	assert.Contains(t, out, "Name:     Kim Park")
	assert.Contains(t, out, "Username: kimlee")

	doc, err := env.users.Get(t.Context(), "kim")
	require.NoError(t, err)
	name, _ := doc.String(domain.DisplayNameField)
	assert.Equal(t, "Kim Park", name)
	assert.Equal(t, []string{"a"}, storedFavoriteIDs(t, env, "kim"))
}

func TestProfile_SetUsernameJSON(t *testing.T) {
	env := setupTestServices(t)
	seedProfile(t, env, "kim")
	env.seedField(t, "kim", domain.FavoritesField,
		[]any{testCourt("a", "Avenue A", 40.6, -73.9), testCourt("b", "Bay Courts", 40.8, -73.9)})
	env.session.userID = "kim"

	out, _, err := execute(t, "profile", "set-username", "kpark", "--json")
	require.NoError(t, err)

	var profile domain.Profile
	require.NoError(t, json.Unmarshal([]byte(out), &profile))
	assert.Equal(t, "kpark", profile.Username)
	assert.Equal(t, "Kim Lee", profile.DisplayName)
	assert.Equal(t, []string{"a", "b"}, storedFavoriteIDs(t, env, "kim"))
}

func TestProfile_SetPhotoClears(t *testing.T) {
	env := setupTestServices(t)
	seedProfile(t, env, "kim")
	env.session.userID = "kim"

	out, _, err := execute(t, "profile", "set-photo")
	require.NoError(t, err)
	assert.NotContains(t, out, "Photo:")

	doc, err := env.users.Get(t.Context(), "kim")
	require.NoError(t, err)
	photo, _ := doc.String(domain.PhotoURLField)
	assert.Empty(t, photo)
}

func TestProfile_Errors(t *testing.T) {
	t.Run("signed out", func(t *testing.T) {
		setupTestServices(t)

		_, _, err := execute(t, "profile", "set-name", "Kim")

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrNoSession)
	})

	t.Run("invalid username", func(t *testing.T) {
		env := setupTestServices(t)
		seedProfile(t, env, "kim")
		env.session.userID = "kim"

		_, _, err := execute(t, "profile", "set-username", "kim lee")

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		doc, getErr := env.users.Get(t.Context(), "kim")
		require.NoError(t, getErr)
		username, _ := doc.String(domain.UsernameField)
		assert.Equal(t, "kimlee", username)
	})

	t.Run("invalid photo", func(t *testing.T) {
		env := setupTestServices(t)
		env.session.userID = "kim"

		_, _, err := execute(t, "profile", "set-photo", "not a url")

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("not configured", func(t *testing.T) {
		env := setupTestServices(t)
		env.session.userID = "kim"
		profileService = nil

		_, _, err := execute(t, "profile", "set-name", "Kim")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "profile service not configured")
	})
}

func TestLogin_CreatesDefaultProfile(t *testing.T) {
	env := setupTestServices(t)

	out, _, err := execute(t, "login", "kim")
	require.NoError(t, err)
	assert.Contains(t, out, `Created profile "New User" (username kim).`)

	doc, err := env.users.Get(t.Context(), "kim")
	require.NoError(t, err)
	profile := domain.ProfileFromDocument(doc)
	assert.Equal(t, domain.DefaultDisplayName, profile.DisplayName)
	assert.Equal(t, "kim", profile.Username)
}

func TestLogin_KeepsExistingProfile(t *testing.T) {
	env := setupTestServices(t)
	seedProfile(t, env, "kim")

	out, _, err := execute(t, "login", "kim")
	require.NoError(t, err)
	assert.NotContains(t, out, "Created profile")

	doc, err := env.users.Get(t.Context(), "kim")
	require.NoError(t, err)
	assert.Equal(t, "Kim Lee", domain.ProfileFromDocument(doc).DisplayName)
}
