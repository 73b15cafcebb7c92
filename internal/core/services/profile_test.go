package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rdkhare/CourtFinder/internal/core/domain"
)

type fakeImages struct {
	images map[string][]byte
	loads  []string
}

func (f *fakeImages) Load(_ context.Context, url string) ([]byte, error) {
	f.loads = append(f.loads, url)
	data, ok := f.images[url]
	if !ok {
		return nil, errors.New("no such image")
	}
	return data, nil
}

func TestProfileService_Profile(t *testing.T) {
	users := newFakeUserStore()
	users.putField("u1", domain.DisplayNameField, json.RawMessage(`"Jordan"`))
	users.putField("u1", domain.UsernameField, json.RawMessage(`"jordan23"`))
	svc := NewProfileService(users, nil)

	p, err := svc.Profile(context.Background(), "u1")

	require.NoError(t, err)
	assert.Equal(t, domain.Profile{UserID: "u1", DisplayName: "Jordan", Username: "jordan23"}, p)
}

func TestProfileService_ProfileErrors(t *testing.T) {
	ctx := context.Background()

	_, err := NewProfileService(nil, nil).Profile(ctx, "u1")
	assert.ErrorIs(t, err, domain.ErrNotImplemented)

	svc := NewProfileService(newFakeUserStore(), nil)
	_, err = svc.Profile(ctx, "")
	assert.ErrorIs(t, err, domain.ErrNoSession)

	_, err = svc.Profile(ctx, "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProfileService_Avatar(t *testing.T) {
	users := newFakeUserStore()
	users.putField("u1", domain.PhotoURLField, json.RawMessage(`"https://img.example/u1.png"`))
	users.putField("u2", domain.DisplayNameField, json.RawMessage(`"No Photo"`))
	images := &fakeImages{images: map[string][]byte{"https://img.example/u1.png": []byte("png")}}
	svc := NewProfileService(users, images)
	ctx := context.Background()

	data, err := svc.Avatar(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []byte("png"), data)

	_, err = svc.Avatar(ctx, "u2")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, []string{"https://img.example/u1.png"}, images.loads)

	_, err = NewProfileService(users, nil).Avatar(ctx, "u1")
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
}

func TestProfileService_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserStore()
	users.putField("u1", domain.PhotoURLField, json.RawMessage(`"https://img.example/old.png"`))
	svc := NewProfileService(users, nil)
	name, username := "  Kim Lee ", "kimlee"

	p, err := svc.UpdateProfile(ctx, "u1", domain.ProfileUpdate{DisplayName: &name, Username: &username})

	require.NoError(t, err)
	assert.Equal(t, domain.Profile{
		UserID:      "u1",
		DisplayName: "Kim Lee",
		Username:    "kimlee",
		PhotoURL:    "https://img.example/old.png",
	}, p)
	assert.Equal(t, []string{domain.DisplayNameField, domain.UsernameField}, users.fieldSets)
}

func TestProfileService_UpdateProfileKeepsFavourites(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserStore()
	users.putFavorites("u1", court("a", "A", 0, 0), court("b", "B", 0, 0))
	manager := NewCourtsManager(nil, users, ManagerConfig{})
	require.NoError(t, manager.HandleSessionEvent(ctx, domain.LoggedIn("u1")))
	svc := NewProfileService(users, nil)
	name := "Kim"

	_, err := svc.UpdateProfile(ctx, "u1", domain.ProfileUpdate{DisplayName: &name})
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, placeIDs(users.storedFavorites("u1")))
	require.NoError(t, manager.FetchFavoriteCourts(ctx))
	assert.Equal(t, []string{"a", "b"}, placeIDs(manager.FavoriteCourts()))
	_, updates, merges := users.counts()
	assert.Zero(t, updates)
	assert.Zero(t, merges)
}

func TestProfileService_UpdateProfileErrors(t *testing.T) {
	ctx := context.Background()
	name, blank := "Kim", " "

	_, err := NewProfileService(nil, nil).UpdateProfile(ctx, "u1", domain.ProfileUpdate{DisplayName: &name})
	assert.ErrorIs(t, err, domain.ErrNotImplemented)

	users := newFakeUserStore()
	svc := NewProfileService(users, nil)

	_, err = svc.UpdateProfile(ctx, "", domain.ProfileUpdate{DisplayName: &name})
	assert.ErrorIs(t, err, domain.ErrNoSession)

	_, err = svc.UpdateProfile(ctx, "u1", domain.ProfileUpdate{DisplayName: &blank})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.UpdateProfile(ctx, "u1", domain.ProfileUpdate{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, users.fieldSets)

	users.fieldErr = domain.ErrNetworkFailure
	_, err = svc.UpdateProfile(ctx, "u1", domain.ProfileUpdate{DisplayName: &name})
	assert.ErrorIs(t, err, domain.ErrNetworkFailure)
	assert.Contains(t, err.Error(), "updating displayName")
}

func TestProfileService_EnsureProfile(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserStore()
	svc := NewProfileService(users, nil)

	p, created, err := svc.EnsureProfile(ctx, "kim")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, domain.Profile{UserID: "kim", DisplayName: domain.DefaultDisplayName, Username: "kim"}, p)

	name := "Kim Lee"
	_, err = svc.UpdateProfile(ctx, "kim", domain.ProfileUpdate{DisplayName: &name})
	require.NoError(t, err)

	p, created, err = svc.EnsureProfile(ctx, "kim")
	require.NoError(t, err)
	assert.False(t, created, "existing profiles are left alone")
	assert.Equal(t, "Kim Lee", p.DisplayName)
}

func TestProfileService_EnsureProfileReadFailure(t *testing.T) {
	users := newFakeUserStore()
	users.setErrors(domain.ErrNetworkFailure, nil, nil)

	_, created, err := NewProfileService(users, nil).EnsureProfile(context.Background(), "kim")

	assert.ErrorIs(t, err, domain.ErrNetworkFailure)
	assert.False(t, created)
	assert.Empty(t, users.fieldSets)
}
