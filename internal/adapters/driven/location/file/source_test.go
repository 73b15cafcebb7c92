package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rdkhare/CourtFinder/internal/core/domain"
)

func nextPoint(t *testing.T, ch <-chan domain.Coordinate) domain.Coordinate {
	t.Helper()
	select {
	case p, ok := <-ch:
		require.True(t, ok, "channel closed")
		return p
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for location")
		return domain.Coordinate{}
	}
}

func TestSource_SetAndCurrent(t *testing.T) {
	src := New(filepath.Join(t.TempDir(), "location"))

	_, ok, err := src.Current()
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, src.Set(domain.Coordinate{Lat: 40.5, Lng: -73.25}))

	point, ok, err := src.Current()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, domain.Coordinate{Lat: 40.5, Lng: -73.25}, point)
}

func TestSource_SetRejectsInvalid(t *testing.T) {
	src := New(filepath.Join(t.TempDir(), "location"))

	assert.ErrorIs(t, src.Set(domain.Coordinate{Lat: 91, Lng: 0}), domain.ErrInvalidInput)
}

func TestSource_CurrentUnparseable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "location")
	require.NoError(t, os.WriteFile(path, []byte("somewhere"), 0600))

	_, _, err := New(path).Current()

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSource_Updates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "location")
	src := New(path)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates, err := src.Updates(ctx)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("not a point"), 0600))
	require.NoError(t, src.Set(domain.Coordinate{Lat: 1, Lng: 2}))

	assert.Equal(t, domain.Coordinate{Lat: 1, Lng: 2}, nextPoint(t, updates))

	require.NoError(t, src.Set(domain.Coordinate{Lat: 3, Lng: 4}))
	assert.Equal(t, domain.Coordinate{Lat: 3, Lng: 4}, nextPoint(t, updates))
}
