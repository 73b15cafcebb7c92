package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rdkhare/CourtFinder/internal/core/domain"
)

func readRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{Params: &mcp.ReadResourceParams{URI: uri}}
}

func TestServer_handleFavoritesResource(t *testing.T) {
	courts := &mockCourtsService{snapshot: domain.CourtsSnapshot{
		Favorites: []domain.Court{testCourt("a", "Alpha", 1)},
	}}
	server := newTestServer(t, courts)

	result, err := server.handleFavoritesResource(context.Background(), readRequest("courtfinder://favorites"))

	require.NoError(t, err)
	require.Len(t, result.Contents, 1)
	assert.Equal(t, "application/json", result.Contents[0].MIMEType)

	var decoded []CourtOutput
	require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "a", decoded[0].PlaceID)
}

func TestServer_handleCourtResource(t *testing.T) {
	courts := &mockCourtsService{snapshot: domain.CourtsSnapshot{
		Courts:    []domain.Court{testCourt("a", "Alpha", 1)},
		Favorites: []domain.Court{testCourt("a", "Alpha", 1)},
	}}
	server := newTestServer(t, courts)

	t.Run("found", func(t *testing.T) {
		result, err := server.handleCourtResource(context.Background(), readRequest("courtfinder://courts/a"))

		require.NoError(t, err)
		var decoded CourtOutput
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &decoded))
		assert.Equal(t, "Alpha", decoded.Name)
		assert.True(t, decoded.IsFavorite)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := server.handleCourtResource(context.Background(), readRequest("courtfinder://courts/zzz"))

		assert.Error(t, err)
	})
}

func TestServer_handleProfileResource(t *testing.T) {
	t.Run("signed in", func(t *testing.T) {
		server, err := NewServer(&Ports{
			Courts:  &mockCourtsService{snapshot: domain.CourtsSnapshot{UserID: "u1"}},
			Profile: &mockProfileService{profile: domain.Profile{DisplayName: "Kim"}},
		})
		require.NoError(t, err)

		result, err := server.handleProfileResource(context.Background(), readRequest("courtfinder://profile"))

		require.NoError(t, err)
		assert.Contains(t, result.Contents[0].Text, `"display_name": "Kim"`)
		assert.Contains(t, result.Contents[0].Text, `"user_id": "u1"`)
	})

	t.Run("signed out", func(t *testing.T) {
		server, err := NewServer(&Ports{
			Courts:  &mockCourtsService{},
			Profile: &mockProfileService{},
		})
		require.NoError(t, err)

		_, err = server.handleProfileResource(context.Background(), readRequest("courtfinder://profile"))

		assert.Error(t, err)
	})
}

func TestExtractPlaceID(t *testing.T) {
	tests := []struct {
		uri  string
		want string
	}{
		{"courtfinder://courts/abc", "abc"},
		{"courtfinder://courts/", ""},
		{"courtfinder://courts/a/b", ""},
		{"other://courts/abc", ""},
		{"courtfinder://favorites", ""},
	}

	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			assert.Equal(t, tt.want, extractPlaceID(tt.uri))
		})
	}
}
