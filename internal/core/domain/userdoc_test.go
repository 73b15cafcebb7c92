package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserDocument_Favorites(t *testing.T) {
	var nilDoc *UserDocument
	_, ok := nilDoc.Favorites()
	assert.False(t, ok)

	doc := &UserDocument{UserID: "u1", Fields: map[string]json.RawMessage{}}
	_, ok = doc.Favorites()
	assert.False(t, ok, "missing field")

	doc.Fields[FavoritesField] = json.RawMessage("null")
	_, ok = doc.Favorites()
	assert.False(t, ok, "null field")

	doc.Fields[FavoritesField] = json.RawMessage("[]")
	raw, ok := doc.Favorites()
	assert.True(t, ok)
	assert.JSONEq(t, "[]", string(raw))
}

func TestUserDocument_String(t *testing.T) {
	doc := &UserDocument{Fields: map[string]json.RawMessage{
		PhotoURLField: json.RawMessage(`"https://example.com/a.png"`),
		"count":       json.RawMessage(`3`),
	}}

	url, ok := doc.String(PhotoURLField)
	assert.True(t, ok)
	assert.Equal(t, "https://example.com/a.png", url)

	_, ok = doc.String("count")
	assert.False(t, ok)

	_, ok = doc.String("missing")
	assert.False(t, ok)
}

func TestEncodeDecodeFavorites(t *testing.T) {
	c := sampleCourt()
	c.IsFavorite = true
	c.AnnotateDistance(Coordinate{Lat: 40, Lng: -73})

	raw, err := EncodeFavorites([]Court{c})
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "distance")
	assert.NotContains(t, string(raw), "is_favorite")

	decoded, err := DecodeFavorites(raw)
	require.NoError(t, err)
	require.Len(t, decoded, 1)
	assert.Equal(t, c.PlaceID, decoded[0].PlaceID)
	assert.False(t, decoded[0].IsFavorite, "membership is derived, not stored")
	assert.Nil(t, decoded[0].DistanceMiles)
}

func TestEncodeFavorites_NilIsEmptyList(t *testing.T) {
	raw, err := EncodeFavorites(nil)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(raw))
}

func TestDecodeFavorites_Failures(t *testing.T) {
	tests := map[string]string{
		"not json":        `{{`,
		"not a list":      `{"place_id": "x"}`,
		"missing name":    `[{"place_id": "x", "formatted_address": "", "geometry": {}, "types": []}]`,
		"element not obj": `["x"]`,
	}

	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeFavorites(json.RawMessage(raw))
			assert.ErrorIs(t, err, ErrDecodeFailure)
		})
	}
}
