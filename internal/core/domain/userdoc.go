package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// FavoritesField is the user document field holding the favourites list.
const FavoritesField = "favoriteCourts"

// Profile fields kept alongside favourites on the user document.
const (
	DisplayNameField = "displayName"
	UsernameField    = "username"
	PhotoURLField    = "photoURL"
)

// UserDocument is the remote per-user document.
// Fields maps each top-level field name to its raw JSON value.
type UserDocument struct {
	UserID string
	Fields map[string]json.RawMessage
}

// Favorites returns the raw favourites value and whether the field is present.
// A JSON null counts as absent.
func (d *UserDocument) Favorites() (json.RawMessage, bool) {
	if d == nil {
		return nil, false
	}
	raw, ok := d.Fields[FavoritesField]
	if !ok || len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, false
	}
	return raw, true
}

// String returns a string-valued field.
func (d *UserDocument) String(field string) (string, bool) {
	if d == nil {
		return "", false
	}
	raw, ok := d.Fields[field]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// EncodeFavorites serialises courts for storage. DistanceMiles is never written.
func EncodeFavorites(courts []Court) (json.RawMessage, error) {
	if courts == nil {
		courts = []Court{}
	}
	data, err := json.Marshal(courts)
	if err != nil {
		return nil, fmt.Errorf("encoding favourites: %w", err)
	}
	return data, nil
}

// DecodeFavorites parses a stored favourites list.
// Every element must be a complete court record.
func DecodeFavorites(raw json.RawMessage) ([]Court, error) {
	var courts []Court
	if err := json.Unmarshal(raw, &courts); err != nil {
		if errors.Is(err, ErrDecodeFailure) {
			return nil, fmt.Errorf("decoding favourites: %w", err)
		}
		return nil, fmt.Errorf("%w: favourites: %v", ErrDecodeFailure, err)
	}
	return courts, nil
}
