package driven

import (
	"context"
	"encoding/json"

	"github.com/rdkhare/CourtFinder/internal/core/domain"
)

// UserStore persists one document per user.
// Favourites payloads are JSON lists of court records.
type UserStore interface {
	// Get returns the user's document or domain.ErrNotFound.
	Get(ctx context.Context, userID string) (*domain.UserDocument, error)

	// UpdateFavorites replaces the favourites field of an existing document.
	// Other fields are untouched. Returns domain.ErrNotFound if the document is absent.
	UpdateFavorites(ctx context.Context, userID string, favorites json.RawMessage) error

	// MergeFavorites writes the favourites field, creating the document if needed.
	// Other fields are untouched.
	MergeFavorites(ctx context.Context, userID string, favorites json.RawMessage) error

	// SetProfileField writes one profile field (see domain.IsProfileField),
	// creating the document if needed. Other fields, favourites included,
	// are untouched. Any other field name is domain.ErrInvalidInput.
	SetProfileField(ctx context.Context, userID, field string, value json.RawMessage) error
}
