package driving

import (
	"context"

	"github.com/rdkhare/CourtFinder/internal/core/domain"
)

// ProfileService reads and edits profile fields on user documents.
type ProfileService interface {
	// Profile returns the user's profile. domain.ErrNotFound if the user has no document.
	Profile(ctx context.Context, userID string) (domain.Profile, error)

	// Avatar loads the image at the user's photo URL.
	Avatar(ctx context.Context, userID string) ([]byte, error)

	// UpdateProfile writes the set fields of update and returns the result.
	// Favourites are never touched.
	UpdateProfile(ctx context.Context, userID string, update domain.ProfileUpdate) (domain.Profile, error)

	// EnsureProfile creates a default profile when the user has no document.
	// It reports whether one was created.
	EnsureProfile(ctx context.Context, userID string) (domain.Profile, bool, error)
}
