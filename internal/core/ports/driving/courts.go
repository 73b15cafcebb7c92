package driving

import (
	"context"

	"github.com/rdkhare/CourtFinder/internal/core/domain"
)

// CourtsService manages nearby courts and the signed-in user's favourites.
type CourtsService interface {
	// FetchCourtsIfNeeded queries the provider unless the cache is fresh.
	FetchCourtsIfNeeded(ctx context.Context, point domain.Coordinate) error

	// RefreshCourts queries the provider regardless of freshness.
	RefreshCourts(ctx context.Context, point domain.Coordinate) error

	// ClearCache drops all cached courts. Favourites are kept.
	ClearCache()

	// FetchFavoriteCourts reloads favourites from the document store.
	FetchFavoriteCourts(ctx context.Context) error

	// ToggleFavorite adds or removes the court and returns its new membership.
	ToggleFavorite(ctx context.Context, court domain.Court) (bool, error)

	// IsCourtFavorited reports favourites membership for placeID.
	IsCourtFavorited(placeID string) bool

	// IsMaxFavoritesReached reports whether another add would be rejected.
	IsMaxFavoritesReached() bool

	// CleanupDuplicateFavorites rewrites favourites without duplicate places.
	CleanupDuplicateFavorites(ctx context.Context) error

	// HandleSessionEvent applies a login or logout.
	HandleSessionEvent(ctx context.Context, event domain.SessionEvent) error

	// Courts returns the cached courts in provider order.
	Courts() []domain.Court

	// FavoriteCourts returns the favourites sorted by name.
	FavoriteCourts() []domain.Court

	// NearbyCourts returns cached courts nearest first, filtered by name or address.
	NearbyCourts(filter string) []domain.Court

	// CacheState reports cache freshness.
	CacheState() domain.CacheState

	// Snapshot returns the current observable state.
	Snapshot() domain.CourtsSnapshot

	// Subscribe returns the current snapshot and a channel of later ones.
	// Call cancel to stop receiving; the channel is then closed.
	Subscribe() (current domain.CourtsSnapshot, updates <-chan domain.CourtsSnapshot, cancel func())
}
