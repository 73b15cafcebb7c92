package mcp

import (
	"context"

	"github.com/rdkhare/CourtFinder/internal/core/domain"
)

// mockCourtsService is a mock implementation of driving.CourtsService.
type mockCourtsService struct {
	snapshot domain.CourtsSnapshot
	err      error

	fetchedAt   *domain.Coordinate
	refreshedAt *domain.Coordinate
	toggled     []string
	cleaned     bool
	cleared     bool
}

func (m *mockCourtsService) FetchCourtsIfNeeded(_ context.Context, point domain.Coordinate) error {
	m.fetchedAt = &point
	return m.err
}

func (m *mockCourtsService) RefreshCourts(_ context.Context, point domain.Coordinate) error {
	m.refreshedAt = &point
	return m.err
}

func (m *mockCourtsService) ClearCache() {
	m.cleared = true
	m.snapshot.Courts = nil
}

func (m *mockCourtsService) FetchFavoriteCourts(context.Context) error {
	return m.err
}

func (m *mockCourtsService) ToggleFavorite(_ context.Context, court domain.Court) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	m.toggled = append(m.toggled, court.PlaceID)
	if i := domain.IndexOfCourt(m.snapshot.Favorites, court.PlaceID); i >= 0 {
		m.snapshot.Favorites = append(m.snapshot.Favorites[:i], m.snapshot.Favorites[i+1:]...)
		return false, nil
	}
	m.snapshot.Favorites = append(m.snapshot.Favorites, court)
	return true, nil
}

func (m *mockCourtsService) IsCourtFavorited(placeID string) bool {
	return m.snapshot.IsFavorite(placeID)
}

func (m *mockCourtsService) IsMaxFavoritesReached() bool {
	return false
}

func (m *mockCourtsService) CleanupDuplicateFavorites(context.Context) error {
	m.cleaned = true
	return m.err
}

func (m *mockCourtsService) HandleSessionEvent(context.Context, domain.SessionEvent) error {
	return m.err
}

func (m *mockCourtsService) Courts() []domain.Court {
	return m.snapshot.Courts
}

func (m *mockCourtsService) FavoriteCourts() []domain.Court {
	return domain.DedupeAndSort(m.snapshot.Favorites)
}

func (m *mockCourtsService) NearbyCourts(filter string) []domain.Court {
	return m.snapshot.Nearby(filter)
}

func (m *mockCourtsService) CacheState() domain.CacheState {
	return domain.CacheEmpty
}

func (m *mockCourtsService) Snapshot() domain.CourtsSnapshot {
	return m.snapshot
}

func (m *mockCourtsService) Subscribe() (domain.CourtsSnapshot, <-chan domain.CourtsSnapshot, func()) {
	ch := make(chan domain.CourtsSnapshot)
	return m.snapshot, ch, func() { close(ch) }
}

// mockProfileService is a mock implementation of driving.ProfileService.
type mockProfileService struct {
	profile domain.Profile
	err     error
	updates []domain.ProfileUpdate
}

func (m *mockProfileService) Profile(_ context.Context, userID string) (domain.Profile, error) {
	p := m.profile
	p.UserID = userID
	return p, m.err
}

func (m *mockProfileService) Avatar(context.Context, string) ([]byte, error) {
	return nil, m.err
}

func (m *mockProfileService) UpdateProfile(ctx context.Context, userID string, update domain.ProfileUpdate) (domain.Profile, error) {
	if m.err != nil {
		return domain.Profile{}, m.err
	}
	m.updates = append(m.updates, update)
	if update.DisplayName != nil {
		m.profile.DisplayName = *update.DisplayName
	}
	if update.Username != nil {
		m.profile.Username = *update.Username
	}
	if update.PhotoURL != nil {
		m.profile.PhotoURL = *update.PhotoURL
	}
	return m.Profile(ctx, userID)
}

func (m *mockProfileService) EnsureProfile(ctx context.Context, userID string) (domain.Profile, bool, error) {
	p, err := m.Profile(ctx, userID)
	return p, false, err
}

func testCourt(id, name string, miles float64) domain.Court {
	c := domain.Court{
		PlaceID:          id,
		Name:             name,
		FormattedAddress: name + " St",
		Types:            []string{"park"},
	}
	c.DistanceMiles = &miles
	return c
}
