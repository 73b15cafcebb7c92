package tui

import (
	"context"
	"sync"

	"github.com/rdkhare/CourtFinder/internal/core/domain"
)

// mockCourtsService implements driving.CourtsService for testing.
type mockCourtsService struct {
	mu          sync.Mutex
	snapshot    domain.CourtsSnapshot
	updates     chan domain.CourtsSnapshot
	toggleErr   error
	refreshErr  error
	cleanupErr  error
	refreshedAt *domain.Coordinate
	toggled     []string
	cleared     bool
	cancelled   bool
}

func newMockCourts(snap domain.CourtsSnapshot) *mockCourtsService {
	return &mockCourtsService{snapshot: snap, updates: make(chan domain.CourtsSnapshot, 1)}
}

func (m *mockCourtsService) FetchCourtsIfNeeded(context.Context, domain.Coordinate) error {
	return nil
}

func (m *mockCourtsService) RefreshCourts(_ context.Context, point domain.Coordinate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refreshedAt = &point
	return m.refreshErr
}

func (m *mockCourtsService) ClearCache() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cleared = true
}

func (m *mockCourtsService) FetchFavoriteCourts(context.Context) error { return nil }

func (m *mockCourtsService) ToggleFavorite(_ context.Context, court domain.Court) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.toggleErr != nil {
		return false, m.toggleErr
	}
	m.toggled = append(m.toggled, court.PlaceID)
	return !m.snapshot.IsFavorite(court.PlaceID), nil
}

func (m *mockCourtsService) IsCourtFavorited(placeID string) bool {
	return m.snapshot.IsFavorite(placeID)
}

func (m *mockCourtsService) IsMaxFavoritesReached() bool { return false }

func (m *mockCourtsService) CleanupDuplicateFavorites(context.Context) error {
	return m.cleanupErr
}

func (m *mockCourtsService) HandleSessionEvent(context.Context, domain.SessionEvent) error {
	return nil
}

func (m *mockCourtsService) Courts() []domain.Court { return m.snapshot.Courts }

func (m *mockCourtsService) FavoriteCourts() []domain.Court { return m.snapshot.Favorites }

func (m *mockCourtsService) NearbyCourts(filter string) []domain.Court {
	return m.snapshot.Nearby(filter)
}

func (m *mockCourtsService) CacheState() domain.CacheState { return domain.CacheFresh }

func (m *mockCourtsService) Snapshot() domain.CourtsSnapshot { return m.snapshot }

func (m *mockCourtsService) Subscribe() (domain.CourtsSnapshot, <-chan domain.CourtsSnapshot, func()) {
	return m.snapshot, m.updates, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.cancelled = true
	}
}

// mockProfileService implements driving.ProfileService for testing.
type mockProfileService struct {
	name string
	err  error
}

func (m *mockProfileService) Profile(_ context.Context, userID string) (domain.Profile, error) {
	return domain.Profile{UserID: userID, DisplayName: m.name}, m.err
}

func (m *mockProfileService) Avatar(context.Context, string) ([]byte, error) {
	return nil, m.err
}

func (m *mockProfileService) UpdateProfile(ctx context.Context, userID string, _ domain.ProfileUpdate) (domain.Profile, error) {
	return m.Profile(ctx, userID)
}

func (m *mockProfileService) EnsureProfile(ctx context.Context, userID string) (domain.Profile, bool, error) {
	p, err := m.Profile(ctx, userID)
	return p, false, err
}

func testCourt(id, name string, miles float64) domain.Court {
	return domain.Court{
		PlaceID:          id,
		Name:             name,
		FormattedAddress: name + " Rd",
		DistanceMiles:    &miles,
	}
}
