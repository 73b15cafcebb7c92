package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/rdkhare/CourtFinder/internal/core/domain"
	"github.com/rdkhare/CourtFinder/internal/core/ports/driven"
	"github.com/rdkhare/CourtFinder/internal/core/ports/driving"
	"github.com/rdkhare/CourtFinder/internal/logger"
)

// Ensure CourtsManager implements the interface.
var _ driving.CourtsService = (*CourtsManager)(nil)

var courtsLog = logger.Component("courts")

// ManagerConfig tunes the court data manager. Zero values take defaults.
type ManagerConfig struct {
	FreshnessWindow time.Duration
	MaxFavorites    int

	// Now replaces time.Now in tests.
	Now func() time.Time
}

// CourtsManager owns the nearby-courts cache and the signed-in user's favourites.
//
// All observable state is guarded by mu and published as one snapshot per
// commit. Network calls run without mu held. favMu linearises favourites
// reads and writes, and the session generation discards results that
// finish after the identity changed.
type CourtsManager struct {
	places       driven.PlaceSearch
	users        driven.UserStore
	window       time.Duration
	maxFavorites int
	now          func() time.Time

	mu         sync.RWMutex
	courts     []domain.Court
	favorites  []domain.Court
	origin     *domain.Coordinate
	lastUpdate time.Time
	userID     string
	generation uint64
	loadedGen  uint64
	version    uint64

	favMu   sync.Mutex
	fetches singleflight.Group
	pub     *snapshotPublisher
}

// NewCourtsManager creates a manager. Either port may be nil, in which case
// the operations that need it return domain.ErrNotImplemented.
func NewCourtsManager(places driven.PlaceSearch, users driven.UserStore, cfg ManagerConfig) *CourtsManager {
	if cfg.FreshnessWindow == 0 {
		cfg.FreshnessWindow = domain.DefaultFreshnessWindow
	}
	if cfg.MaxFavorites <= 0 {
		cfg.MaxFavorites = domain.DefaultMaxFavorites
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &CourtsManager{
		places:       places,
		users:        users,
		window:       cfg.FreshnessWindow,
		maxFavorites: cfg.MaxFavorites,
		now:          cfg.Now,
		generation:   1,
		pub:          newSnapshotPublisher(),
	}
}

// ==================== Courts ====================

// FetchCourtsIfNeeded queries the provider unless the cache is fresh.
func (m *CourtsManager) FetchCourtsIfNeeded(ctx context.Context, point domain.Coordinate) error {
	if state := m.CacheState(); !state.AllowsFetch() {
		courtsLog.Debug("using cached courts near %s", point)
		return nil
	}
	return m.fetchCourts(ctx, point)
}

// RefreshCourts queries the provider regardless of freshness.
func (m *CourtsManager) RefreshCourts(ctx context.Context, point domain.Coordinate) error {
	return m.fetchCourts(ctx, point)
}

func (m *CourtsManager) fetchCourts(ctx context.Context, point domain.Coordinate) error {
	if m.places == nil {
		return domain.ErrNotImplemented
	}
	if err := point.Validate(); err != nil {
		return err
	}

	// The shared search is detached from any one caller: a caller that gives
	// up stops waiting, the others still get the result.
	key := point.String()
	searchCtx := context.WithoutCancel(ctx)
	results := m.fetches.DoChan(key, func() (any, error) {
		courtsLog.Debug("searching courts near %s", key)
		courts, err := m.places.SearchNearby(searchCtx, point)
		if err != nil {
			return nil, err
		}
		m.commitCourts(point, courts)
		courtsLog.Debug("cached %d courts near %s", len(courts), key)
		return nil, nil
	})

	select {
	case res := <-results:
		if res.Err != nil {
			return fmt.Errorf("fetching courts near %s: %w", key, res.Err)
		}
		if res.Shared {
			courtsLog.Debug("joined in-flight search near %s", key)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("fetching courts near %s: %w", key, ctx.Err())
	}
}

func (m *CourtsManager) commitCourts(point domain.Coordinate, courts []domain.Court) {
	annotated := make([]domain.Court, len(courts))
	for i := range courts {
		annotated[i] = courts[i]
		annotated[i].AnnotateDistance(point)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.courts = domain.MarkFavorites(annotated, m.favorites)
	m.origin = &point
	m.lastUpdate = m.now()
	m.publishLocked()
}

// ClearCache drops all cached courts. Favourites are kept.
func (m *CourtsManager) ClearCache() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.courts = nil
	m.origin = nil
	m.lastUpdate = time.Time{}
	m.publishLocked()
	courtsLog.Debug("court cache cleared")
}

// ==================== Favourites ====================

// FetchFavoriteCourts reloads favourites for the signed-in user.
// Read failures clear the local favourites and are returned.
func (m *CourtsManager) FetchFavoriteCourts(ctx context.Context) error {
	m.favMu.Lock()
	defer m.favMu.Unlock()
	_, err := m.loadFavoritesLocked(ctx)
	return err
}

// loadFavoritesLocked must be called with favMu held. It reports how many
// duplicate records the stored list held; the local list never keeps them.
func (m *CourtsManager) loadFavoritesLocked(ctx context.Context) (int, error) {
	if m.users == nil {
		return 0, domain.ErrNotImplemented
	}

	userID, gen := m.identity()
	if userID == "" {
		m.resetFavorites(gen)
		return 0, domain.ErrNoSession
	}

	doc, err := m.users.Get(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		courtsLog.Debug("no user document for %s", userID)
		return 0, m.commitFavorites(gen, nil)
	}
	if err != nil {
		m.resetFavorites(gen)
		return 0, fmt.Errorf("fetching favourites for %s: %w", userID, err)
	}

	raw, ok := doc.Favorites()
	if !ok {
		return 0, m.commitFavorites(gen, nil)
	}

	favs, err := domain.DecodeFavorites(raw)
	if err != nil {
		m.resetFavorites(gen)
		return 0, fmt.Errorf("fetching favourites for %s: %w", userID, err)
	}

	courtsLog.Debug("loaded %d favourites for %s", len(favs), userID)
	normalized := normalizeFavorites(favs)
	return len(favs) - len(normalized), m.commitFavorites(gen, normalized)
}

// ToggleFavorite adds the court if absent and removes it if present,
// deciding by PlaceID. Local state changes only after the store confirms
// the write. The returned bool is the court's new membership.
func (m *CourtsManager) ToggleFavorite(ctx context.Context, court domain.Court) (bool, error) {
	if m.users == nil {
		return false, domain.ErrNotImplemented
	}
	if court.PlaceID == "" {
		return false, fmt.Errorf("%w: court has no place id", domain.ErrInvalidInput)
	}

	m.favMu.Lock()
	defer m.favMu.Unlock()

	userID, gen := m.identity()
	if userID == "" {
		return false, domain.ErrNoSession
	}
	current, loaded, err := m.favoritesFor(gen)
	if err != nil {
		return false, err
	}
	if !loaded {
		if _, err := m.loadFavoritesLocked(ctx); err != nil {
			return false, err
		}
		if current, _, err = m.favoritesFor(gen); err != nil {
			return false, err
		}
	}

	if idx := domain.IndexOfCourt(current, court.PlaceID); idx >= 0 {
		updated := make([]domain.Court, 0, len(current)-1)
		updated = append(updated, current[:idx]...)
		updated = append(updated, current[idx+1:]...)

		if err := m.writeFavorites(ctx, userID, updated, false); err != nil {
			return true, fmt.Errorf("removing favourite %s: %w", court.PlaceID, err)
		}
		if err := m.commitFavorites(gen, updated); err != nil {
			return false, err
		}
		courtsLog.Debug("removed favourite %s for %s", court.PlaceID, userID)
		return false, nil
	}

	if len(current) >= m.maxFavorites {
		return false, domain.ErrCapacityExceeded
	}

	added := court
	added.IsFavorite = true
	updated := domain.DedupeAndSort(append(current, added))

	if err := m.writeFavorites(ctx, userID, updated, true); err != nil {
		return false, fmt.Errorf("adding favourite %s: %w", court.PlaceID, err)
	}
	if err := m.commitFavorites(gen, updated); err != nil {
		return false, err
	}
	courtsLog.Debug("added favourite %s for %s", court.PlaceID, userID)
	return true, nil
}

// CleanupDuplicateFavorites removes repeated places from the favourites.
// Both the local list and the stored list are checked, since lists written
// by older clients may hold duplicates that loading already hid.
func (m *CourtsManager) CleanupDuplicateFavorites(ctx context.Context) error {
	if m.users == nil {
		return domain.ErrNotImplemented
	}

	m.favMu.Lock()
	defer m.favMu.Unlock()

	userID, gen := m.identity()
	if userID == "" {
		return domain.ErrNoSession
	}

	local, _, err := m.favoritesFor(gen)
	if err != nil {
		return err
	}
	stored, err := m.storedFavorites(ctx, userID)
	if err != nil {
		if !domain.HasDuplicates(local) {
			courtsLog.Warn("reading favourites for cleanup: %v", err)
			return nil
		}
		stored = nil
	}

	base := local
	switch {
	case domain.HasDuplicates(stored):
		base = stored
	case !domain.HasDuplicates(local):
		courtsLog.Debug("no duplicate favourites for %s", userID)
		return nil
	}

	cleaned := normalizeFavorites(base)
	if err := m.writeFavorites(ctx, userID, cleaned, false); err != nil {
		return fmt.Errorf("writing cleaned favourites: %w", err)
	}
	if err := m.commitFavorites(gen, cleaned); err != nil {
		return err
	}
	courtsLog.Info("removed %d duplicate favourites for %s", len(base)-len(cleaned), userID)
	return nil
}

func (m *CourtsManager) storedFavorites(ctx context.Context, userID string) ([]domain.Court, error) {
	doc, err := m.users.Get(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	raw, ok := doc.Favorites()
	if !ok {
		return nil, nil
	}
	return domain.DecodeFavorites(raw)
}

func (m *CourtsManager) writeFavorites(ctx context.Context, userID string, favs []domain.Court, merge bool) error {
	payload, err := domain.EncodeFavorites(favs)
	if err != nil {
		return err
	}
	if merge {
		return m.users.MergeFavorites(ctx, userID, payload)
	}
	return m.users.UpdateFavorites(ctx, userID, payload)
}

// IsCourtFavorited reports favourites membership for placeID.
func (m *CourtsManager) IsCourtFavorited(placeID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return domain.ContainsCourt(m.favorites, placeID)
}

// IsMaxFavoritesReached reports whether another add would be rejected.
func (m *CourtsManager) IsMaxFavoritesReached() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.favorites) >= m.maxFavorites
}

// ==================== Session ====================

// HandleSessionEvent applies a login or logout.
// A login with a new identity drops the previous user's favourites and
// loads the new user's; a repeated login for the same identity is ignored.
func (m *CourtsManager) HandleSessionEvent(ctx context.Context, event domain.SessionEvent) error {
	if err := event.Validate(); err != nil {
		return err
	}

	if event.Kind == domain.SessionLoggedOut {
		m.switchIdentity("")
		courtsLog.Debug("session ended, favourites cleared")
		return nil
	}

	if !m.switchIdentity(event.UserID) {
		return nil
	}
	courtsLog.Debug("session started for %s", event.UserID)

	m.favMu.Lock()
	defer m.favMu.Unlock()

	duplicates, err := m.loadFavoritesLocked(ctx)
	if err != nil {
		return err
	}
	if duplicates > 0 {
		m.sweepDuplicatesLocked(ctx, duplicates)
	}
	return nil
}

// sweepDuplicatesLocked rewrites the stored favourites with the deduplicated
// list just loaded. Failures are logged; the local list is already clean.
// Must be called with favMu held.
func (m *CourtsManager) sweepDuplicatesLocked(ctx context.Context, duplicates int) {
	userID, gen := m.identity()
	current, _, err := m.favoritesFor(gen)
	if err != nil {
		return
	}
	if err := m.writeFavorites(ctx, userID, current, false); err != nil {
		courtsLog.Warn("removing %d duplicate favourites for %s: %v", duplicates, userID, err)
		return
	}
	courtsLog.Info("removed %d duplicate favourites for %s", duplicates, userID)
}

// switchIdentity installs userID and reports whether it changed.
func (m *CourtsManager) switchIdentity(userID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.userID == userID {
		return false
	}
	m.userID = userID
	m.generation++
	m.favorites = nil
	m.loadedGen = 0
	m.courts = domain.MarkFavorites(m.courts, nil)
	m.publishLocked()
	return true
}

func (m *CourtsManager) identity() (string, uint64) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.userID, m.generation
}

// favoritesFor returns the favourites held for session generation gen and
// whether they were loaded from the store for it.
func (m *CourtsManager) favoritesFor(gen uint64) ([]domain.Court, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if gen != m.generation {
		return nil, false, domain.ErrSessionChanged
	}
	return domain.CloneCourts(m.favorites), m.loadedGen == gen, nil
}

// commitFavorites installs favs for session generation gen.
func (m *CourtsManager) commitFavorites(gen uint64, favs []domain.Court) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if gen != m.generation {
		return domain.ErrSessionChanged
	}
	m.favorites = favs
	m.loadedGen = gen
	m.courts = domain.MarkFavorites(m.courts, favs)
	m.publishLocked()
	return nil
}

// resetFavorites clears favourites without marking them loaded, so the next
// toggle reads the store again instead of overwriting it.
func (m *CourtsManager) resetFavorites(gen uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if gen != m.generation {
		return
	}
	m.favorites = nil
	m.loadedGen = 0
	m.courts = domain.MarkFavorites(m.courts, nil)
	m.publishLocked()
}

func normalizeFavorites(favs []domain.Court) []domain.Court {
	out := domain.DedupeAndSort(favs)
	for i := range out {
		out[i].IsFavorite = true
	}
	return out
}

// ==================== Views ====================

// Courts returns the cached courts in provider order.
func (m *CourtsManager) Courts() []domain.Court {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return domain.CloneCourts(m.courts)
}

// FavoriteCourts returns the favourites sorted by name.
func (m *CourtsManager) FavoriteCourts() []domain.Court {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return domain.CloneCourts(m.favorites)
}

// NearbyCourts returns cached courts nearest first, filtered by name or address.
func (m *CourtsManager) NearbyCourts(filter string) []domain.Court {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return domain.SortByDistance(domain.FilterCourts(m.courts, filter))
}

// CacheState reports cache freshness.
func (m *CourtsManager) CacheState() domain.CacheState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return domain.CacheStateAt(m.lastUpdate, m.now(), m.window)
}

// Snapshot returns the current observable state.
func (m *CourtsManager) Snapshot() domain.CourtsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshotLocked()
}

// Subscribe returns the current snapshot and a channel of later ones.
// Slow subscribers only ever see the latest snapshot.
func (m *CourtsManager) Subscribe() (domain.CourtsSnapshot, <-chan domain.CourtsSnapshot, func()) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ch := m.pub.subscribe()
	var once sync.Once
	cancel := func() {
		once.Do(func() { m.pub.unsubscribe(id) })
	}
	return m.snapshotLocked(), ch, cancel
}

func (m *CourtsManager) snapshotLocked() domain.CourtsSnapshot {
	snap := domain.CourtsSnapshot{
		Courts:      domain.CloneCourts(m.courts),
		Favorites:   domain.CloneCourts(m.favorites),
		UserID:      m.userID,
		LastUpdated: m.lastUpdate,
		Version:     m.version,
	}
	if m.origin != nil {
		origin := *m.origin
		snap.Origin = &origin
	}
	return snap
}

// publishLocked must be called with mu held for writing.
func (m *CourtsManager) publishLocked() {
	m.version++
	m.pub.publish(m.snapshotLocked())
}
