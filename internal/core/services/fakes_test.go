package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rdkhare/CourtFinder/internal/core/domain"
)

// fakeClock is a settable time source.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// fakePlaces is a scripted place search.
type fakePlaces struct {
	mu      sync.Mutex
	courts  []domain.Court
	err     error
	calls   int
	started chan struct{}
	release chan struct{}
}

func (f *fakePlaces) SearchNearby(ctx context.Context, _ domain.Coordinate) ([]domain.Court, error) {
	f.mu.Lock()
	f.calls++
	started, release := f.started, f.release
	courts, err := f.courts, f.err
	f.mu.Unlock()

	if started != nil {
		started <- struct{}{}
	}
	if release != nil {
		select {
		case <-release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	return domain.CloneCourts(courts), nil
}

func (f *fakePlaces) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakePlaces) SetError(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

// fakeUserStore keeps documents in memory and can inject failures.
type fakeUserStore struct {
	mu        sync.Mutex
	docs      map[string]map[string]json.RawMessage
	getErr    error
	updateErr error
	mergeErr  error
	fieldErr  error
	gets      int
	updates   int
	merges    int
	fieldSets []string

	// beforeWrite runs outside the lock before each write is applied.
	beforeWrite func()
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{docs: make(map[string]map[string]json.RawMessage)}
}

func (s *fakeUserStore) Get(_ context.Context, userID string) (*domain.UserDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gets++
	if s.getErr != nil {
		return nil, s.getErr
	}
	fields, ok := s.docs[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := make(map[string]json.RawMessage, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	return &domain.UserDocument{UserID: userID, Fields: out}, nil
}

func (s *fakeUserStore) UpdateFavorites(_ context.Context, userID string, favorites json.RawMessage) error {
	s.runBeforeWrite()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updates++
	if s.updateErr != nil {
		return s.updateErr
	}
	fields, ok := s.docs[userID]
	if !ok {
		return fmt.Errorf("user %s: %w", userID, domain.ErrNotFound)
	}
	fields[domain.FavoritesField] = favorites
	return nil
}

func (s *fakeUserStore) MergeFavorites(_ context.Context, userID string, favorites json.RawMessage) error {
	s.runBeforeWrite()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.merges++
	if s.mergeErr != nil {
		return s.mergeErr
	}
	fields, ok := s.docs[userID]
	if !ok {
		fields = make(map[string]json.RawMessage)
		s.docs[userID] = fields
	}
	fields[domain.FavoritesField] = favorites
	return nil
}

func (s *fakeUserStore) SetProfileField(_ context.Context, userID, field string, value json.RawMessage) error {
	if err := domain.ValidateProfileField(field); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fieldErr != nil {
		return s.fieldErr
	}
	s.fieldSets = append(s.fieldSets, field)
	fields, ok := s.docs[userID]
	if !ok {
		fields = make(map[string]json.RawMessage)
		s.docs[userID] = fields
	}
	fields[field] = value
	return nil
}

func (s *fakeUserStore) runBeforeWrite() {
	s.mu.Lock()
	hook := s.beforeWrite
	s.mu.Unlock()
	if hook != nil {
		hook()
	}
}

func (s *fakeUserStore) putField(userID, field string, value json.RawMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fields, ok := s.docs[userID]
	if !ok {
		fields = make(map[string]json.RawMessage)
		s.docs[userID] = fields
	}
	fields[field] = value
}

func (s *fakeUserStore) putFavorites(userID string, courts ...domain.Court) {
	raw, err := json.Marshal(courts)
	if err != nil {
		panic(err)
	}
	s.putField(userID, domain.FavoritesField, raw)
}

func (s *fakeUserStore) storedFavorites(userID string) []domain.Court {
	s.mu.Lock()
	raw, ok := s.docs[userID][domain.FavoritesField]
	s.mu.Unlock()
	if !ok {
		return nil
	}
	courts, err := domain.DecodeFavorites(raw)
	if err != nil {
		panic(err)
	}
	return courts
}

func (s *fakeUserStore) counts() (gets, updates, merges int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gets, s.updates, s.merges
}

func (s *fakeUserStore) setErrors(get, update, merge error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getErr, s.updateErr, s.mergeErr = get, update, merge
}

// court builds a complete record at the given location.
func court(id, name string, lat, lng float64) domain.Court {
	loc := domain.Coordinate{Lat: lat, Lng: lng}
	return domain.Court{
		PlaceID:          id,
		Name:             name,
		FormattedAddress: name + " address",
		Geometry:         domain.Geometry{Location: loc, Viewport: domain.Viewport{Northeast: loc, Southwest: loc}},
		Types:            []string{"point_of_interest"},
	}
}

func placeIDs(courts []domain.Court) []string {
	out := make([]string, len(courts))
	for i := range courts {
		out[i] = courts[i].PlaceID
	}
	return out
}
