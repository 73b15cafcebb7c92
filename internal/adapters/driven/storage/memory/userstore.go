package memory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rdkhare/CourtFinder/internal/core/domain"
	"github.com/rdkhare/CourtFinder/internal/core/ports/driven"
)

// Ensure UserStore implements the interface.
var _ driven.UserStore = (*UserStore)(nil)

// UserStore is an in-memory implementation of driven.UserStore.
type UserStore struct {
	mu   sync.RWMutex
	docs map[string]map[string]json.RawMessage
}

// NewUserStore creates a new in-memory user store.
func NewUserStore() *UserStore {
	return &UserStore{
		docs: make(map[string]map[string]json.RawMessage),
	}
}

// Get returns a copy of the user's document.
func (s *UserStore) Get(_ context.Context, userID string) (*domain.UserDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	fields, ok := s.docs[userID]
	if !ok {
		return nil, fmt.Errorf("%w: user %s", domain.ErrNotFound, userID)
	}

	doc := &domain.UserDocument{
		UserID: userID,
		Fields: make(map[string]json.RawMessage, len(fields)),
	}
	for k, v := range fields {
		doc.Fields[k] = bytes.Clone(v)
	}
	return doc, nil
}

// UpdateFavorites replaces favourites on an existing document.
func (s *UserStore) UpdateFavorites(_ context.Context, userID string, favorites json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fields, ok := s.docs[userID]
	if !ok {
		return fmt.Errorf("%w: user %s", domain.ErrNotFound, userID)
	}
	fields[domain.FavoritesField] = bytes.Clone(favorites)
	return nil
}

// MergeFavorites writes favourites, creating the document if needed.
func (s *UserStore) MergeFavorites(_ context.Context, userID string, favorites json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.fieldsLocked(userID)[domain.FavoritesField] = bytes.Clone(favorites)
	return nil
}

// SetProfileField writes one profile field, creating the document if needed.
func (s *UserStore) SetProfileField(_ context.Context, userID, field string, value json.RawMessage) error {
	if err := domain.ValidateProfileField(field); err != nil {
		return err
	}
	if !json.Valid(value) {
		return fmt.Errorf("%w: %s is not valid JSON", domain.ErrInvalidInput, field)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.fieldsLocked(userID)[field] = bytes.Clone(value)
	return nil
}

func (s *UserStore) fieldsLocked(userID string) map[string]json.RawMessage {
	fields, ok := s.docs[userID]
	if !ok {
		fields = make(map[string]json.RawMessage)
		s.docs[userID] = fields
	}
	return fields
}
