package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rdkhare/CourtFinder/internal/core/domain"
	"github.com/rdkhare/CourtFinder/internal/core/ports/driven"
	"github.com/rdkhare/CourtFinder/internal/core/ports/driving"
)

// Ensure ProfileService implements the interface.
var _ driving.ProfileService = (*ProfileService)(nil)

// ProfileService reads and edits profiles in the user store and loads
// avatars through the image cache.
type ProfileService struct {
	users  driven.UserStore
	images driven.ImageCache
}

// NewProfileService creates a profile service. images may be nil.
func NewProfileService(users driven.UserStore, images driven.ImageCache) *ProfileService {
	return &ProfileService{users: users, images: images}
}

// Profile returns the user's profile fields.
func (s *ProfileService) Profile(ctx context.Context, userID string) (domain.Profile, error) {
	if s.users == nil {
		return domain.Profile{}, domain.ErrNotImplemented
	}
	if userID == "" {
		return domain.Profile{}, domain.ErrNoSession
	}
	doc, err := s.users.Get(ctx, userID)
	if err != nil {
		return domain.Profile{}, err
	}
	return domain.ProfileFromDocument(doc), nil
}

// Avatar loads the user's photo.
func (s *ProfileService) Avatar(ctx context.Context, userID string) ([]byte, error) {
	if s.images == nil {
		return nil, domain.ErrNotImplemented
	}
	profile, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile.PhotoURL == "" {
		return nil, fmt.Errorf("%w: %s has no photo", domain.ErrNotFound, userID)
	}
	return s.images.Load(ctx, profile.PhotoURL)
}

// UpdateProfile writes each set field of update. Fields are written one at a
// time in name order; a failure stops at that field.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID string, update domain.ProfileUpdate) (domain.Profile, error) {
	if s.users == nil {
		return domain.Profile{}, domain.ErrNotImplemented
	}
	if userID == "" {
		return domain.Profile{}, domain.ErrNoSession
	}

	update = update.Normalize()
	if err := update.Validate(); err != nil {
		return domain.Profile{}, err
	}

	fields := update.Fields()
	for _, name := range update.FieldNames() {
		value, err := json.Marshal(fields[name])
		if err != nil {
			return domain.Profile{}, fmt.Errorf("encoding %s: %w", name, err)
		}
		if err := s.users.SetProfileField(ctx, userID, name, value); err != nil {
			return domain.Profile{}, fmt.Errorf("updating %s: %w", name, err)
		}
	}
	return s.Profile(ctx, userID)
}

// EnsureProfile creates a profile named DefaultDisplayName with the user id
// as username when the user has no document yet.
func (s *ProfileService) EnsureProfile(ctx context.Context, userID string) (domain.Profile, bool, error) {
	profile, err := s.Profile(ctx, userID)
	if err == nil {
		return profile, false, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return domain.Profile{}, false, err
	}

	name, username, photo := domain.DefaultDisplayName, userID, ""
	profile, err = s.UpdateProfile(ctx, userID, domain.ProfileUpdate{
		DisplayName: &name,
		Username:    &username,
		PhotoURL:    &photo,
	})
	if err != nil {
		return domain.Profile{}, false, fmt.Errorf("creating profile for %s: %w", userID, err)
	}
	return profile, true, nil
}
