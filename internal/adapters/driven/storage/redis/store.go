// Package redis provides a Redis-backed implementation of driven.UserStore.
//
// Each user document is a hash at courtfinder:user:<id> whose fields hold
// the JSON value of the document's top-level fields.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rdkhare/CourtFinder/internal/core/domain"
	"github.com/rdkhare/CourtFinder/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.UserStore = (*Store)(nil)

// DefaultKeyPrefix namespaces user hashes.
const DefaultKeyPrefix = "courtfinder:user:"

// updateExisting sets a field only when the hash already exists.
var updateExisting = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 0 then
	return 0
end
redis.call("HSET", KEYS[1], ARGV[1], ARGV[2])
return 1
`)

// Store keeps user documents in Redis hashes.
type Store struct {
	client redis.UniversalClient
	prefix string
}

// NewStore connects to the Redis server at url (redis://host:port/db).
func NewStore(url string) (*Store, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	return NewStoreWithClient(redis.NewClient(opt)), nil
}

// NewStoreWithClient wraps an existing client.
func NewStoreWithClient(client redis.UniversalClient) *Store {
	return &Store{client: client, prefix: DefaultKeyPrefix}
}

// Ping checks the server is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: redis ping: %v", domain.ErrNetworkFailure, err)
	}
	return nil
}

// Close closes the client.
func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) key(userID string) string {
	return s.prefix + userID
}

// Get returns the user's document or domain.ErrNotFound.
func (s *Store) Get(ctx context.Context, userID string) (*domain.UserDocument, error) {
	values, err := s.client.HGetAll(ctx, s.key(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: reading user %s: %v", domain.ErrNetworkFailure, userID, err)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: user %s", domain.ErrNotFound, userID)
	}

	doc := &domain.UserDocument{
		UserID: userID,
		Fields: make(map[string]json.RawMessage, len(values)),
	}
	for field, value := range values {
		doc.Fields[field] = json.RawMessage(value)
	}
	return doc, nil
}

// UpdateFavorites replaces favourites on an existing document.
func (s *Store) UpdateFavorites(ctx context.Context, userID string, favorites json.RawMessage) error {
	if !json.Valid(favorites) {
		return fmt.Errorf("%w: favourites are not valid JSON", domain.ErrInvalidInput)
	}

	updated, err := updateExisting.Run(ctx, s.client, []string{s.key(userID)},
		domain.FavoritesField, string(favorites)).Int()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("%w: updating favourites for %s: %v", domain.ErrNetworkFailure, userID, err)
	}
	if updated == 0 {
		return fmt.Errorf("%w: user %s", domain.ErrNotFound, userID)
	}
	return nil
}

// MergeFavorites writes favourites, creating the document if needed.
func (s *Store) MergeFavorites(ctx context.Context, userID string, favorites json.RawMessage) error {
	return s.setField(ctx, userID, domain.FavoritesField, favorites)
}

// SetProfileField writes one profile field, creating the document if needed.
func (s *Store) SetProfileField(ctx context.Context, userID, field string, value json.RawMessage) error {
	if err := domain.ValidateProfileField(field); err != nil {
		return err
	}
	return s.setField(ctx, userID, field, value)
}

func (s *Store) setField(ctx context.Context, userID, field string, value json.RawMessage) error {
	if !json.Valid(value) {
		return fmt.Errorf("%w: %s is not valid JSON", domain.ErrInvalidInput, field)
	}
	if err := s.client.HSet(ctx, s.key(userID), field, string(value)).Err(); err != nil {
		return fmt.Errorf("%w: writing %s for %s: %v", domain.ErrNetworkFailure, field, userID, err)
	}
	return nil
}
