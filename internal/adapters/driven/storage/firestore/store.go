// Package firestore provides a Cloud Firestore implementation of driven.UserStore.
//
// User documents live in a collection ("users" by default) keyed by user id.
// Favourites are stored as an array of maps so the records stay readable
// from the Firestore console and other clients.
package firestore

import (
	"context"
	"encoding/json"
	"fmt"

	"cloud.google.com/go/firestore"
	"golang.org/x/oauth2"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/rdkhare/CourtFinder/internal/core/domain"
	"github.com/rdkhare/CourtFinder/internal/core/ports/driven"
	"github.com/rdkhare/CourtFinder/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.UserStore = (*Store)(nil)

var storeLog = logger.Component("firestore")

// Config selects the project and credentials.
type Config struct {
	ProjectID  string
	Collection string

	// CredentialsFile is a service account JSON key. Optional.
	CredentialsFile string

	// AccessToken is a pre-minted OAuth token, used when no credentials file
	// is given. Optional; application default credentials apply otherwise.
	AccessToken string
}

// ClientOptions turns the credential settings into client options.
func (c Config) ClientOptions() []option.ClientOption {
	switch {
	case c.CredentialsFile != "":
		return []option.ClientOption{option.WithCredentialsFile(c.CredentialsFile)}
	case c.AccessToken != "":
		return []option.ClientOption{option.WithTokenSource(
			oauth2.StaticTokenSource(&oauth2.Token{AccessToken: c.AccessToken}),
		)}
	default:
		return nil
	}
}

// Store keeps user documents in Firestore.
type Store struct {
	client     *firestore.Client
	collection string
}

// NewStore opens a Firestore client for cfg.ProjectID.
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.ProjectID == "" {
		return nil, fmt.Errorf("%w: firestore project id is required", domain.ErrInvalidInput)
	}

	client, err := firestore.NewClient(ctx, cfg.ProjectID, cfg.ClientOptions()...)
	if err != nil {
		return nil, fmt.Errorf("creating firestore client: %w", err)
	}
	return NewStoreWithClient(client, cfg.Collection), nil
}

// NewStoreWithClient wraps an existing client. An empty collection means "users".
func NewStoreWithClient(client *firestore.Client, collection string) *Store {
	if collection == "" {
		collection = domain.DefaultUsersCollection
	}
	return &Store{client: client, collection: collection}
}

// Close closes the client.
func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) doc(userID string) *firestore.DocumentRef {
	return s.client.Collection(s.collection).Doc(userID)
}

// Get returns the user's document or domain.ErrNotFound.
func (s *Store) Get(ctx context.Context, userID string) (*domain.UserDocument, error) {
	snap, err := s.doc(userID).Get(ctx)
	if err != nil {
		return nil, mapError(err, "reading user "+userID)
	}
	return &domain.UserDocument{
		UserID: userID,
		Fields: fieldsFromData(snap.Data()),
	}, nil
}

// UpdateFavorites replaces favourites on an existing document.
func (s *Store) UpdateFavorites(ctx context.Context, userID string, favorites json.RawMessage) error {
	value, err := toFirestoreValue(favorites)
	if err != nil {
		return err
	}
	_, err = s.doc(userID).Update(ctx, []firestore.Update{
		{Path: domain.FavoritesField, Value: value},
	})
	if err != nil {
		return mapError(err, "updating favourites for "+userID)
	}
	return nil
}

// MergeFavorites writes favourites, creating the document if needed.
func (s *Store) MergeFavorites(ctx context.Context, userID string, favorites json.RawMessage) error {
	value, err := toFirestoreValue(favorites)
	if err != nil {
		return err
	}
	_, err = s.doc(userID).Set(ctx, map[string]any{domain.FavoritesField: value}, firestore.MergeAll)
	if err != nil {
		return mapError(err, "merging favourites for "+userID)
	}
	return nil
}

// SetProfileField writes one profile field, creating the document if needed.
func (s *Store) SetProfileField(ctx context.Context, userID, field string, value json.RawMessage) error {
	if err := domain.ValidateProfileField(field); err != nil {
		return err
	}
	decoded, err := toFirestoreValue(value)
	if err != nil {
		return err
	}
	_, err = s.doc(userID).Set(ctx, map[string]any{field: decoded}, firestore.MergeAll)
	if err != nil {
		return mapError(err, "writing "+field+" for "+userID)
	}
	return nil
}

func mapError(err error, action string) error {
	switch status.Code(err) {
	case codes.NotFound:
		return fmt.Errorf("%w: %s", domain.ErrNotFound, action)
	case codes.InvalidArgument, codes.FailedPrecondition:
		return fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, action, err)
	default:
		return fmt.Errorf("%w: %s: %v", domain.ErrNetworkFailure, action, err)
	}
}

// toFirestoreValue decodes JSON into maps, slices and scalars the client can encode.
func toFirestoreValue(raw json.RawMessage) (any, error) {
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, fmt.Errorf("%w: value is not valid JSON: %v", domain.ErrInvalidInput, err)
	}
	return value, nil
}

// fieldsFromData re-encodes document fields as JSON. Fields holding values
// with no JSON form are dropped.
func fieldsFromData(data map[string]any) map[string]json.RawMessage {
	fields := make(map[string]json.RawMessage, len(data))
	for name, value := range data {
		raw, err := json.Marshal(value)
		if err != nil {
			storeLog.Warn("skipping field %s: %v", name, err)
			continue
		}
		fields[name] = raw
	}
	return fields
}
