package domain

import (
	"fmt"
	"time"
)

const unknownDescription = "Unknown"

// Defaults for the court data manager.
const (
	// DefaultFreshnessWindow is how long fetched courts are served from cache.
	DefaultFreshnessWindow = 30 * time.Minute

	// DefaultMaxFavorites caps the favourites list.
	DefaultMaxFavorites = 15

	// DefaultSearchQuery is the implicit text query sent to the places provider.
	DefaultSearchQuery = "basketball courts"

	// DefaultUsersCollection is the document store collection holding user documents.
	DefaultUsersCollection = "users"
)

// SearchProvider selects the search gateway implementation.
type SearchProvider string

// Available search providers.
const (
	// SearchProviderGoogle queries the Google Places text search API.
	SearchProviderGoogle SearchProvider = "google"

	// SearchProviderElastic queries a self-hosted Elasticsearch geo index.
	SearchProviderElastic SearchProvider = "elastic"
)

// IsValid returns true if the provider is recognised.
func (p SearchProvider) IsValid() bool {
	switch p {
	case SearchProviderGoogle, SearchProviderElastic:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (p SearchProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p SearchProvider) Description() string {
	switch p {
	case SearchProviderGoogle:
		return "Google Places text search"
	case SearchProviderElastic:
		return "Elasticsearch geo index"
	default:
		return unknownDescription
	}
}

// StoreBackend selects the user document store implementation.
type StoreBackend string

// Available store backends.
const (
	// StoreBackendMemory keeps documents in process memory.
	StoreBackendMemory StoreBackend = "memory"

	// StoreBackendSQLite keeps documents in a local SQLite database.
	StoreBackendSQLite StoreBackend = "sqlite"

	// StoreBackendRedis keeps documents as Redis hashes.
	StoreBackendRedis StoreBackend = "redis"

	// StoreBackendFirestore keeps documents in Cloud Firestore.
	StoreBackendFirestore StoreBackend = "firestore"
)

// IsValid returns true if the backend is recognised.
func (b StoreBackend) IsValid() bool {
	switch b {
	case StoreBackendMemory, StoreBackendSQLite, StoreBackendRedis, StoreBackendFirestore:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (b StoreBackend) String() string {
	return string(b)
}

// SessionSourceKind selects where identity changes come from.
type SessionSourceKind string

// Available session sources.
const (
	// SessionSourceFile watches a session file containing the user id.
	SessionSourceFile SessionSourceKind = "file"

	// SessionSourceKafka consumes login/logout events from a Kafka topic.
	SessionSourceKafka SessionSourceKind = "kafka"
)

// IsValid returns true if the source kind is recognised.
func (k SessionSourceKind) IsValid() bool {
	return k == SessionSourceFile || k == SessionSourceKafka
}

// String returns the string representation.
func (k SessionSourceKind) String() string {
	return string(k)
}

// SearchSettings configures the search gateway.
type SearchSettings struct {
	Provider     SearchProvider
	Query        string
	RadiusMeters int

	GoogleAPIKey            string
	GoogleBaseURL           string
	GoogleRequestsPerSecond int

	ElasticURL   string
	ElasticIndex string
}

// StoreSettings configures the user document store.
type StoreSettings struct {
	Backend StoreBackend

	SQLiteDir string
	RedisURL  string

	FirestoreProjectID       string
	FirestoreCollection      string
	FirestoreCredentialsFile string
}

// CacheSettings configures court cache freshness.
type CacheSettings struct {
	FreshnessWindow time.Duration
}

// FavoritesSettings configures the favourites list.
type FavoritesSettings struct {
	Max int
}

// SessionSettings configures the session identity source.
type SessionSettings struct {
	Source       SessionSourceKind
	File         string
	KafkaBrokers []string
	KafkaTopic   string
	KafkaGroupID string
}

// LocationSettings configures the location source.
type LocationSettings struct {
	File string
}

// AvatarSettings configures the avatar image cache.
type AvatarSettings struct {
	MaxEntries int
}

// AppSettings holds all user-configurable settings.
type AppSettings struct {
	Search    SearchSettings
	Store     StoreSettings
	Cache     CacheSettings
	Favorites FavoritesSettings
	Session   SessionSettings
	Location  LocationSettings
	Avatar    AvatarSettings
}

// DefaultAppSettings returns the default configuration.
// File paths are left empty; adapters resolve them under ~/.courtfinder.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Search: SearchSettings{
			Provider:                SearchProviderGoogle,
			Query:                   DefaultSearchQuery,
			GoogleRequestsPerSecond: 5,
			ElasticURL:              "http://localhost:9200",
			ElasticIndex:            "courts",
		},
		Store: StoreSettings{
			Backend:             StoreBackendSQLite,
			RedisURL:            "redis://localhost:6379/0",
			FirestoreCollection: DefaultUsersCollection,
		},
		Cache: CacheSettings{
			FreshnessWindow: DefaultFreshnessWindow,
		},
		Favorites: FavoritesSettings{
			Max: DefaultMaxFavorites,
		},
		Session: SessionSettings{
			Source:       SessionSourceFile,
			KafkaBrokers: []string{"localhost:9092"},
			KafkaTopic:   "courtfinder.sessions",
			KafkaGroupID: "courtfinder",
		},
		Avatar: AvatarSettings{
			MaxEntries: 256,
		},
	}
}

// Validate checks that the settings can build a working application.
func (s AppSettings) Validate() error {
	if !s.Search.Provider.IsValid() {
		return fmt.Errorf("%w: unknown search provider %q", ErrInvalidInput, s.Search.Provider)
	}
	if s.Search.Provider == SearchProviderElastic && s.Search.ElasticURL == "" {
		return fmt.Errorf("%w: search.elastic.url is required", ErrInvalidInput)
	}
	if !s.Store.Backend.IsValid() {
		return fmt.Errorf("%w: unknown store backend %q", ErrInvalidInput, s.Store.Backend)
	}
	if s.Store.Backend == StoreBackendFirestore && s.Store.FirestoreProjectID == "" {
		return fmt.Errorf("%w: store.firestore.project_id is required", ErrInvalidInput)
	}
	if !s.Session.Source.IsValid() {
		return fmt.Errorf("%w: unknown session source %q", ErrInvalidInput, s.Session.Source)
	}
	if s.Favorites.Max <= 0 {
		return fmt.Errorf("%w: favorites.max must be positive", ErrInvalidInput)
	}
	if s.Cache.FreshnessWindow < 0 {
		return fmt.Errorf("%w: cache freshness must not be negative", ErrInvalidInput)
	}
	return nil
}
