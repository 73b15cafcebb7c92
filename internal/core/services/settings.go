package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rdkhare/CourtFinder/internal/core/domain"
	"github.com/rdkhare/CourtFinder/internal/core/ports/driven"
	"github.com/rdkhare/CourtFinder/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keySearchProvider      = "search.provider"
	keySearchQuery         = "search.query"
	keySearchRadius        = "search.radius_meters"
	keyGoogleAPIKey        = "search.google.api_key"
	keyGoogleBaseURL       = "search.google.base_url"
	keyGoogleRate          = "search.google.requests_per_second"
	keyElasticURL          = "search.elastic.url"
	keyElasticIndex        = "search.elastic.index"
	keyStoreBackend        = "store.backend"
	keySQLiteDir           = "store.sqlite.dir"
	keyRedisURL            = "store.redis.url"
	keyFirestoreProject    = "store.firestore.project_id"
	keyFirestoreCollection = "store.firestore.collection"
	keyFirestoreCreds      = "store.firestore.credentials_file"
	keyFreshnessMinutes    = "cache.freshness_minutes"
	keyMaxFavorites        = "favorites.max"
	keySessionSource       = "session.source"
	keySessionFile         = "session.file"
	keyKafkaBrokers        = "session.kafka.brokers"
	keyKafkaTopic          = "session.kafka.topic"
	keyKafkaGroupID        = "session.kafka.group_id"
	keyLocationFile        = "location.file"
	keyAvatarMaxEntries    = "avatar.max_entries"
)

// intKeys are stored as integers; sliceKeys as string lists.
var (
	intKeys = map[string]bool{
		keySearchRadius:     true,
		keyGoogleRate:       true,
		keyFreshnessMinutes: true,
		keyMaxFavorites:     true,
		keyAvatarMaxEntries: true,
	}
	sliceKeys = map[string]bool{
		keyKafkaBrokers: true,
	}
	knownKeys = map[string]bool{
		keySearchProvider: true, keySearchQuery: true, keySearchRadius: true,
		keyGoogleAPIKey: true, keyGoogleBaseURL: true, keyGoogleRate: true,
		keyElasticURL: true, keyElasticIndex: true,
		keyStoreBackend: true, keySQLiteDir: true, keyRedisURL: true,
		keyFirestoreProject: true, keyFirestoreCollection: true, keyFirestoreCreds: true,
		keyFreshnessMinutes: true, keyMaxFavorites: true,
		keySessionSource: true, keySessionFile: true,
		keyKafkaBrokers: true, keyKafkaTopic: true, keyKafkaGroupID: true,
		keyLocationFile: true, keyAvatarMaxEntries: true,
	}
)

// SettingsService maps the flat config store onto domain.AppSettings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Search: domain.SearchSettings{
			Provider:                s.getSearchProvider(defaults.Search.Provider),
			Query:                   s.getString(keySearchQuery, defaults.Search.Query),
			RadiusMeters:            s.getInt(keySearchRadius, defaults.Search.RadiusMeters),
			GoogleAPIKey:            s.configStore.GetString(keyGoogleAPIKey),
			GoogleBaseURL:           s.configStore.GetString(keyGoogleBaseURL),
			GoogleRequestsPerSecond: s.getInt(keyGoogleRate, defaults.Search.GoogleRequestsPerSecond),
			ElasticURL:              s.getString(keyElasticURL, defaults.Search.ElasticURL),
			ElasticIndex:            s.getString(keyElasticIndex, defaults.Search.ElasticIndex),
		},
		Store: domain.StoreSettings{
			Backend:                  s.getStoreBackend(defaults.Store.Backend),
			SQLiteDir:                s.configStore.GetString(keySQLiteDir),
			RedisURL:                 s.getString(keyRedisURL, defaults.Store.RedisURL),
			FirestoreProjectID:       s.configStore.GetString(keyFirestoreProject),
			FirestoreCollection:      s.getString(keyFirestoreCollection, defaults.Store.FirestoreCollection),
			FirestoreCredentialsFile: s.configStore.GetString(keyFirestoreCreds),
		},
		Cache: domain.CacheSettings{
			FreshnessWindow: s.getMinutes(keyFreshnessMinutes, defaults.Cache.FreshnessWindow),
		},
		Favorites: domain.FavoritesSettings{
			Max: s.getInt(keyMaxFavorites, defaults.Favorites.Max),
		},
		Session: domain.SessionSettings{
			Source:       s.getSessionSource(defaults.Session.Source),
			File:         s.configStore.GetString(keySessionFile),
			KafkaBrokers: s.getStringSlice(keyKafkaBrokers, defaults.Session.KafkaBrokers),
			KafkaTopic:   s.getString(keyKafkaTopic, defaults.Session.KafkaTopic),
			KafkaGroupID: s.getString(keyKafkaGroupID, defaults.Session.KafkaGroupID),
		},
		Location: domain.LocationSettings{
			File: s.configStore.GetString(keyLocationFile),
		},
		Avatar: domain.AvatarSettings{
			MaxEntries: s.getInt(keyAvatarMaxEntries, defaults.Avatar.MaxEntries),
		},
	}

	return settings, nil
}

// Set stores a single key, converting the value to the key's type.
func (s *SettingsService) Set(key, value string) error {
	if !knownKeys[key] {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	switch {
	case intKeys[key]:
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("%w: %s expects an integer", domain.ErrInvalidInput, key)
		}
		return s.configStore.Set(key, int64(n))
	case sliceKeys[key]:
		return s.configStore.Set(key, splitList(value))
	default:
		if err := validateEnum(key, value); err != nil {
			return err
		}
		return s.configStore.Set(key, value)
	}
}

// Values lists every explicitly configured key and its value.
func (s *SettingsService) Values() map[string]any {
	keys := s.configStore.Keys()
	sort.Strings(keys)

	out := make(map[string]any, len(keys))
	for _, k := range keys {
		if v, ok := s.configStore.Get(k); ok {
			out[k] = v
		}
	}
	return out
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func validateEnum(key, value string) error {
	var ok bool
	switch key {
	case keySearchProvider:
		ok = domain.SearchProvider(value).IsValid()
	case keyStoreBackend:
		ok = domain.StoreBackend(value).IsValid()
	case keySessionSource:
		ok = domain.SessionSourceKind(value).IsValid()
	default:
		return nil
	}
	if !ok {
		return fmt.Errorf("%w: %q is not a valid %s", domain.ErrInvalidInput, value, key)
	}
	return nil
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getStringSlice(key string, defaultVal []string) []string {
	val := s.configStore.GetStringSlice(key)
	if len(val) == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getMinutes(key string, defaultVal time.Duration) time.Duration {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return time.Duration(val) * time.Minute
}

func (s *SettingsService) getSearchProvider(defaultVal domain.SearchProvider) domain.SearchProvider {
	provider := domain.SearchProvider(s.configStore.GetString(keySearchProvider))
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}

func (s *SettingsService) getStoreBackend(defaultVal domain.StoreBackend) domain.StoreBackend {
	backend := domain.StoreBackend(s.configStore.GetString(keyStoreBackend))
	if !backend.IsValid() {
		return defaultVal
	}
	return backend
}

func (s *SettingsService) getSessionSource(defaultVal domain.SessionSourceKind) domain.SessionSourceKind {
	kind := domain.SessionSourceKind(s.configStore.GetString(keySessionSource))
	if !kind.IsValid() {
		return defaultVal
	}
	return kind
}
