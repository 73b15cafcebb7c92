package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/rdkhare/CourtFinder/internal/adapters/driven/imagecache"
	locationfile "github.com/rdkhare/CourtFinder/internal/adapters/driven/location/file"
	"github.com/rdkhare/CourtFinder/internal/adapters/driven/places/elastic"
	"github.com/rdkhare/CourtFinder/internal/adapters/driven/places/google"
	sessionfile "github.com/rdkhare/CourtFinder/internal/adapters/driven/session/file"
	"github.com/rdkhare/CourtFinder/internal/adapters/driven/session/kafka"
	"github.com/rdkhare/CourtFinder/internal/adapters/driven/storage/firestore"
	"github.com/rdkhare/CourtFinder/internal/adapters/driven/storage/memory"
	"github.com/rdkhare/CourtFinder/internal/adapters/driven/storage/redis"
	"github.com/rdkhare/CourtFinder/internal/adapters/driven/storage/sqlite"
	"github.com/rdkhare/CourtFinder/internal/adapters/driving/cli"
	"github.com/rdkhare/CourtFinder/internal/core/domain"
	"github.com/rdkhare/CourtFinder/internal/core/ports/driven"
	"github.com/rdkhare/CourtFinder/internal/core/services"
	"github.com/rdkhare/CourtFinder/internal/logger"
)

const locationFileName = "location"

var wiringLog = logger.Component("wiring")

// application holds the wired services and everything that must be closed.
type application struct {
	services cli.Services
	closers  []io.Closer
}

// Close releases adapters in reverse construction order.
func (a *application) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			wiringLog.Warn("closing: %v", err)
		}
	}
}

// build constructs every adapter the settings select. Optional adapters
// that fail to start are logged and left out so unrelated commands still run.
func build(ctx context.Context, dir string, s *domain.AppSettings) (*application, error) {
	app := &application{}

	places, indexer, err := buildPlaces(s.Search)
	if err != nil {
		wiringLog.Warn("search provider unavailable: %v", err)
	}

	users, closer, err := buildUserStore(ctx, dir, s.Store)
	if err != nil {
		return nil, fmt.Errorf("opening %s store: %w", s.Store.Backend, err)
	}
	if closer != nil {
		app.closers = append(app.closers, closer)
	}

	sessionPath := s.Session.File
	if sessionPath == "" {
		sessionPath = filepath.Join(dir, sessionfile.DefaultFileName)
	}
	sessions := sessionfile.New(sessionPath)
	recorder := &sessionRecorder{file: sessions}

	var sessionSource driven.SessionSource = sessions
	if s.Session.Source == domain.SessionSourceKafka {
		source, publisher, err := buildKafka(s.Session, sessions)
		if err != nil {
			wiringLog.Warn("kafka session source unavailable, using %s: %v", sessionPath, err)
		} else {
			sessionSource = source
			recorder.publisher = publisher
			app.closers = append(app.closers, source, publisher)
		}
	}

	locationPath := s.Location.File
	if locationPath == "" {
		locationPath = filepath.Join(dir, locationFileName)
	}
	location := locationfile.New(locationPath)

	images, err := imagecache.New(s.Avatar.MaxEntries, nil)
	if err != nil {
		return nil, fmt.Errorf("creating image cache: %w", err)
	}

	courts := services.NewCourtsManager(places, users, services.ManagerConfig{
		FreshnessWindow: s.Cache.FreshnessWindow,
		MaxFavorites:    s.Favorites.Max,
	})

	app.services = cli.Services{
		Courts:   courts,
		Profile:  services.NewProfileService(users, images),
		Session:  recorder,
		Location: location,
		Watcher:  services.NewWatcher(courts, location, sessionSource),
	}
	if indexer != nil {
		app.services.Indexer = indexer
	}
	return app, nil
}

// buildPlaces returns the search adapter, and the index writer when the
// provider is self-hosted. A nil PlaceSearch makes searches report
// domain.ErrNotImplemented.
func buildPlaces(s domain.SearchSettings) (driven.PlaceSearch, *elastic.Client, error) {
	switch s.Provider {
	case domain.SearchProviderElastic:
		client, err := elastic.NewClient(elastic.Config{
			URL:          s.ElasticURL,
			Index:        s.ElasticIndex,
			RadiusMeters: s.RadiusMeters,
		})
		if err != nil {
			return nil, nil, err
		}
		return client, client, nil
	default:
		client, err := google.NewClient(google.Config{
			APIKey:            s.GoogleAPIKey,
			BaseURL:           s.GoogleBaseURL,
			Query:             s.Query,
			RadiusMeters:      s.RadiusMeters,
			RequestsPerSecond: float64(s.GoogleRequestsPerSecond),
		})
		if err != nil {
			return nil, nil, err
		}
		return client, nil, nil
	}
}

func buildUserStore(ctx context.Context, dir string, s domain.StoreSettings) (driven.UserStore, io.Closer, error) {
	switch s.Backend {
	case domain.StoreBackendMemory:
		return memory.NewUserStore(), nil, nil
	case domain.StoreBackendRedis:
		store, err := redis.NewStore(s.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil
	case domain.StoreBackendFirestore:
		store, err := firestore.NewStore(ctx, firestore.Config{
			ProjectID:       s.FirestoreProjectID,
			Collection:      s.FirestoreCollection,
			CredentialsFile: s.FirestoreCredentialsFile,
			AccessToken:     lookupEnv(envAccessToken),
		})
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil
	case domain.StoreBackendSQLite:
		dataDir := s.SQLiteDir
		if dataDir == "" {
			dataDir = filepath.Join(dir, "data")
		}
		store, err := sqlite.NewStore(dataDir)
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil
	default:
		return nil, nil, errors.New("unknown store backend")
	}
}

// buildKafka starts from the identity in the session file so a restart
// does not forget who is signed in.
func buildKafka(s domain.SessionSettings, sessions *sessionfile.Source) (*kafka.Source, *kafka.Publisher, error) {
	var initial *domain.SessionEvent
	if userID, err := sessions.Current(); err == nil {
		event := domain.LoggedOut()
		if userID != "" {
			event = domain.LoggedIn(userID)
		}
		initial = &event
	}

	source, err := kafka.NewSource(kafka.Config{
		Brokers: s.KafkaBrokers,
		Topic:   s.KafkaTopic,
		GroupID: s.KafkaGroupID,
		Initial: initial,
	})
	if err != nil {
		return nil, nil, err
	}
	publisher, err := kafka.NewPublisher(s.KafkaBrokers, s.KafkaTopic)
	if err != nil {
		_ = source.Close()
		return nil, nil, err
	}
	return source, publisher, nil
}
