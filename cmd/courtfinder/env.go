package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rdkhare/CourtFinder/internal/core/domain"
)

// Environment variables that override stored settings.
//
//nolint:gosec // G101: variable names, not credentials.
const (
	envGoogleAPIKey   = "GOOGLE_PLACES_API_KEY"
	envRedisURL       = "COURTFINDER_REDIS_URL"
	envElasticURL     = "COURTFINDER_ELASTIC_URL"
	envProjectID      = "GOOGLE_CLOUD_PROJECT"
	envAccessToken    = "GOOGLE_OAUTH_ACCESS_TOKEN"
	envKafkaBrokers   = "COURTFINDER_KAFKA_BROKERS"
	envFreshnessMins  = "COURTFINDER_FRESHNESS_MINUTES"
	envCredentialFile = "GOOGLE_APPLICATION_CREDENTIALS"
)

// applyEnv overrides settings from the environment.
func applyEnv(s *domain.AppSettings, lookup func(string) (string, bool)) {
	if v, ok := lookup(envGoogleAPIKey); ok && v != "" {
		s.Search.GoogleAPIKey = v
	}
	if v, ok := lookup(envElasticURL); ok && v != "" {
		s.Search.ElasticURL = v
	}
	if v, ok := lookup(envRedisURL); ok && v != "" {
		s.Store.RedisURL = v
	}
	if v, ok := lookup(envProjectID); ok && v != "" && s.Store.FirestoreProjectID == "" {
		s.Store.FirestoreProjectID = v
	}
	if v, ok := lookup(envCredentialFile); ok && v != "" && s.Store.FirestoreCredentialsFile == "" {
		s.Store.FirestoreCredentialsFile = v
	}
	if v, ok := lookup(envKafkaBrokers); ok && v != "" {
		s.Session.KafkaBrokers = splitBrokers(v)
	}
	if v, ok := lookup(envFreshnessMins); ok && v != "" {
		if window, err := parseMinutes(v); err == nil {
			s.Cache.FreshnessWindow = window
		} else {
			wiringLog.Warn("ignoring %s: %v", envFreshnessMins, err)
		}
	}
}

func lookupEnv(key string) string {
	v, _ := os.LookupEnv(key)
	return v
}

func splitBrokers(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseMinutes(value string) (time.Duration, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("%d is not a positive number of minutes", n)
	}
	return time.Duration(n) * time.Minute, nil
}
