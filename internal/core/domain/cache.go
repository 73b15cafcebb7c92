package domain

import "time"

// CacheState describes how current the nearby-courts cache is.
type CacheState int

const (
	// CacheEmpty means no successful fetch has happened (or the cache was cleared).
	CacheEmpty CacheState = iota
	// CacheFresh means the last fetch is inside the freshness window.
	CacheFresh
	// CacheStale means the freshness window has elapsed.
	CacheStale
)

func (s CacheState) String() string {
	switch s {
	case CacheEmpty:
		return "empty"
	case CacheFresh:
		return "fresh"
	case CacheStale:
		return "stale"
	default:
		return "unknown"
	}
}

// AllowsFetch reports whether a non-forced fetch should go to the provider.
func (s CacheState) AllowsFetch() bool {
	return s != CacheFresh
}

// CacheStateAt derives the cache state from the last successful update.
func CacheStateAt(lastUpdate, now time.Time, window time.Duration) CacheState {
	if lastUpdate.IsZero() {
		return CacheEmpty
	}
	if now.Sub(lastUpdate) < window {
		return CacheFresh
	}
	return CacheStale
}
