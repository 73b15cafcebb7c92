package tui

import "errors"

// ErrMissingCourtsService is returned when the courts service is not provided.
var ErrMissingCourtsService = errors.New("tui: courts service is required")

// ErrNoLocation is shown when a refresh is requested before any location is known.
var ErrNoLocation = errors.New("no location yet: run 'courtfinder locate lat,lng'")
