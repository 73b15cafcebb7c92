// Package mcp provides an MCP (Model Context Protocol) server adapter for CourtFinder.
// It lets AI assistants look up nearby courts and manage the signed-in
// user's favourites.
package mcp

import "errors"

// ErrMissingCourtsService is returned when the courts service is not provided.
var ErrMissingCourtsService = errors.New("mcp: courts service is required")

// ErrNoLocation is returned when a tool needs a point and none is known yet.
var ErrNoLocation = errors.New("mcp: no location given and none cached")

// ErrCourtNotFound is returned when a place id is in neither the cache nor the favourites.
var ErrCourtNotFound = errors.New("mcp: court not found in nearby results or favourites")

// ErrNotSignedIn is returned when a tool needs a signed-in user.
var ErrNotSignedIn = errors.New("mcp: no user is signed in")
