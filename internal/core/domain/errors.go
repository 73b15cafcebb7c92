package domain

import "errors"

// Domain errors represent business logic failures.
// Adapters wrap infrastructure causes with these so callers can use errors.Is.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// ErrNetworkFailure indicates the search provider or document store
	// could not be reached or answered with a failure status.
	ErrNetworkFailure = errors.New("network failure")

	// ErrDecodeFailure indicates a malformed response or stored document.
	ErrDecodeFailure = errors.New("decode failure")

	// ErrCapacityExceeded indicates an add was attempted with a full favourites list.
	ErrCapacityExceeded = errors.New("favourites capacity exceeded")

	// ErrNoSession indicates a favourites operation was attempted while logged out.
	ErrNoSession = errors.New("no active session")

	// ErrSessionChanged indicates the session identity changed while an
	// operation was in flight, so its result was discarded.
	ErrSessionChanged = errors.New("session changed")
)
