package driven

import (
	"context"

	"github.com/rdkhare/CourtFinder/internal/core/domain"
)

// PlaceSearch finds courts around a point.
// The text query and radius are fixed by the implementation's configuration.
type PlaceSearch interface {
	// SearchNearby returns the provider's courts for the point.
	// Transport failures wrap domain.ErrNetworkFailure and malformed
	// responses wrap domain.ErrDecodeFailure.
	SearchNearby(ctx context.Context, point domain.Coordinate) ([]domain.Court, error)
}
