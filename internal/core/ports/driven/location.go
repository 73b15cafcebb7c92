package driven

import (
	"context"

	"github.com/rdkhare/CourtFinder/internal/core/domain"
)

// LocationSource delivers position updates at its own cadence.
type LocationSource interface {
	// Updates emits a coordinate per position fix until ctx is cancelled.
	Updates(ctx context.Context) (<-chan domain.Coordinate, error)
}
