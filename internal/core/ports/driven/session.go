package driven

import (
	"context"

	"github.com/rdkhare/CourtFinder/internal/core/domain"
)

// SessionSource reports the signed-in identity.
type SessionSource interface {
	// Events emits the current identity first, then every change.
	// The channel closes when ctx is cancelled.
	Events(ctx context.Context) (<-chan domain.SessionEvent, error)
}
