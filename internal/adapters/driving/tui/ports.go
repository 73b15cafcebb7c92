// Package tui provides an interactive terminal user interface for CourtFinder.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/rdkhare/CourtFinder/internal/core/ports/driving"
)

// Ports aggregates the driving ports used by the TUI.
type Ports struct {
	// Courts serves nearby courts and favourites.
	Courts driving.CourtsService

	// Profile resolves the signed-in user's display name. Optional.
	Profile driving.ProfileService

	// MaxFavorites is shown in the favourites header. Zero means the default.
	MaxFavorites int
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Courts == nil {
		return ErrMissingCourtsService
	}
	return nil
}
