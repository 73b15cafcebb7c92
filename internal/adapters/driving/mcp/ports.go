package mcp

import (
	"github.com/rdkhare/CourtFinder/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
type Ports struct {
	// Courts serves nearby courts and favourites.
	Courts driving.CourtsService

	// Profile exposes the signed-in user's profile. Optional.
	Profile driving.ProfileService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Courts == nil {
		return ErrMissingCourtsService
	}
	return nil
}
