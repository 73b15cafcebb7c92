package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rdkhare/CourtFinder/internal/core/domain"
)

func TestPorts_Validate(t *testing.T) {
	tests := []struct {
		name  string
		ports *Ports
		err   error
	}{
		{"nil ports", nil, ErrMissingCourtsService},
		{"missing courts", &Ports{Profile: &mockProfileService{}}, ErrMissingCourtsService},
		{"courts only", &Ports{Courts: newMockCourts(domain.CourtsSnapshot{})}, nil},
		{"all ports", &Ports{
			Courts:       newMockCourts(domain.CourtsSnapshot{}),
			Profile:      &mockProfileService{},
			MaxFavorites: 5,
		}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ports.Validate()
			if tt.err == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.err)
		})
	}
}
