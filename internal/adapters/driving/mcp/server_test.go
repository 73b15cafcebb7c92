package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	t.Run("creates server with courts service", func(t *testing.T) {
		server, err := NewServer(&Ports{Courts: &mockCourtsService{}})

		require.NoError(t, err)
		assert.NotNil(t, server)
		assert.NotNil(t, server.server)
	})

	t.Run("creates server with profile service", func(t *testing.T) {
		server, err := NewServer(&Ports{
			Courts:  &mockCourtsService{},
			Profile: &mockProfileService{},
		})

		require.NoError(t, err)
		assert.NotNil(t, server)
	})

	t.Run("fails without courts service", func(t *testing.T) {
		server, err := NewServer(&Ports{})

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMissingCourtsService)
		assert.Nil(t, server)
	})
}

func TestPorts_Validate(t *testing.T) {
	assert.NoError(t, (&Ports{Courts: &mockCourtsService{}}).Validate())
	assert.ErrorIs(t, (&Ports{Profile: &mockProfileService{}}).Validate(), ErrMissingCourtsService)
}
