package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for CourtFinder resources.
	uriScheme = "courtfinder://"

	jsonMIME = "application/json"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "favorites",
		Name:        "favorites",
		Description: "The signed-in user's favourite courts, sorted by name",
		MIMEType:    jsonMIME,
	}, s.handleFavoritesResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "courts/{placeId}",
		Name:        "court",
		Description: "A single court from the nearby results or favourites",
		MIMEType:    jsonMIME,
	}, s.handleCourtResource)

	if s.ports.Profile != nil {
		s.server.AddResource(&mcp.Resource{
			URI:         uriScheme + "profile",
			Name:        "profile",
			Description: "Profile fields of the signed-in user",
			MIMEType:    jsonMIME,
		}, s.handleProfileResource)
	}
}

func (s *Server) handleFavoritesResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	return jsonResource(req.Params.URI, toCourtsOutput(s.ports.Courts.FavoriteCourts()).Courts)
}

func (s *Server) handleCourtResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	placeID := extractPlaceID(req.Params.URI)
	court, ok := findCourt(s.ports.Courts.Snapshot(), placeID)
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	court.IsFavorite = s.ports.Courts.IsCourtFavorited(court.PlaceID)
	return jsonResource(req.Params.URI, toCourtOutput(court))
}

func (s *Server) handleProfileResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	userID := s.ports.Courts.Snapshot().UserID
	if userID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	profile, err := s.ports.Profile.Profile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading profile: %w", err)
	}
	return jsonResource(req.Params.URI, profile)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: jsonMIME,
			Text:     string(data),
		}},
	}, nil
}

// extractPlaceID extracts the place id from a URI like courtfinder://courts/{placeId}.
func extractPlaceID(uri string) string {
	const prefix = uriScheme + "courts/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
