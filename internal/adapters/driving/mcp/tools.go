package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rdkhare/CourtFinder/internal/core/domain"
)

// CourtOutput is a court as returned by the tools.
type CourtOutput struct {
	PlaceID       string   `json:"place_id"`
	Name          string   `json:"name"`
	Address       string   `json:"address"`
	Lat           float64  `json:"lat"`
	Lng           float64  `json:"lng"`
	DistanceMiles *float64 `json:"distance_miles,omitempty"`
	Rating        *float64 `json:"rating,omitempty"`
	OpenNow       *bool    `json:"open_now,omitempty"`
	IsFavorite    bool     `json:"is_favorite"`
}

// CourtsOutput is a list of courts.
type CourtsOutput struct {
	Courts []CourtOutput `json:"courts"`
	Count  int           `json:"count"`
}

// NearbyInput is the input schema for nearby_courts.
type NearbyInput struct {
	Lat     *float64 `json:"lat,omitempty" jsonschema:"latitude of the search point (defaults to the last searched point)"`
	Lng     *float64 `json:"lng,omitempty" jsonschema:"longitude of the search point (defaults to the last searched point)"`
	Filter  string   `json:"filter,omitempty" jsonschema:"only courts whose name or address contains this text"`
	Refresh bool     `json:"refresh,omitempty" jsonschema:"query the provider even if cached results are fresh"`
}

// PlaceInput identifies a court.
type PlaceInput struct {
	PlaceID string `json:"place_id" jsonschema:"the court's place id"`
}

// ToggleOutput reports the court's membership after a toggle.
type ToggleOutput struct {
	PlaceID    string `json:"place_id"`
	IsFavorite bool   `json:"is_favorite"`
	Count      int    `json:"favorites_count"`
}

// StatusOutput is returned by tools with no other result.
type StatusOutput struct {
	Status string `json:"status"`
}

// EmptyInput is the input schema of tools that take no arguments.
type EmptyInput struct{}

// ProfileInput is the input schema for update_profile. Omitted fields are left alone.
type ProfileInput struct {
	DisplayName *string `json:"display_name,omitempty" jsonschema:"new display name"`
	Username    *string `json:"username,omitempty" jsonschema:"new username, without spaces"`
	PhotoURL    *string `json:"photo_url,omitempty" jsonschema:"new photo URL, empty to clear"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "nearby_courts",
		Description: "List basketball courts near a point, nearest first",
	}, s.handleNearby)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_favorites",
		Description: "List the signed-in user's favourite courts",
	}, s.handleListFavorites)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "toggle_favorite",
		Description: "Add a court to favourites, or remove it if already there",
	}, s.handleToggleFavorite)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "cleanup_favorites",
		Description: "Remove duplicate entries from the stored favourites",
	}, s.handleCleanupFavorites)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "clear_cache",
		Description: "Forget cached nearby courts so the next search queries the provider",
	}, s.handleClearCache)

	if s.ports.Profile != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "update_profile",
			Description: "Change the signed-in user's display name, username or photo URL",
		}, s.handleUpdateProfile)
	}
}

func (s *Server) handleNearby(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input NearbyInput,
) (*mcp.CallToolResult, CourtsOutput, error) {
	courts := s.ports.Courts

	point, err := s.resolvePoint(input)
	if err != nil {
		return nil, CourtsOutput{}, err
	}

	if input.Refresh {
		err = courts.RefreshCourts(ctx, point)
	} else {
		err = courts.FetchCourtsIfNeeded(ctx, point)
	}
	if err != nil {
		return nil, CourtsOutput{}, err
	}

	return nil, toCourtsOutput(courts.NearbyCourts(input.Filter)), nil
}

func (s *Server) resolvePoint(input NearbyInput) (domain.Coordinate, error) {
	if input.Lat != nil && input.Lng != nil {
		point := domain.Coordinate{Lat: *input.Lat, Lng: *input.Lng}
		return point, point.Validate()
	}
	if origin := s.ports.Courts.Snapshot().Origin; origin != nil {
		return *origin, nil
	}
	return domain.Coordinate{}, ErrNoLocation
}

func (s *Server) handleListFavorites(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ EmptyInput,
) (*mcp.CallToolResult, CourtsOutput, error) {
	return nil, toCourtsOutput(s.ports.Courts.FavoriteCourts()), nil
}

func (s *Server) handleToggleFavorite(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input PlaceInput,
) (*mcp.CallToolResult, ToggleOutput, error) {
	court, ok := findCourt(s.ports.Courts.Snapshot(), input.PlaceID)
	if !ok {
		return nil, ToggleOutput{}, ErrCourtNotFound
	}

	favorite, err := s.ports.Courts.ToggleFavorite(ctx, court)
	if err != nil {
		return nil, ToggleOutput{}, err
	}

	return nil, ToggleOutput{
		PlaceID:    court.PlaceID,
		IsFavorite: favorite,
		Count:      len(s.ports.Courts.FavoriteCourts()),
	}, nil
}

func (s *Server) handleCleanupFavorites(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ EmptyInput,
) (*mcp.CallToolResult, CourtsOutput, error) {
	if err := s.ports.Courts.CleanupDuplicateFavorites(ctx); err != nil {
		return nil, CourtsOutput{}, err
	}
	return nil, toCourtsOutput(s.ports.Courts.FavoriteCourts()), nil
}

func (s *Server) handleClearCache(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ EmptyInput,
) (*mcp.CallToolResult, StatusOutput, error) {
	s.ports.Courts.ClearCache()
	return nil, StatusOutput{Status: "cleared"}, nil
}

func (s *Server) handleUpdateProfile(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ProfileInput,
) (*mcp.CallToolResult, domain.Profile, error) {
	userID := s.ports.Courts.Snapshot().UserID
	if userID == "" {
		return nil, domain.Profile{}, ErrNotSignedIn
	}

	profile, err := s.ports.Profile.UpdateProfile(ctx, userID, domain.ProfileUpdate{
		DisplayName: input.DisplayName,
		Username:    input.Username,
		PhotoURL:    input.PhotoURL,
	})
	if err != nil {
		return nil, domain.Profile{}, err
	}
	return nil, profile, nil
}

// findCourt looks for placeID in favourites first, then in cached courts.
func findCourt(snap domain.CourtsSnapshot, placeID string) (domain.Court, bool) {
	if placeID == "" {
		return domain.Court{}, false
	}
	if i := domain.IndexOfCourt(snap.Favorites, placeID); i >= 0 {
		return snap.Favorites[i], true
	}
	if i := domain.IndexOfCourt(snap.Courts, placeID); i >= 0 {
		return snap.Courts[i], true
	}
	return domain.Court{}, false
}

func toCourtOutput(c domain.Court) CourtOutput {
	out := CourtOutput{
		PlaceID:       c.PlaceID,
		Name:          c.Name,
		Address:       c.FormattedAddress,
		Lat:           c.Geometry.Location.Lat,
		Lng:           c.Geometry.Location.Lng,
		DistanceMiles: c.DistanceMiles,
		Rating:        c.Rating,
		IsFavorite:    c.IsFavorite,
	}
	if c.OpeningHours != nil {
		out.OpenNow = c.OpeningHours.OpenNow
	}
	return out
}

func toCourtsOutput(courts []domain.Court) CourtsOutput {
	out := CourtsOutput{
		Courts: make([]CourtOutput, len(courts)),
		Count:  len(courts),
	}
	for i := range courts {
		out.Courts[i] = toCourtOutput(courts[i])
	}
	return out
}
