package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rdkhare/CourtFinder/internal/core/domain"
)

// courtView is the JSON shape of a court. Court.DistanceMiles is not
// serialised on the domain type, so it is copied here.
type courtView struct {
	PlaceID       string   `json:"place_id"`
	Name          string   `json:"name"`
	Address       string   `json:"address"`
	Lat           float64  `json:"lat"`
	Lng           float64  `json:"lng"`
	DistanceMiles *float64 `json:"distance_miles,omitempty"`
	Rating        *float64 `json:"rating,omitempty"`
	OpenNow       *bool    `json:"open_now,omitempty"`
	Favorite      bool     `json:"favorite"`
}

func newCourtView(c domain.Court) courtView {
	v := courtView{
		PlaceID:       c.PlaceID,
		Name:          c.Name,
		Address:       c.FormattedAddress,
		Lat:           c.Geometry.Location.Lat,
		Lng:           c.Geometry.Location.Lng,
		DistanceMiles: c.DistanceMiles,
		Rating:        c.Rating,
		Favorite:      c.IsFavorite,
	}
	if c.OpeningHours != nil {
		v.OpenNow = c.OpeningHours.OpenNow
	}
	return v
}

func outputJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputCourtsJSON(cmd *cobra.Command, courts []domain.Court) error {
	views := make([]courtView, len(courts))
	for i := range courts {
		views[i] = newCourtView(courts[i])
	}
	return outputJSON(cmd, views)
}

func outputCourtsTable(cmd *cobra.Command, courts []domain.Court, empty string) {
	if len(courts) == 0 {
		cmd.Println(empty)
		return
	}

	for i := range courts {
		c := courts[i]

		line := fmt.Sprintf("  [%d] %s", i+1, c.Name)
		if c.DistanceMiles != nil {
			line += fmt.Sprintf(" (%.2f mi)", *c.DistanceMiles)
		}
		if c.IsFavorite {
			line += " ★"
		}
		cmd.Println(line)

		if c.FormattedAddress != "" {
			cmd.Printf("      %s\n", c.FormattedAddress)
		}
		details := courtDetails(c)
		if details != "" {
			cmd.Printf("      %s\n", details)
		}
		cmd.Printf("      id: %s\n", c.PlaceID)
	}
}

func courtDetails(c domain.Court) string {
	var out string
	if c.Rating != nil {
		out = fmt.Sprintf("rating %.1f", *c.Rating)
		if c.UserRatingsTotal != nil {
			out += fmt.Sprintf(" (%d)", *c.UserRatingsTotal)
		}
	}
	if c.OpeningHours != nil && c.OpeningHours.OpenNow != nil {
		status := "closed now"
		if *c.OpeningHours.OpenNow {
			status = "open now"
		}
		if out != "" {
			out += ", "
		}
		out += status
	}
	return out
}
