package domain

import (
	"encoding/json"
	"fmt"
)

// Viewport is the recommended display box for a place.
type Viewport struct {
	Northeast Coordinate `json:"northeast"`
	Southwest Coordinate `json:"southwest"`
}

// Geometry holds a place's location and viewport.
type Geometry struct {
	Location Coordinate `json:"location"`
	Viewport Viewport   `json:"viewport"`
}

// OpeningHours reports whether a place is open at query time.
type OpeningHours struct {
	OpenNow *bool `json:"open_now,omitempty"`
}

// Court is a place record returned by a geosearch provider.
// PlaceID is the sole identity; two courts are equal when their PlaceIDs match.
type Court struct {
	PlaceID          string        `json:"place_id"`
	Name             string        `json:"name"`
	FormattedAddress string        `json:"formatted_address"`
	Geometry         Geometry      `json:"geometry"`
	Types            []string      `json:"types"`
	BusinessStatus   string        `json:"business_status,omitempty"`
	Rating           *float64      `json:"rating,omitempty"`
	UserRatingsTotal *int          `json:"user_ratings_total,omitempty"`
	OpeningHours     *OpeningHours `json:"opening_hours,omitempty"`

	// DistanceMiles is computed locally from a reference point and never persisted.
	DistanceMiles *float64 `json:"-"`

	// IsFavorite mirrors membership in the favourites collection. It is
	// derived on load and never stored.
	IsFavorite bool `json:"-"`
}

// requiredCourtKeys must be present in every stored court record.
var requiredCourtKeys = []string{"name", "formatted_address", "geometry", "place_id", "types"}

// Equal reports whether two courts refer to the same place.
func (c Court) Equal(other Court) bool {
	return c.PlaceID == other.PlaceID
}

// Location returns the court's coordinate.
func (c Court) Location() Coordinate {
	return c.Geometry.Location
}

// AnnotateDistance sets DistanceMiles from the given reference point.
func (c *Court) AnnotateDistance(reference Coordinate) {
	miles := DistanceMiles(reference, c.Geometry.Location)
	c.DistanceMiles = &miles
}

// UnmarshalJSON decodes a court and rejects records missing required keys.
func (c *Court) UnmarshalJSON(data []byte) error {
	type plainCourt Court

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return fmt.Errorf("%w: court: %v", ErrDecodeFailure, err)
	}
	for _, k := range requiredCourtKeys {
		if _, ok := keys[k]; !ok {
			return fmt.Errorf("%w: court missing %q", ErrDecodeFailure, k)
		}
	}

	var p plainCourt
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("%w: court: %v", ErrDecodeFailure, err)
	}
	*c = Court(p)
	return nil
}

// IndexOfCourt returns the position of placeID in courts, or -1.
func IndexOfCourt(courts []Court, placeID string) int {
	for i := range courts {
		if courts[i].PlaceID == placeID {
			return i
		}
	}
	return -1
}

// ContainsCourt reports whether courts holds a record with placeID.
func ContainsCourt(courts []Court, placeID string) bool {
	return IndexOfCourt(courts, placeID) >= 0
}

// CloneCourts returns a shallow copy of courts.
func CloneCourts(courts []Court) []Court {
	if courts == nil {
		return nil
	}
	out := make([]Court, len(courts))
	copy(out, courts)
	return out
}
