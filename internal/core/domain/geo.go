package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MetersPerMile converts great-circle metres into statute miles.
const MetersPerMile = 1609.34

// earthRadiusMeters is the mean Earth radius used by the haversine formula.
const earthRadiusMeters = 6371008.8

// Coordinate is a WGS84 latitude/longitude pair in degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Validate reports whether the coordinate lies within valid ranges.
func (c Coordinate) Validate() error {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lng) {
		return fmt.Errorf("%w: coordinate is NaN", ErrInvalidInput)
	}
	if c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("%w: latitude %f out of range", ErrInvalidInput, c.Lat)
	}
	if c.Lng < -180 || c.Lng > 180 {
		return fmt.Errorf("%w: longitude %f out of range", ErrInvalidInput, c.Lng)
	}
	return nil
}

// String formats the coordinate the way the Places API expects a location.
func (c Coordinate) String() string {
	return strconv.FormatFloat(c.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lng, 'f', -1, 64)
}

// ParseCoordinate parses "lat,lng".
func ParseCoordinate(s string) (Coordinate, error) {
	latStr, lngStr, ok := strings.Cut(strings.TrimSpace(s), ",")
	if !ok {
		return Coordinate{}, fmt.Errorf("%w: expected \"lat,lng\", got %q", ErrInvalidInput, s)
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return Coordinate{}, fmt.Errorf("%w: latitude: %v", ErrInvalidInput, err)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(lngStr), 64)
	if err != nil {
		return Coordinate{}, fmt.Errorf("%w: longitude: %v", ErrInvalidInput, err)
	}

	c := Coordinate{Lat: lat, Lng: lng}
	if err := c.Validate(); err != nil {
		return Coordinate{}, err
	}
	return c, nil
}

// DistanceMeters returns the great-circle distance between two coordinates.
func DistanceMeters(from, to Coordinate) float64 {
	lat1 := toRadians(from.Lat)
	lat2 := toRadians(to.Lat)
	dLat := toRadians(to.Lat - from.Lat)
	dLng := toRadians(to.Lng - from.Lng)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusMeters * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// DistanceMiles returns the great-circle distance in miles.
func DistanceMiles(from, to Coordinate) float64 {
	return DistanceMeters(from, to) / MetersPerMile
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
