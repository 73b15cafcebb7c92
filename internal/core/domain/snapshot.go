package domain

import "time"

// CourtsSnapshot is an immutable view of the manager's observable state.
// Courts and Favorites are always published together.
type CourtsSnapshot struct {
	Courts      []Court
	Favorites   []Court
	UserID      string
	Origin      *Coordinate
	LastUpdated time.Time
	Version     uint64
}

// IsFavorite reports whether placeID is in the snapshot's favourites.
func (s CourtsSnapshot) IsFavorite(placeID string) bool {
	return ContainsCourt(s.Favorites, placeID)
}

// Nearby returns the snapshot's courts nearest first, filtered by query.
func (s CourtsSnapshot) Nearby(query string) []Court {
	return SortByDistance(FilterCourts(s.Courts, query))
}
