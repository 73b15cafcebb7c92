package domain

import (
	"math"
	"sort"
	"strings"
)

// DedupeAndSort keeps the first court seen for each PlaceID and orders the
// survivors by Name ascending (byte-wise). The result is a new slice.
func DedupeAndSort(courts []Court) []Court {
	seen := make(map[string]struct{}, len(courts))
	out := make([]Court, 0, len(courts))
	for i := range courts {
		if _, dup := seen[courts[i].PlaceID]; dup {
			continue
		}
		seen[courts[i].PlaceID] = struct{}{}
		out = append(out, courts[i])
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}

// HasDuplicates reports whether any PlaceID appears more than once.
func HasDuplicates(courts []Court) bool {
	seen := make(map[string]struct{}, len(courts))
	for i := range courts {
		if _, dup := seen[courts[i].PlaceID]; dup {
			return true
		}
		seen[courts[i].PlaceID] = struct{}{}
	}
	return false
}

// SortByDistance returns a copy of courts ordered nearest first.
// Courts without a computed distance sort last.
func SortByDistance(courts []Court) []Court {
	out := CloneCourts(courts)
	sort.SliceStable(out, func(i, j int) bool {
		return distanceOrInf(out[i]) < distanceOrInf(out[j])
	})
	return out
}

func distanceOrInf(c Court) float64 {
	if c.DistanceMiles == nil {
		return math.Inf(1)
	}
	return *c.DistanceMiles
}

// FilterCourts keeps courts whose name or address contains query,
// ignoring case. An empty query keeps everything.
func FilterCourts(courts []Court, query string) []Court {
	query = strings.TrimSpace(query)
	if query == "" {
		return CloneCourts(courts)
	}

	needle := strings.ToLower(query)
	out := make([]Court, 0, len(courts))
	for i := range courts {
		if strings.Contains(strings.ToLower(courts[i].Name), needle) ||
			strings.Contains(strings.ToLower(courts[i].FormattedAddress), needle) {
			out = append(out, courts[i])
		}
	}
	return out
}

// MarkFavorites sets IsFavorite on each court according to membership in favorites.
func MarkFavorites(courts, favorites []Court) []Court {
	ids := make(map[string]struct{}, len(favorites))
	for i := range favorites {
		ids[favorites[i].PlaceID] = struct{}{}
	}

	out := CloneCourts(courts)
	for i := range out {
		_, fav := ids[out[i].PlaceID]
		out[i].IsFavorite = fav
	}
	return out
}
