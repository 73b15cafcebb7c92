// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/rdkhare/CourtFinder/internal/core/domain"
)

// SnapshotUpdated carries a new courts snapshot from the subscription.
type SnapshotUpdated struct {
	Snapshot domain.CourtsSnapshot
}

// SubscriptionClosed signals that the snapshot channel was closed.
type SubscriptionClosed struct{}

// FetchCompleted reports the end of a nearby-courts fetch.
type FetchCompleted struct {
	Err error
}

// FavoriteToggleRequested asks the app to toggle a court.
type FavoriteToggleRequested struct {
	Court domain.Court
}

// FavoriteToggled reports a toggle result.
type FavoriteToggled struct {
	PlaceID  string
	Name     string
	Favorite bool
	Err      error
}

// RefreshRequested asks the app to refetch courts around the last origin.
type RefreshRequested struct{}

// ClearCacheRequested asks the app to drop cached courts.
type ClearCacheRequested struct{}

// CleanupRequested asks the app to remove duplicate favourites.
type CleanupRequested struct{}

// CleanupCompleted reports the end of a duplicate cleanup.
type CleanupCompleted struct {
	Err error
}

// ProfileLoaded carries the signed-in user's profile.
type ProfileLoaded struct {
	Profile domain.Profile
	Err     error
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewNearby lists courts around the current location.
	ViewNearby ViewType = iota
	// ViewFavorites lists the signed-in user's favourites.
	ViewFavorites
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewNearby:
		return "nearby"
	case ViewFavorites:
		return "favorites"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
