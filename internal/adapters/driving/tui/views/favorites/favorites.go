// Package favorites provides the favourite-courts view for the TUI.
package favorites

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rdkhare/CourtFinder/internal/adapters/driving/tui/components/list"
	"github.com/rdkhare/CourtFinder/internal/adapters/driving/tui/keymap"
	"github.com/rdkhare/CourtFinder/internal/adapters/driving/tui/messages"
	"github.com/rdkhare/CourtFinder/internal/adapters/driving/tui/styles"
	"github.com/rdkhare/CourtFinder/internal/core/domain"
)

// View lists the signed-in user's favourites by name.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	list     *list.CourtList
	userID   string
	capacity int
	width    int
	height   int
}

// NewView creates a new favourites view. capacity is the favourites limit shown in the header.
func NewView(s *styles.Styles, km *keymap.KeyMap, capacity int) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	if capacity <= 0 {
		capacity = domain.DefaultMaxFavorites
	}

	return &View{
		styles:   s,
		keymap:   km,
		list:     list.NewCourtList(s, "No favourite courts yet."),
		capacity: capacity,
	}
}

// SetSnapshot shows the favourites from snap.
func (v *View) SetSnapshot(snap domain.CourtsSnapshot) {
	v.userID = snap.UserID

	favs := domain.CloneCourts(snap.Favorites)
	for i := range favs {
		favs[i].IsFavorite = true
		// Distances are only known for courts in the current results.
		if j := domain.IndexOfCourt(snap.Courts, favs[i].PlaceID); j >= 0 {
			favs[i].DistanceMiles = snap.Courts[j].DistanceMiles
		}
	}
	v.list.SetCourts(favs)
}

// Courts returns the favourites shown.
func (v *View) Courts() []domain.Court {
	return v.list.Courts()
}

// Update handles messages for the favourites view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		k := msg.String()
		switch {
		case keymap.Matches(k, v.keymap.Toggle):
			if c := v.list.SelectedCourt(); c != nil {
				court := *c
				return v, func() tea.Msg {
					return messages.FavoriteToggleRequested{Court: court}
				}
			}
		case keymap.Matches(k, v.keymap.Cleanup):
			return v, func() tea.Msg { return messages.CleanupRequested{} }
		default:
			v.list.Update(msg)
		}
	}

	return v, nil
}

// View renders the favourites view.
func (v *View) View() string {
	var b strings.Builder

	if v.userID == "" {
		b.WriteString(v.styles.Subtitle.Render("Favourites"))
		b.WriteString("\n\n")
		b.WriteString(v.styles.Muted.Render("Sign in with 'courtfinder login <user-id>' to keep favourites."))
		return b.String()
	}

	b.WriteString(v.styles.Subtitle.Render(
		fmt.Sprintf("Favourites (%d/%d)", v.list.Count(), v.capacity)))
	b.WriteString("\n\n")
	b.WriteString(v.list.View())

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.list.SetDimensions(width, height-3)
}
