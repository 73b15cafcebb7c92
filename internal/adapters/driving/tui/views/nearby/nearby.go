// Package nearby provides the nearby-courts view for the TUI.
package nearby

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rdkhare/CourtFinder/internal/adapters/driving/tui/components/input"
	"github.com/rdkhare/CourtFinder/internal/adapters/driving/tui/components/list"
	"github.com/rdkhare/CourtFinder/internal/adapters/driving/tui/keymap"
	"github.com/rdkhare/CourtFinder/internal/adapters/driving/tui/messages"
	"github.com/rdkhare/CourtFinder/internal/adapters/driving/tui/styles"
	"github.com/rdkhare/CourtFinder/internal/core/domain"
)

// View lists cached courts nearest first with an optional filter.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	list     *list.CourtList
	filter   *input.FilterInput
	snapshot domain.CourtsSnapshot
	width    int
	height   int
}

// NewView creates a new nearby view.
func NewView(s *styles.Styles, km *keymap.KeyMap) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles: s,
		keymap: km,
		list:   list.NewCourtList(s, "No courts yet. Waiting for a location..."),
		filter: input.NewFilterInput(s),
	}
}

// SetSnapshot shows the courts from snap.
func (v *View) SetSnapshot(snap domain.CourtsSnapshot) {
	v.snapshot = snap
	v.apply()
}

func (v *View) apply() {
	v.list.SetCourts(v.snapshot.Nearby(v.filter.Value()))
}

// Filtering reports whether the filter input has focus.
func (v *View) Filtering() bool {
	return v.filter.Focused()
}

// Courts returns the courts currently shown.
func (v *View) Courts() []domain.Court {
	return v.list.Courts()
}

// SelectedCourt returns the highlighted court, or nil.
func (v *View) SelectedCourt() *domain.Court {
	return v.list.SelectedCourt()
}

// Update handles messages for the nearby view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		if v.filter.Focused() {
			return v.handleFilterKey(msg)
		}
		return v.handleKey(msg)
	}

	return v, nil
}

func (v *View) handleFilterKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case keymap.Matches(msg.String(), v.keymap.Apply):
		v.filter.Blur()
		return v, nil
	case keymap.Matches(msg.String(), v.keymap.Back):
		v.filter.Reset()
		v.filter.Blur()
		v.apply()
		return v, nil
	}

	var cmd tea.Cmd
	v.filter, cmd = v.filter.Update(msg)
	v.apply()
	return v, cmd
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()

	switch {
	case keymap.Matches(k, v.keymap.Filter):
		return v, v.filter.Focus()

	case keymap.Matches(k, v.keymap.Toggle):
		if c := v.list.SelectedCourt(); c != nil {
			court := *c
			return v, func() tea.Msg {
				return messages.FavoriteToggleRequested{Court: court}
			}
		}

	case keymap.Matches(k, v.keymap.Refresh):
		return v, func() tea.Msg { return messages.RefreshRequested{} }

	case keymap.Matches(k, v.keymap.ClearCache):
		return v, func() tea.Msg { return messages.ClearCacheRequested{} }

	case keymap.Matches(k, v.keymap.Back):
		if v.filter.Value() != "" {
			v.filter.Reset()
			v.apply()
		}

	default:
		v.list.Update(msg)
	}

	return v, nil
}

// View renders the nearby view.
func (v *View) View() string {
	var b strings.Builder

	if v.snapshot.Origin != nil {
		b.WriteString(v.styles.Subtitle.Render(fmt.Sprintf("Courts near %s", *v.snapshot.Origin)))
		if !v.snapshot.LastUpdated.IsZero() {
			b.WriteString(v.styles.Muted.Render(
				fmt.Sprintf("  updated %s", v.snapshot.LastUpdated.Format("15:04"))))
		}
	} else {
		b.WriteString(v.styles.Subtitle.Render("Courts"))
	}
	b.WriteString("\n")

	if v.filter.Focused() || v.filter.Value() != "" {
		b.WriteString(v.filter.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(v.list.View())

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.filter.SetWidth(width)
	v.list.SetDimensions(width, height-4)
}
