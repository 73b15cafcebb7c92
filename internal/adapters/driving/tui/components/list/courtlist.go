// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rdkhare/CourtFinder/internal/adapters/driving/tui/styles"
	"github.com/rdkhare/CourtFinder/internal/core/domain"
)

const favoriteMark = "★"

// CourtList displays courts in a navigable list.
type CourtList struct {
	courts   []domain.Court
	selected int
	styles   *styles.Styles
	width    int
	height   int
	empty    string
}

// NewCourtList creates a new court list. empty is shown when there are no courts.
func NewCourtList(s *styles.Styles, empty string) *CourtList {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if empty == "" {
		empty = "No courts"
	}

	return &CourtList{
		styles: s,
		width:  80,
		height: 10,
		empty:  empty,
	}
}

// Init initialises the list.
func (r *CourtList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (r *CourtList) Update(msg tea.Msg) (*CourtList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			r.MoveUp()
		case "down", "j":
			r.MoveDown()
		}
	}
	return r, nil
}

// View renders the list.
func (r *CourtList) View() string {
	if len(r.courts) == 0 {
		return r.styles.Muted.Render(r.empty)
	}

	// Each court takes two lines.
	visibleCount := r.height / 2
	if visibleCount < 1 {
		visibleCount = 1
	}

	start := 0
	if r.selected >= visibleCount {
		start = r.selected - visibleCount + 1
	}
	end := start + visibleCount
	if end > len(r.courts) {
		end = len(r.courts)
	}

	lines := make([]string, 0, (end-start)*2)
	for i := start; i < end; i++ {
		lines = append(lines, r.renderCourt(i, &r.courts[i]))
	}
	return strings.Join(lines, "\n")
}

func (r *CourtList) renderCourt(index int, c *domain.Court) string {
	indicator := "  "
	if index == r.selected {
		indicator = "> "
	}

	mark := " "
	if c.IsFavorite {
		mark = favoriteMark
	}

	name := truncate(c.Name, r.width-20)
	distance := ""
	if c.DistanceMiles != nil {
		distance = fmt.Sprintf("%.2f mi", *c.DistanceMiles)
	}

	var title string
	if index == r.selected {
		title = r.styles.Selected.Render(fmt.Sprintf("%s%s %s", indicator, mark, name))
	} else {
		title = r.styles.Normal.Render(indicator) +
			r.styles.Favorite.Render(mark) + " " +
			r.styles.Normal.Render(name)
	}
	if distance != "" {
		title += "  " + r.styles.Distance.Render(distance)
	}

	address := r.styles.Muted.Render("    " + truncate(c.FormattedAddress, r.width-6))
	return title + "\n" + address
}

func truncate(s string, limit int) string {
	if limit < 10 {
		limit = 10
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-3]) + "..."
}

// SetCourts replaces the courts, keeping the selection on the same place
// when it is still present.
func (r *CourtList) SetCourts(courts []domain.Court) {
	var selectedID string
	if c := r.SelectedCourt(); c != nil {
		selectedID = c.PlaceID
	}

	r.courts = courts
	r.selected = 0
	if selectedID != "" {
		if i := domain.IndexOfCourt(courts, selectedID); i >= 0 {
			r.selected = i
		}
	}
}

// Courts returns the current courts.
func (r *CourtList) Courts() []domain.Court {
	return r.courts
}

// Selected returns the index of the selected court.
func (r *CourtList) Selected() int {
	return r.selected
}

// SelectedCourt returns the selected court, or nil if none.
func (r *CourtList) SelectedCourt() *domain.Court {
	if len(r.courts) == 0 || r.selected < 0 || r.selected >= len(r.courts) {
		return nil
	}
	return &r.courts[r.selected]
}

// MoveUp moves selection up.
func (r *CourtList) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

// MoveDown moves selection down.
func (r *CourtList) MoveDown() {
	if r.selected < len(r.courts)-1 {
		r.selected++
	}
}

// SetDimensions sets the component dimensions.
func (r *CourtList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

// Count returns the number of courts.
func (r *CourtList) Count() int {
	return len(r.courts)
}
