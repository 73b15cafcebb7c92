package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rdkhare/CourtFinder/internal/adapters/driving/tui/components/status"
	"github.com/rdkhare/CourtFinder/internal/adapters/driving/tui/keymap"
	"github.com/rdkhare/CourtFinder/internal/adapters/driving/tui/messages"
	"github.com/rdkhare/CourtFinder/internal/adapters/driving/tui/styles"
	"github.com/rdkhare/CourtFinder/internal/adapters/driving/tui/views/favorites"
	"github.com/rdkhare/CourtFinder/internal/adapters/driving/tui/views/nearby"
	"github.com/rdkhare/CourtFinder/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap

	nearbyView    *nearby.View
	favoritesView *favorites.View
	statusBar     *status.Bar

	// snapshot is the latest state received from the courts service.
	snapshot domain.CourtsSnapshot
	updates  <-chan domain.CourtsSnapshot
	cancel   func()

	currentView  messages.ViewType
	previousView messages.ViewType

	// profileFor is the user whose profile was last requested.
	profileFor string

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	bar := status.NewBar(s, km)
	bar.SetHints(km.NearbyHelp())

	return &App{
		ports:         ports,
		ctx:           context.Background(),
		styles:        s,
		keymap:        km,
		nearbyView:    nearby.NewView(s, km),
		favoritesView: favorites.NewView(s, km, ports.MaxFavorites),
		statusBar:     bar,
		currentView:   messages.ViewNearby,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model. It subscribes to courts snapshots.
func (a *App) Init() tea.Cmd {
	current, updates, cancel := a.ports.Courts.Subscribe()
	a.updates = updates
	a.cancel = cancel

	return tea.Batch(
		tea.SetWindowTitle("courtfinder"),
		func() tea.Msg { return messages.SnapshotUpdated{Snapshot: current} },
	)
}

// Close stops the snapshot subscription.
func (a *App) Close() {
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
}

func waitForSnapshot(updates <-chan domain.CourtsSnapshot) tea.Cmd {
	if updates == nil {
		return nil
	}
	return func() tea.Msg {
		snap, ok := <-updates
		if !ok {
			return messages.SubscriptionClosed{}
		}
		return messages.SnapshotUpdated{Snapshot: snap}
	}
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		a.ready = true
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case messages.SnapshotUpdated:
		return a, tea.Batch(a.applySnapshot(msg.Snapshot), waitForSnapshot(a.updates))

	case messages.SubscriptionClosed:
		a.updates = nil
		return a, nil

	case messages.ViewChanged:
		a.switchTo(msg.View)
		return a, nil

	case messages.FavoriteToggleRequested:
		a.statusBar.SetState(status.StateLoading)
		return a, a.toggleFavorite(msg.Court)

	case messages.FavoriteToggled:
		a.handleToggled(msg)
		return a, nil

	case messages.RefreshRequested:
		return a, a.refresh()

	case messages.FetchCompleted:
		a.finish(msg.Err, "Courts refreshed")
		return a, nil

	case messages.ClearCacheRequested:
		a.ports.Courts.ClearCache()
		a.statusBar.Clear()
		a.statusBar.SetMessage("Cache cleared")
		return a, nil

	case messages.CleanupRequested:
		a.statusBar.SetState(status.StateLoading)
		return a, a.cleanup()

	case messages.CleanupCompleted:
		a.finish(msg.Err, "Duplicates removed")
		return a, nil

	case messages.ProfileLoaded:
		if msg.Err == nil && msg.Profile.UserID == a.snapshot.UserID && msg.Profile.DisplayName != "" {
			a.statusBar.SetUser(msg.Profile.DisplayName)
		}
		return a, nil

	case messages.ErrorOccurred:
		a.statusBar.SetError(msg.Err)
		return a, nil

	case messages.Quit:
		a.Close()
		return a, tea.Quit
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := msg.String()

	if k == "ctrl+c" {
		a.Close()
		return a, tea.Quit
	}

	// Keys go to the filter input while it has focus.
	if a.currentView == messages.ViewNearby && a.nearbyView.Filtering() {
		var cmd tea.Cmd
		a.nearbyView, cmd = a.nearbyView.Update(msg)
		return a, cmd
	}

	switch {
	case keymap.Matches(k, a.keymap.Quit):
		a.Close()
		return a, tea.Quit

	case keymap.Matches(k, a.keymap.Help):
		if a.currentView == messages.ViewHelp {
			a.switchTo(a.previousView)
		} else {
			a.switchTo(messages.ViewHelp)
		}
		return a, nil

	case keymap.Matches(k, a.keymap.SwitchView):
		if a.currentView == messages.ViewFavorites {
			a.switchTo(messages.ViewNearby)
		} else {
			a.switchTo(messages.ViewFavorites)
		}
		return a, nil
	}

	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewNearby:
		a.nearbyView, cmd = a.nearbyView.Update(msg)
	case messages.ViewFavorites:
		a.favoritesView, cmd = a.favoritesView.Update(msg)
	case messages.ViewHelp:
		if keymap.Matches(k, a.keymap.Back) {
			a.switchTo(a.previousView)
		}
	}
	return a, cmd
}

func (a *App) switchTo(view messages.ViewType) {
	if view == a.currentView {
		return
	}
	if a.currentView != messages.ViewHelp {
		a.previousView = a.currentView
	}
	a.currentView = view

	switch view {
	case messages.ViewNearby:
		a.statusBar.SetHints(a.keymap.NearbyHelp())
		a.statusBar.Clear()
	case messages.ViewFavorites:
		a.statusBar.SetHints(a.keymap.FavoritesHelp())
		a.statusBar.Clear()
	case messages.ViewHelp:
		a.statusBar.SetHints(a.keymap.ShortHelp())
		a.statusBar.SetState(status.StateHelp)
	}
}

func (a *App) applySnapshot(snap domain.CourtsSnapshot) tea.Cmd {
	a.snapshot = snap
	a.nearbyView.SetSnapshot(snap)
	a.favoritesView.SetSnapshot(snap)
	a.statusBar.SetCacheState(a.ports.Courts.CacheState().String())

	if snap.UserID != a.profileFor {
		a.profileFor = snap.UserID
		a.statusBar.SetUser(snap.UserID)
		return a.loadProfile(snap.UserID)
	}
	return nil
}

func (a *App) loadProfile(userID string) tea.Cmd {
	if a.ports.Profile == nil || userID == "" {
		return nil
	}
	ctx := a.ctx
	return func() tea.Msg {
		profile, err := a.ports.Profile.Profile(ctx, userID)
		return messages.ProfileLoaded{Profile: profile, Err: err}
	}
}

func (a *App) toggleFavorite(court domain.Court) tea.Cmd {
	ctx := a.ctx
	courts := a.ports.Courts
	return func() tea.Msg {
		favorite, err := courts.ToggleFavorite(ctx, court)
		return messages.FavoriteToggled{
			PlaceID:  court.PlaceID,
			Name:     court.Name,
			Favorite: favorite,
			Err:      err,
		}
	}
}

func (a *App) handleToggled(msg messages.FavoriteToggled) {
	switch {
	case errors.Is(msg.Err, domain.ErrCapacityExceeded):
		a.statusBar.SetError(errors.New("favourites are full"))
	case errors.Is(msg.Err, domain.ErrNoSession):
		a.statusBar.SetError(errors.New("sign in to keep favourites"))
	case msg.Err != nil:
		a.statusBar.SetError(msg.Err)
	case msg.Favorite:
		a.statusBar.Clear()
		a.statusBar.SetMessage("Added " + msg.Name)
	default:
		a.statusBar.Clear()
		a.statusBar.SetMessage("Removed " + msg.Name)
	}
}

func (a *App) refresh() tea.Cmd {
	origin := a.snapshot.Origin
	if origin == nil {
		a.statusBar.SetError(ErrNoLocation)
		return nil
	}

	a.statusBar.SetState(status.StateLoading)
	ctx := a.ctx
	courts := a.ports.Courts
	point := *origin
	return func() tea.Msg {
		return messages.FetchCompleted{Err: courts.RefreshCourts(ctx, point)}
	}
}

func (a *App) cleanup() tea.Cmd {
	ctx := a.ctx
	courts := a.ports.Courts
	return func() tea.Msg {
		return messages.CleanupCompleted{Err: courts.CleanupDuplicateFavorites(ctx)}
	}
}

func (a *App) finish(err error, success string) {
	if err != nil {
		a.statusBar.SetError(err)
		return
	}
	a.statusBar.Clear()
	a.statusBar.SetMessage(success)
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Loading..."
	}

	var body string
	switch a.currentView {
	case messages.ViewFavorites:
		body = a.favoritesView.View()
	case messages.ViewHelp:
		body = a.helpView()
	default:
		body = a.nearbyView.View()
	}

	bodyHeight := a.height - 3
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	body = lipgloss.NewStyle().Height(bodyHeight).Render(body)

	return lipgloss.JoinVertical(lipgloss.Left, a.tabsView(), body, a.statusBar.View())
}

func (a *App) tabsView() string {
	tab := func(label string, view messages.ViewType) string {
		if a.currentView == view {
			return a.styles.ActiveTab.Render(label)
		}
		return a.styles.Tab.Render(label)
	}

	favLabel := fmt.Sprintf("Favourites (%d)", len(a.snapshot.Favorites))
	return a.styles.Title.Render("courtfinder") + " " +
		tab("Nearby", messages.ViewNearby) + tab(favLabel, messages.ViewFavorites)
}

func (a *App) helpView() string {
	lines := []string{a.styles.Subtitle.Render("Keys"), ""}
	for _, group := range a.keymap.FullHelp() {
		for _, b := range group {
			h := b.Help()
			lines = append(lines, fmt.Sprintf("  %-10s %s", h.Key, a.styles.Muted.Render(h.Desc)))
		}
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// SetDimensions sets the terminal dimensions on the app and its views.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.nearbyView.SetDimensions(width, height-3)
	a.favoritesView.SetDimensions(width, height-3)
	a.statusBar.SetWidth(width)
}

// CurrentView returns the active view.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Snapshot returns the last snapshot received.
func (a *App) Snapshot() domain.CourtsSnapshot {
	return a.snapshot
}

// StatusBar returns the status bar, for inspection.
func (a *App) StatusBar() *status.Bar {
	return a.statusBar
}
