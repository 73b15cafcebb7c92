package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rdkhare/CourtFinder/internal/adapters/driving/tui"
	"github.com/rdkhare/CourtFinder/internal/logger"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for CourtFinder.

The TUI shows courts near your recorded location and your favourites,
updating live as the location file or session changes.

Controls:
  ↑/k, ↓/j  - Navigate courts
  space/f   - Toggle favourite
  /         - Filter by name or address
  r         - Refresh from the search provider
  c         - Clear the cached courts
  d         - Remove duplicate favourites
  tab       - Switch between nearby and favourites
  ?         - Toggle help
  q         - Quit`,
	RunE: runTUI,
}

var tuiLog = logger.Component("tui")

// runProgram runs the bubbletea program. Replaced in tests.
var runProgram = func(app *tui.App) error {
	_, err := tea.NewProgram(app, tea.WithAltScreen()).Run()
	return err
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) (err error) {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("TUI panic: %v", r)
		}
	}()

	if err := requireCourts(); err != nil {
		return err
	}

	ports := &tui.Ports{
		Courts:  courtsService,
		Profile: profileService,
	}
	if settingsService != nil {
		if settings, err := settingsService.Get(); err == nil {
			ports.MaxFavorites = settings.Favorites.Max
		}
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	defer app.Close()

	ctx, cancel := context.WithCancel(commandContext(cmd))
	defer cancel()
	app.WithContext(ctx)

	// Log lines would corrupt the alternate screen.
	logger.SetOutput(io.Discard)
	defer logger.SetOutput(os.Stderr)

	startWatcher(ctx, tuiLog)

	if err := runProgram(app); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
