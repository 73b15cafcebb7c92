// Package cli provides the cobra command tree for the courtfinder binary.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rdkhare/CourtFinder/internal/core/domain"
	"github.com/rdkhare/CourtFinder/internal/core/ports/driving"
	"github.com/rdkhare/CourtFinder/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	verbose  bool
	userFlag string
)

// SessionControl signs identities in and out.
type SessionControl interface {
	// Current returns the signed-in user id, or "" when signed out.
	Current() (string, error)
	Login(ctx context.Context, userID string) error
	Logout(ctx context.Context) error
}

// LocationControl reads and records the device location.
type LocationControl interface {
	Current() (domain.Coordinate, bool, error)
	Set(point domain.Coordinate) error
}

// CourtIndexer loads court records into a self-hosted search index.
type CourtIndexer interface {
	EnsureIndex(ctx context.Context) error
	Index(ctx context.Context, courts []domain.Court) (int, error)
}

// Runner is a long-running background task such as the session/location watcher.
type Runner interface {
	Run(ctx context.Context) error
}

// Services holds everything the commands need. Nil fields disable the
// commands that depend on them.
type Services struct {
	Courts   driving.CourtsService
	Settings driving.SettingsService
	Profile  driving.ProfileService
	Session  SessionControl
	Location LocationControl
	Indexer  CourtIndexer
	Watcher  Runner
}

var (
	courtsService   driving.CourtsService
	settingsService driving.SettingsService
	profileService  driving.ProfileService
	sessionControl  SessionControl
	locationControl LocationControl
	courtIndexer    CourtIndexer
	watcher         Runner
)

var rootCmd = &cobra.Command{
	Use:   "courtfinder",
	Short: "Find basketball courts nearby and keep your favourites",
	Long: `CourtFinder searches for basketball courts around your location,
caches the results, and keeps a per-user list of favourite courts.

Run 'courtfinder tui' for the interactive view or 'courtfinder mcp serve'
to expose courts to AI assistants.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&userFlag, "user", "",
		"user id for one-shot commands (defaults to the signed-in session)")
}

// SetServices installs the services used by all commands.
func SetServices(s Services) {
	courtsService = s.Courts
	settingsService = s.Settings
	profileService = s.Profile
	sessionControl = s.Session
	locationControl = s.Location
	courtIndexer = s.Indexer
	watcher = s.Watcher
}

// SetVersion sets the version reported by 'courtfinder version'.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with ctx available to every command.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func requireCourts() error {
	if courtsService == nil {
		return errors.New("courts service not configured")
	}
	return nil
}

// currentUser resolves --user or the signed-in session. "" means signed out.
func currentUser() (string, error) {
	if userFlag != "" {
		return userFlag, nil
	}
	if sessionControl == nil {
		return "", nil
	}
	return sessionControl.Current()
}

// applySession tells the courts service who is signed in so favourites are
// loaded and marked. It returns the user id, "" when signed out.
func applySession(ctx context.Context) (string, error) {
	userID, err := currentUser()
	if err != nil {
		return "", fmt.Errorf("reading session: %w", err)
	}
	if userID == "" {
		return "", nil
	}
	if err := courtsService.HandleSessionEvent(ctx, domain.LoggedIn(userID)); err != nil {
		return userID, fmt.Errorf("loading favourites: %w", err)
	}
	return userID, nil
}

// requireSession is applySession for commands that need a signed-in user.
func requireSession(ctx context.Context) (string, error) {
	userID, err := applySession(ctx)
	if err != nil {
		return "", err
	}
	if userID == "" {
		return "", fmt.Errorf("%w: run 'courtfinder login <user-id>' or pass --user", domain.ErrNoSession)
	}
	return userID, nil
}

// resolvePoint parses --at, falling back to the recorded location.
func resolvePoint(at string) (domain.Coordinate, error) {
	if at != "" {
		return domain.ParseCoordinate(at)
	}
	if locationControl != nil {
		point, ok, err := locationControl.Current()
		if err != nil {
			return domain.Coordinate{}, fmt.Errorf("reading location: %w", err)
		}
		if ok {
			return point, nil
		}
	}
	return domain.Coordinate{}, errors.New("no location: pass --at lat,lng or run 'courtfinder locate lat,lng'")
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
