package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rdkhare/CourtFinder/internal/core/domain"
)

var (
	favoritesJSON bool
	toggleAt      string
)

var favoritesCmd = &cobra.Command{
	Use:     "favorites",
	Aliases: []string{"fav"},
	Short:   "Manage favourite courts",
	Long: `List, toggle and clean up the signed-in user's favourite courts.

Favourites are stored on the user's document and are limited in number.`,
	Args: cobra.NoArgs,
	RunE: runFavoritesList,
}

var favoritesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List favourite courts",
	Args:  cobra.NoArgs,
	RunE:  runFavoritesList,
}

var favoritesToggleCmd = &cobra.Command{
	Use:   "toggle [place-id]",
	Short: "Add a court to favourites or remove it",
	Long: `Adds the court to favourites, or removes it if it is already one.

The court must be a current favourite or appear in the nearby results for
--at (or the recorded location).`,
	Args: cobra.ExactArgs(1),
	RunE: runFavoritesToggle,
}

var favoritesCleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Remove duplicate favourites",
	Args:  cobra.NoArgs,
	RunE:  runFavoritesCleanup,
}

func init() {
	favoritesCmd.PersistentFlags().BoolVar(&favoritesJSON, "json", false, "output as JSON")
	favoritesToggleCmd.Flags().StringVar(&toggleAt, "at", "", "search point as lat,lng used to find the court")

	favoritesCmd.AddCommand(favoritesListCmd)
	favoritesCmd.AddCommand(favoritesToggleCmd)
	favoritesCmd.AddCommand(favoritesCleanupCmd)
	rootCmd.AddCommand(favoritesCmd)
}

func runFavoritesList(cmd *cobra.Command, _ []string) error {
	if err := requireCourts(); err != nil {
		return err
	}
	if _, err := requireSession(commandContext(cmd)); err != nil {
		return err
	}

	favs := courtsService.FavoriteCourts()
	if favoritesJSON {
		return outputCourtsJSON(cmd, favs)
	}
	outputCourtsTable(cmd, favs, "No favourite courts yet.")
	return nil
}

func runFavoritesToggle(cmd *cobra.Command, args []string) error {
	if err := requireCourts(); err != nil {
		return err
	}
	ctx := commandContext(cmd)
	if _, err := requireSession(ctx); err != nil {
		return err
	}

	placeID := args[0]
	court, err := lookupCourt(cmd, placeID)
	if err != nil {
		return err
	}

	favorite, err := courtsService.ToggleFavorite(ctx, court)
	if errors.Is(err, domain.ErrCapacityExceeded) {
		return fmt.Errorf("favourites are full: remove one before adding %s", court.Name)
	}
	if err != nil {
		return fmt.Errorf("toggle failed: %w", err)
	}

	if favoritesJSON {
		return outputJSON(cmd, map[string]any{"place_id": placeID, "favorite": favorite})
	}
	if favorite {
		cmd.Printf("Added %s to favourites.\n", court.Name)
	} else {
		cmd.Printf("Removed %s from favourites.\n", court.Name)
	}
	return nil
}

// lookupCourt finds placeID among favourites, then among nearby courts.
func lookupCourt(cmd *cobra.Command, placeID string) (domain.Court, error) {
	snap := courtsService.Snapshot()
	if i := domain.IndexOfCourt(snap.Favorites, placeID); i >= 0 {
		return snap.Favorites[i], nil
	}

	point, err := resolvePoint(toggleAt)
	if err != nil {
		return domain.Court{}, fmt.Errorf("%s is not a favourite and %w", placeID, err)
	}
	if err := courtsService.FetchCourtsIfNeeded(commandContext(cmd), point); err != nil {
		return domain.Court{}, fmt.Errorf("search failed: %w", err)
	}

	courts := courtsService.Courts()
	if i := domain.IndexOfCourt(courts, placeID); i >= 0 {
		return courts[i], nil
	}
	return domain.Court{}, fmt.Errorf("%w: no court %s near %s", domain.ErrNotFound, placeID, point)
}

func runFavoritesCleanup(cmd *cobra.Command, _ []string) error {
	if err := requireCourts(); err != nil {
		return err
	}
	ctx := commandContext(cmd)
	if _, err := requireSession(ctx); err != nil {
		return err
	}

	before := len(courtsService.FavoriteCourts())
	if err := courtsService.CleanupDuplicateFavorites(ctx); err != nil {
		return fmt.Errorf("cleanup failed: %w", err)
	}
	after := len(courtsService.FavoriteCourts())

	cmd.Printf("Favourites cleaned up: %d court(s) kept.\n", after)
	if before != after {
		cmd.Printf("Local list changed from %d to %d.\n", before, after)
	}
	return nil
}
