package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	nearbyAt      string
	nearbyFilter  string
	nearbyRefresh bool
	nearbyJSON    bool
)

var nearbyCmd = &cobra.Command{
	Use:   "nearby",
	Short: "List basketball courts near a location",
	Long: `Lists basketball courts around a point, nearest first.

The point comes from --at or, if omitted, from the last location recorded
with 'courtfinder locate'. Results are cached and reused until they go
stale; use --refresh to query the provider anyway.`,
	Args: cobra.NoArgs,
	RunE: runNearby,
}

func init() {
	nearbyCmd.Flags().StringVar(&nearbyAt, "at", "", "search point as lat,lng")
	nearbyCmd.Flags().StringVarP(&nearbyFilter, "filter", "f", "", "only courts whose name or address contains this text")
	nearbyCmd.Flags().BoolVar(&nearbyRefresh, "refresh", false, "ignore cached results")
	nearbyCmd.Flags().BoolVar(&nearbyJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(nearbyCmd)
}

func runNearby(cmd *cobra.Command, _ []string) error {
	if err := requireCourts(); err != nil {
		return err
	}
	ctx := commandContext(cmd)

	point, err := resolvePoint(nearbyAt)
	if err != nil {
		return err
	}

	// Favourites only mark results; a store failure must not hide them.
	if _, err := applySession(ctx); err != nil {
		cmd.PrintErrf("Warning: %v\n", err)
	}

	if nearbyRefresh {
		err = courtsService.RefreshCourts(ctx, point)
	} else {
		err = courtsService.FetchCourtsIfNeeded(ctx, point)
	}
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	courts := courtsService.NearbyCourts(nearbyFilter)
	if nearbyJSON {
		return outputCourtsJSON(cmd, courts)
	}

	cmd.Printf("Courts near %s (%s):\n", point, courtsService.CacheState())
	cmd.Println()
	outputCourtsTable(cmd, courts, "No courts found.")
	return nil
}
