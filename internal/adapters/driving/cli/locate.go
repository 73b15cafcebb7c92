package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rdkhare/CourtFinder/internal/core/domain"
)

var locateCmd = &cobra.Command{
	Use:   "locate [lat,lng]",
	Short: "Show or record the current location",
	Long: `With no argument, prints the recorded location. With "lat,lng", records
it; running watchers fetch courts around the new point.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLocate,
}

func init() {
	rootCmd.AddCommand(locateCmd)
}

func runLocate(cmd *cobra.Command, args []string) error {
	if locationControl == nil {
		return errors.New("location control not configured")
	}

	if len(args) == 0 {
		point, ok, err := locationControl.Current()
		if err != nil {
			return fmt.Errorf("reading location: %w", err)
		}
		if !ok {
			cmd.Println("No location recorded.")
			return nil
		}
		cmd.Printf("Location: %s\n", point)
		return nil
	}

	point, err := domain.ParseCoordinate(args[0])
	if err != nil {
		return err
	}
	if err := locationControl.Set(point); err != nil {
		return fmt.Errorf("recording location: %w", err)
	}
	cmd.Printf("Location set to %s\n", point)
	return nil
}
