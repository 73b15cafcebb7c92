package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rdkhare/CourtFinder/internal/core/domain"
)

var profileJSON bool

// profileCmd groups the profile editing commands.
var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Edit the signed-in user's profile",
	Long: `Edit the display name, username and photo kept on your user document.
Favourites stored on the same document are never changed.`,
}

var profileSetNameCmd = &cobra.Command{
	Use:   "set-name <display name>",
	Short: "Change your display name",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.Join(args, " ")
		return updateProfile(cmd, domain.ProfileUpdate{DisplayName: &name})
	},
}

var profileSetUsernameCmd = &cobra.Command{
	Use:   "set-username <username>",
	Short: "Change your username",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return updateProfile(cmd, domain.ProfileUpdate{Username: &args[0]})
	},
}

var profileSetPhotoCmd = &cobra.Command{
	Use:   "set-photo [url]",
	Short: "Change your photo URL, or clear it with no argument",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var photo string
		if len(args) == 1 {
			photo = args[0]
		}
		return updateProfile(cmd, domain.ProfileUpdate{PhotoURL: &photo})
	},
}

func init() {
	profileCmd.PersistentFlags().BoolVar(&profileJSON, "json", false, "output as JSON")

	profileCmd.AddCommand(profileSetNameCmd)
	profileCmd.AddCommand(profileSetUsernameCmd)
	profileCmd.AddCommand(profileSetPhotoCmd)
	rootCmd.AddCommand(profileCmd)
}

func updateProfile(cmd *cobra.Command, update domain.ProfileUpdate) error {
	if profileService == nil {
		return errors.New("profile service not configured")
	}
	userID, err := currentUser()
	if err != nil {
		return fmt.Errorf("reading session: %w", err)
	}
	if userID == "" {
		return fmt.Errorf("%w: run 'courtfinder login <user-id>' or pass --user", domain.ErrNoSession)
	}

	profile, err := profileService.UpdateProfile(commandContext(cmd), userID, update)
	if err != nil {
		return fmt.Errorf("updating profile: %w", err)
	}

	if profileJSON {
		return outputJSON(cmd, profile)
	}
	cmd.Printf("Profile updated for %s.\n", profile.UserID)
	cmd.Printf("Name:     %s\n", profile.DisplayName)
	cmd.Printf("Username: %s\n", profile.Username)
	if profile.PhotoURL != "" {
		cmd.Printf("Photo:    %s\n", profile.PhotoURL)
	}
	return nil
}
