package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	whoamiJSON bool
	avatarOut  string
)

var loginCmd = &cobra.Command{
	Use:   "login [user-id]",
	Short: "Sign in as a user",
	Long: `Records the signed-in user. Running watchers (tui, mcp serve) pick up
the change and load the user's favourites. A user with no document yet gets
a default profile.`,
	Args: cobra.ExactArgs(1),
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user's profile",
	Args:  cobra.NoArgs,
	RunE:  runWhoami,
}

var avatarCmd = &cobra.Command{
	Use:   "avatar",
	Short: "Download the signed-in user's profile photo",
	Args:  cobra.NoArgs,
	RunE:  runAvatar,
}

func init() {
	whoamiCmd.Flags().BoolVar(&whoamiJSON, "json", false, "output as JSON")
	avatarCmd.Flags().StringVarP(&avatarOut, "out", "o", "avatar.img", "file to write the image to")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(avatarCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	if sessionControl == nil {
		return errors.New("session control not configured")
	}

	userID := strings.TrimSpace(args[0])
	if err := sessionControl.Login(commandContext(cmd), userID); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	cmd.Printf("Signed in as %s.\n", userID)

	if profileService == nil {
		return nil
	}
	profile, created, err := profileService.EnsureProfile(commandContext(cmd), userID)
	if err != nil {
		cmd.PrintErrf("Warning: could not set up a profile: %v\n", err)
		return nil
	}
	if created {
		cmd.Printf("Created profile %q (username %s).\n", profile.DisplayName, profile.Username)
	}
	return nil
}

func runLogout(cmd *cobra.Command, _ []string) error {
	if sessionControl == nil {
		return errors.New("session control not configured")
	}

	if err := sessionControl.Logout(commandContext(cmd)); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}
	cmd.Println("Signed out.")
	return nil
}

func runWhoami(cmd *cobra.Command, _ []string) error {
	userID, err := currentUser()
	if err != nil {
		return fmt.Errorf("reading session: %w", err)
	}
	if userID == "" {
		cmd.Println("Not signed in.")
		return nil
	}
	if profileService == nil {
		cmd.Printf("Signed in as %s.\n", userID)
		return nil
	}

	profile, err := profileService.Profile(commandContext(cmd), userID)
	if err != nil {
		return fmt.Errorf("loading profile: %w", err)
	}

	if whoamiJSON {
		return outputJSON(cmd, profile)
	}

	cmd.Printf("User:     %s\n", profile.UserID)
	if profile.DisplayName != "" {
		cmd.Printf("Name:     %s\n", profile.DisplayName)
	}
	if profile.Username != "" {
		cmd.Printf("Username: %s\n", profile.Username)
	}
	if profile.PhotoURL != "" {
		cmd.Printf("Photo:    %s\n", profile.PhotoURL)
	}
	return nil
}

func runAvatar(cmd *cobra.Command, _ []string) error {
	if profileService == nil {
		return errors.New("profile service not configured")
	}
	userID, err := currentUser()
	if err != nil {
		return fmt.Errorf("reading session: %w", err)
	}
	if userID == "" {
		return errors.New("not signed in")
	}

	data, err := profileService.Avatar(commandContext(cmd), userID)
	if err != nil {
		return fmt.Errorf("loading avatar: %w", err)
	}
	if err := os.WriteFile(avatarOut, data, 0600); err != nil {
		return fmt.Errorf("writing avatar: %w", err)
	}
	cmd.Printf("Wrote %d bytes to %s\n", len(data), avatarOut)
	return nil
}
