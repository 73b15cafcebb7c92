package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rdkhare/CourtFinder/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the search provider, document store, session
source and cache options. Settings live in ~/.courtfinder/config.toml.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration key",
	Long: `Set a single configuration key, for example:

  courtfinder settings set store.backend redis
  courtfinder settings set favorites.max 20
  courtfinder settings set session.kafka.brokers k1:9092,k2:9092

When the value is omitted for a secret such as search.google.api_key, it is
read from the terminal without echo.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Search]")
	cmd.Printf("  Provider: %s\n", settings.Search.Provider.Description())
	cmd.Printf("  Query: %s\n", settings.Search.Query)
	if settings.Search.RadiusMeters > 0 {
		cmd.Printf("  Radius: %d m\n", settings.Search.RadiusMeters)
	}
	switch settings.Search.Provider {
	case domain.SearchProviderGoogle:
		if settings.Search.GoogleAPIKey != "" {
			cmd.Printf("  API Key: %s\n", maskAPIKey(settings.Search.GoogleAPIKey))
		} else {
			cmd.Printf("  API Key: (not set)\n")
		}
		cmd.Printf("  Rate limit: %d req/s\n", settings.Search.GoogleRequestsPerSecond)
	case domain.SearchProviderElastic:
		cmd.Printf("  URL: %s\n", settings.Search.ElasticURL)
		cmd.Printf("  Index: %s\n", settings.Search.ElasticIndex)
	}
	cmd.Println()

	cmd.Println("[Store]")
	cmd.Printf("  Backend: %s\n", settings.Store.Backend)
	switch settings.Store.Backend {
	case domain.StoreBackendRedis:
		cmd.Printf("  URL: %s\n", settings.Store.RedisURL)
	case domain.StoreBackendFirestore:
		cmd.Printf("  Project: %s\n", valueOrUnset(settings.Store.FirestoreProjectID))
		cmd.Printf("  Collection: %s\n", settings.Store.FirestoreCollection)
	case domain.StoreBackendSQLite:
		cmd.Printf("  Directory: %s\n", valueOrDefault(settings.Store.SQLiteDir))
	}
	cmd.Println()

	cmd.Println("[Favourites]")
	cmd.Printf("  Max: %d\n", settings.Favorites.Max)
	cmd.Printf("  Cache freshness: %s\n", settings.Cache.FreshnessWindow)
	cmd.Println()

	cmd.Println("[Session]")
	cmd.Printf("  Source: %s\n", settings.Session.Source)
	if settings.Session.Source == domain.SessionSourceKafka {
		cmd.Printf("  Brokers: %s\n", strings.Join(settings.Session.KafkaBrokers, ","))
		cmd.Printf("  Topic: %s\n", settings.Session.KafkaTopic)
	} else {
		cmd.Printf("  File: %s\n", valueOrDefault(settings.Session.File))
	}
	cmd.Println()

	if err := settings.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'courtfinder settings set' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	if values := settingsService.Values(); len(values) > 0 && verbose {
		cmd.Println()
		cmd.Println("[Stored keys]")
		keys := make([]string, 0, len(values))
		for k := range values {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			v := fmt.Sprint(values[k])
			if isSecretKey(k) {
				v = maskAPIKey(v)
			}
			cmd.Printf("  %s = %s\n", k, v)
		}
	}

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key := args[0]
	var value string
	switch {
	case len(args) == 2:
		value = args[1]
	case isSecretKey(key):
		cmd.Printf("Enter value for %s: ", key)
		value = readPassword()
		cmd.Println()
	default:
		return fmt.Errorf("missing value for %s", key)
	}

	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to save setting: %w", err)
	}

	shown := value
	if isSecretKey(key) {
		shown = maskAPIKey(value)
	}
	cmd.Printf("%s = %s\n", key, shown)
	return nil
}

func isSecretKey(key string) bool {
	return strings.HasSuffix(key, "api_key")
}

func valueOrUnset(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}

func valueOrDefault(s string) string {
	if s == "" {
		return "(default)"
	}
	return s
}

// readPassword reads a line from stdin without echo when it is a terminal.
//
//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
