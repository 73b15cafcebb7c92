// Command courtfinder finds basketball courts near the current location and
// keeps a per-user list of favourites.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/rdkhare/CourtFinder/internal/adapters/driven/config/file"
	"github.com/rdkhare/CourtFinder/internal/adapters/driving/cli"
	"github.com/rdkhare/CourtFinder/internal/core/services"
	"github.com/rdkhare/CourtFinder/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is normal.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dir, err := file.DefaultDir()
	if err != nil {
		return err
	}
	configStore, err := file.NewConfigStore(dir)
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("reading settings: %w", err)
	}
	applyEnv(settings, os.LookupEnv)
	if err := settings.Validate(); err != nil {
		logger.Warn("settings: %v", err)
	}

	app, err := build(ctx, dir, settings)
	if err != nil {
		return err
	}
	defer app.Close()

	app.services.Settings = settingsService
	cli.SetServices(app.services)
	cli.SetVersion(version)

	return cli.ExecuteContext(ctx)
}
