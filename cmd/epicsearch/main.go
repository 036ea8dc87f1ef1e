// Command epicsearch is a terminal client for the EPIC document search API.
package main

import (
	"fmt"
	"os"

	"github.com/epic-search/epicsearch-cli/internal/adapters/driven/api"
	configfile "github.com/epic-search/epicsearch-cli/internal/adapters/driven/config/file"
	"github.com/epic-search/epicsearch-cli/internal/adapters/driven/geo"
	"github.com/epic-search/epicsearch-cli/internal/adapters/driven/storage/sqlite"
	"github.com/epic-search/epicsearch-cli/internal/adapters/driving/cli"
	"github.com/epic-search/epicsearch-cli/internal/core/services"
	"github.com/epic-search/epicsearch-cli/internal/logger"
)

// Build-time variables, set via -ldflags.
var (
	version = "dev"
)

const defaultAPIURL = "https://epicsearch.example.com/api"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configStore, err := configfile.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("initialising config store: %w", err)
	}

	cacheStore, err := sqlite.NewStore("")
	if err != nil {
		return fmt.Errorf("initialising cache store: %w", err)
	}
	defer cacheStore.Close() //nolint:errcheck

	baseURL := os.Getenv("EPICSEARCH_API_URL")
	if baseURL == "" {
		baseURL = configStore.GetString("api.url")
	}
	if baseURL == "" {
		baseURL = defaultAPIURL
	}

	token := os.Getenv("EPICSEARCH_API_TOKEN")
	if token == "" {
		token = configStore.GetString("api.token")
	}

	client := api.NewClient(baseURL).WithToken(token)

	locationService := services.NewLocationService(
		configStore,
		cacheStore,
		geo.NewLocator(),
		geo.NewGeocoder(),
	)
	defer locationService.Close() //nolint:errcheck

	// Pick up consent changes made by editing the config file directly.
	watcher := configfile.NewWatcher(configStore.Path())
	if err := locationService.Watch(watcher); err != nil {
		logger.Warn("Config watcher unavailable: %v", err)
	}

	cli.SetServices(&cli.Services{
		Search:        services.NewSearchService(client, locationService),
		ReferenceData: services.NewReferenceDataService(client, cacheStore),
		Location:      locationService,
		Feedback:      services.NewFeedbackService(client),
	})
	cli.SetVersion(version)

	return cli.Execute()
}
