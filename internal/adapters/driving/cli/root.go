// Package cli implements the cobra command tree for the Epic Search CLI.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/epic-search/epicsearch-cli/internal/core/ports/driving"
	"github.com/epic-search/epicsearch-cli/internal/logger"
)

// version is injected at build time via SetVersion.
var version = "dev"

// verbose toggles debug logging on stderr.
var verbose bool

// Injected services. cmd/epicsearch wires these before Execute.
var (
	searchService   driving.SearchService
	refDataService  driving.ReferenceDataService
	locationService driving.LocationService
	feedbackService driving.FeedbackService
)

// Services bundles the driving ports the commands consume.
type Services struct {
	Search        driving.SearchService
	ReferenceData driving.ReferenceDataService
	Location      driving.LocationService
	Feedback      driving.FeedbackService
}

// SetServices injects the service implementations.
func SetServices(s *Services) {
	searchService = s.Search
	refDataService = s.ReferenceData
	locationService = s.Location
	feedbackService = s.Feedback
}

// SetVersion sets the version string printed by the version command.
func SetVersion(v string) {
	version = v
}

var rootCmd = &cobra.Command{
	Use:   "epicsearch",
	Short: "Search EPIC project documents from the terminal",
	Long: `epicsearch is a terminal client for the EPIC document search API.

Submit queries with server-advertised search strategies, filter by project
and document type, rate the answers you get back, and optionally enrich
searches with your coarse location.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable verbose logging on stderr")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
