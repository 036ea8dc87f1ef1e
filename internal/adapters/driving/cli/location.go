package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/epic-search/epicsearch-cli/internal/core/domain"
)

var locationJSON bool

var locationCmd = &cobra.Command{
	Use:   "location",
	Short: "Manage location enrichment",
	Long: `Location enrichment attaches your coarse (IP-derived) location to
searches so the server can prefer nearby projects. It is off by default;
enabling it performs an immediate lookup.`,
}

var locationEnableCmd = &cobra.Command{
	Use:   "enable",
	Short: "Enable location enrichment and acquire a position",
	Args:  cobra.NoArgs,
	RunE:  runLocationEnable,
}

var locationDisableCmd = &cobra.Command{
	Use:   "disable",
	Short: "Disable location enrichment and clear the cached position",
	Args:  cobra.NoArgs,
	RunE:  runLocationDisable,
}

var locationShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current location status",
	Args:  cobra.NoArgs,
	RunE:  runLocationShow,
}

var locationRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Clear the cached position and re-acquire",
	Args:  cobra.NoArgs,
	RunE:  runLocationRefresh,
}

func init() {
	locationShowCmd.Flags().BoolVar(&locationJSON, "json", false, "output as JSON")
	locationCmd.AddCommand(locationEnableCmd)
	locationCmd.AddCommand(locationDisableCmd)
	locationCmd.AddCommand(locationShowCmd)
	locationCmd.AddCommand(locationRefreshCmd)
	rootCmd.AddCommand(locationCmd)
}

func runLocationEnable(cmd *cobra.Command, _ []string) error {
	if locationService == nil {
		return errors.New("location service not configured")
	}

	loc, err := locationService.Enable(cmd.Context())
	if err != nil {
		return fmt.Errorf("enabling location failed: %w", err)
	}

	cmd.Println("Location enrichment enabled.")
	printLocation(cmd, loc)
	return nil
}

func runLocationDisable(cmd *cobra.Command, _ []string) error {
	if locationService == nil {
		return errors.New("location service not configured")
	}

	if err := locationService.Disable(cmd.Context()); err != nil {
		return fmt.Errorf("disabling location failed: %w", err)
	}
	cmd.Println("Location enrichment disabled, cached position cleared.")
	return nil
}

func runLocationShow(cmd *cobra.Command, _ []string) error {
	if locationService == nil {
		return errors.New("location service not configured")
	}

	status := locationService.Status(cmd.Context())
	if locationJSON {
		return printJSON(cmd, status)
	}

	if !status.Enabled {
		cmd.Println("Location enrichment: disabled")
		if status.Permission == domain.PermissionDenied {
			cmd.Println("Permission: denied (re-enable explicitly to retry)")
		}
		return nil
	}

	cmd.Println("Location enrichment: enabled")
	cmd.Printf("Permission: %s\n", status.Permission)
	if status.Location != nil {
		printLocation(cmd, status.Location)
	} else {
		cmd.Println("No cached position (expired or not yet acquired).")
	}
	if status.Err != "" {
		cmd.Printf("Last error: %s\n", status.Err)
	}
	return nil
}

func runLocationRefresh(cmd *cobra.Command, _ []string) error {
	if locationService == nil {
		return errors.New("location service not configured")
	}

	loc, err := locationService.Refresh(cmd.Context())
	if err != nil {
		return fmt.Errorf("refreshing location failed: %w", err)
	}
	cmd.Println("Location refreshed.")
	printLocation(cmd, loc)
	return nil
}

func printLocation(cmd *cobra.Command, loc *domain.LocationData) {
	if loc == nil {
		return
	}
	cmd.Printf("Position: %.4f, %.4f\n", loc.Latitude, loc.Longitude)
	if loc.HasPlace() {
		cmd.Printf("Place: %s, %s, %s\n", loc.City, loc.Region, loc.Country)
	}
	cmd.Printf("Acquired: %s (valid for %s)\n",
		loc.Timestamp.Format("15:04:05"), domain.LocationTTL)
}
