package cli

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var (
	projectsJSON   bool
	doctypesJSON   bool
	doctypesAct    string
	strategiesJSON bool
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List projects available for filtering",
	Args:  cobra.NoArgs,
	RunE:  runProjects,
}

var doctypesCmd = &cobra.Command{
	Use:   "doctypes",
	Short: "List document type mappings",
	Args:  cobra.NoArgs,
	RunE:  runDoctypes,
}

var strategiesCmd = &cobra.Command{
	Use:   "strategies",
	Short: "List available search strategies",
	Args:  cobra.NoArgs,
	RunE:  runStrategies,
}

func init() {
	projectsCmd.Flags().BoolVar(&projectsJSON, "json", false, "output as JSON")
	doctypesCmd.Flags().BoolVar(&doctypesJSON, "json", false, "output as JSON")
	doctypesCmd.Flags().StringVar(&doctypesAct, "act", "", "only show types under this act")
	strategiesCmd.Flags().BoolVar(&strategiesJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(projectsCmd)
	rootCmd.AddCommand(doctypesCmd)
	rootCmd.AddCommand(strategiesCmd)
}

func runProjects(cmd *cobra.Command, _ []string) error {
	if refDataService == nil {
		return errors.New("reference data service not configured")
	}

	projects, err := refDataService.Projects(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing projects failed: %w", err)
	}

	if projectsJSON {
		return printJSON(cmd, projects)
	}

	if len(projects) == 0 {
		cmd.Println("No projects available.")
		return nil
	}
	for _, p := range projects {
		cmd.Printf("  %s  %s\n", p.ID, p.Name)
	}
	return nil
}

func runDoctypes(cmd *cobra.Command, _ []string) error {
	if refDataService == nil {
		return errors.New("reference data service not configured")
	}

	mapping, err := refDataService.DocumentTypeMappings(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing document types failed: %w", err)
	}

	if doctypesJSON {
		return printJSON(cmd, mapping)
	}

	acts := make([]string, 0, len(mapping))
	for act := range mapping {
		if doctypesAct != "" && act != doctypesAct {
			continue
		}
		acts = append(acts, act)
	}
	sort.Strings(acts)

	if len(acts) == 0 {
		cmd.Println("No document types available.")
		return nil
	}

	for _, act := range acts {
		cmd.Printf("%s:\n", act)
		ids := make([]string, 0, len(mapping[act]))
		for id := range mapping[act] {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			dt := mapping[act][id]
			cmd.Printf("  %s  %s\n", id, dt.Name)
		}
		cmd.Println()
	}
	return nil
}

func runStrategies(cmd *cobra.Command, _ []string) error {
	if refDataService == nil {
		return errors.New("reference data service not configured")
	}

	strategies, err := refDataService.Strategies(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing strategies failed: %w", err)
	}

	if strategiesJSON {
		return printJSON(cmd, strategies)
	}

	cmd.Println("Strategies:")
	for _, s := range strategies {
		marker := " "
		if !s.Enabled {
			marker = "x"
		}
		key := s.Key
		if s.IsDefault() {
			key = "(server default)"
		}
		cmd.Printf("  [%s] %-24s %s\n", marker, s.Name, key)
		if s.Description != "" {
			cmd.Printf("      %s\n", s.Description)
		}
	}
	return nil
}
