package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	similarProjects []string
	similarLimit    int
	similarJSON     bool
)

var similarCmd = &cobra.Command{
	Use:   "similar [document-id]",
	Short: "Find documents similar to a given document",
	Args:  cobra.ExactArgs(1),
	RunE:  runSimilar,
}

func init() {
	similarCmd.Flags().StringSliceVarP(&similarProjects, "project", "p", nil, "filter by project id (repeatable)")
	similarCmd.Flags().IntVarP(&similarLimit, "limit", "n", 10, "maximum number of results")
	similarCmd.Flags().BoolVar(&similarJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(similarCmd)
}

func runSimilar(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	docs, err := searchService.SearchSimilar(cmd.Context(), args[0], similarProjects, similarLimit)
	if err != nil {
		return fmt.Errorf("similar search failed: %w", err)
	}

	if similarJSON {
		return printJSON(cmd, docs)
	}

	if len(docs) == 0 {
		cmd.Println("No similar documents found.")
		return nil
	}

	cmd.Println("Similar documents:")
	cmd.Println()
	printDocuments(cmd, docs)
	return nil
}
