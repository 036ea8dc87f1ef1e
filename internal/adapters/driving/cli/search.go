package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/epic-search/epicsearch-cli/internal/core/domain"
)

var (
	searchStrategy string
	searchProjects []string
	searchDocTypes []string
	searchMinScore float64
	searchTopN     int
	searchAgentic  bool
	searchJSON     bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search EPIC documents",
	Long: `Submits a query to the search API and prints the narrative answer
followed by the matched documents.

The strategy defaults to the server's own choice; pass --strategy with a
key from 'epicsearch strategies' to override it.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchStrategy, "strategy", "s", "", "search strategy key (empty = server default)")
	searchCmd.Flags().StringSliceVarP(&searchProjects, "project", "p", nil, "filter by project id (repeatable)")
	searchCmd.Flags().StringSliceVarP(&searchDocTypes, "doctype", "d", nil, "filter by document type id (repeatable)")
	searchCmd.Flags().Float64Var(&searchMinScore, "min-score", 0, "drop results scoring below this threshold")
	searchCmd.Flags().IntVarP(&searchTopN, "top", "n", 0, "maximum number of results")
	searchCmd.Flags().BoolVar(&searchAgentic, "agentic", false, "enable the server's agentic pipeline")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	req := domain.SearchRequest{
		Query:           args[0],
		Strategy:        normaliseStrategy(searchStrategy),
		ProjectIDs:      searchProjects,
		DocumentTypeIDs: searchDocTypes,
		Agentic:         searchAgentic,
	}
	if searchMinScore > 0 || searchTopN > 0 {
		req.Ranking = &domain.RankingOptions{
			MinScore: searchMinScore,
			TopN:     searchTopN,
		}
	}

	resp, err := searchService.Search(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return printJSON(cmd, resp)
	}
	return outputSearchText(cmd, resp)
}

// normaliseStrategy maps the "Default" pseudo-strategy to an omitted field.
func normaliseStrategy(strategy string) string {
	if strategy == domain.DefaultStrategyKey {
		return ""
	}
	return strategy
}

func outputSearchText(cmd *cobra.Command, resp *domain.SearchResponse) error {
	if resp.Answer != "" {
		cmd.Println(resp.Answer)
		cmd.Println()
	}

	if len(resp.Documents) == 0 {
		cmd.Println("No documents found.")
		return nil
	}

	cmd.Println("Documents:")
	cmd.Println()
	printDocuments(cmd, resp.Documents)

	if resp.SessionID != "" {
		cmd.Printf("Session: %s (rate this answer with 'epicsearch feedback %s')\n",
			resp.SessionID, resp.SessionID)
	}
	return nil
}

// printDocuments renders a document list in the shared table format.
func printDocuments(cmd *cobra.Command, docs []domain.Document) {
	for i := range docs {
		d := docs[i]
		if d.HasScore() {
			cmd.Printf("  [%d] %s (%.2f)\n", i+1, d.DisplayName(), d.ScoreValue())
		} else {
			cmd.Printf("  [%d] %s\n", i+1, d.DisplayName())
		}
		if d.ProjectName != "" {
			cmd.Printf("      Project: %s\n", d.ProjectName)
		}
		if d.PageNumber != "" {
			cmd.Printf("      Page: %s\n", d.PageNumber)
		}
		if d.Content != "" {
			snippet := d.Content
			if len(snippet) > 200 {
				snippet = snippet[:200] + "..."
			}
			cmd.Printf("      %s\n", snippet)
		}
		cmd.Println()
	}
}

// printJSON renders any value as indented JSON.
func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
