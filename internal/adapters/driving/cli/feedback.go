package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/epic-search/epicsearch-cli/internal/core/domain"
)

var (
	feedbackVote     string
	feedbackRating   int
	feedbackComments string
	feedbackQuery    string
)

var feedbackCmd = &cobra.Command{
	Use:   "feedback [session-id]",
	Short: "Rate a previous search answer",
	Long: `Submits feedback for a search session. The session id is printed after
each search.

Pass either --vote (useful, not_useful, neutral) or --rating (1-5, bucketed
into a vote).`,
	Args: cobra.ExactArgs(1),
	RunE: runFeedback,
}

func init() {
	feedbackCmd.Flags().StringVar(&feedbackVote, "vote", "", "verdict: useful, not_useful, or neutral")
	feedbackCmd.Flags().IntVar(&feedbackRating, "rating", 0, "1-5 star rating (alternative to --vote)")
	feedbackCmd.Flags().StringVar(&feedbackComments, "comment", "", "free-form comment")
	feedbackCmd.Flags().StringVar(&feedbackQuery, "query", "", "the original query text")
	rootCmd.AddCommand(feedbackCmd)
}

func runFeedback(cmd *cobra.Command, args []string) error {
	if feedbackService == nil {
		return errors.New("feedback service not configured")
	}

	vote, err := resolveVote(feedbackVote, feedbackRating)
	if err != nil {
		return err
	}

	req := domain.FeedbackRequest{
		SessionID: args[0],
		QueryText: feedbackQuery,
		Feedback:  vote,
		Comments:  feedbackComments,
	}

	resp, err := feedbackService.Submit(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("feedback failed: %w", err)
	}

	if resp.Message != "" {
		cmd.Println(resp.Message)
	} else {
		cmd.Println("Feedback recorded.")
	}
	return nil
}

// resolveVote picks the canonical vote from the two flag forms.
func resolveVote(vote string, rating int) (domain.FeedbackVote, error) {
	switch {
	case vote != "" && rating != 0:
		return "", errors.New("pass either --vote or --rating, not both")
	case vote != "":
		v := domain.FeedbackVote(vote)
		if !v.IsValid() {
			return "", fmt.Errorf("invalid vote %q (useful, not_useful, neutral)", vote)
		}
		return v, nil
	case rating != 0:
		if rating < 1 || rating > 5 {
			return "", fmt.Errorf("invalid rating %d (1-5)", rating)
		}
		return domain.FeedbackFromRating(rating), nil
	default:
		return "", errors.New("pass --vote or --rating")
	}
}
