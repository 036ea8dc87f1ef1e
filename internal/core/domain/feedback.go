package domain

const unknownDescription = "Unknown"

// FeedbackVote is the canonical feedback value. The API historically accepted
// both a 1-5 rating and a raw up/down vote; the tri-state enum is canonical
// here and ratings are bucketed at the edges via FeedbackFromRating.
type FeedbackVote string

// Available feedback votes.
const (
	// FeedbackUseful marks the search response as helpful.
	FeedbackUseful FeedbackVote = "useful"

	// FeedbackNotUseful marks the search response as unhelpful.
	FeedbackNotUseful FeedbackVote = "not_useful"

	// FeedbackNeutral marks the search response as neither.
	FeedbackNeutral FeedbackVote = "neutral"
)

// IsValid returns true if the vote is recognised.
func (v FeedbackVote) IsValid() bool {
	switch v {
	case FeedbackUseful, FeedbackNotUseful, FeedbackNeutral:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (v FeedbackVote) String() string {
	return string(v)
}

// Description returns a human-readable description of the vote.
func (v FeedbackVote) Description() string {
	switch v {
	case FeedbackUseful:
		return "Useful"
	case FeedbackNotUseful:
		return "Not useful"
	case FeedbackNeutral:
		return "Neutral"
	default:
		return unknownDescription
	}
}

// AllFeedbackVotes returns all valid feedback votes.
func AllFeedbackVotes() []FeedbackVote {
	return []FeedbackVote{FeedbackUseful, FeedbackNotUseful, FeedbackNeutral}
}

// FeedbackFromRating buckets a 1-5 star rating into a vote:
// 4-5 useful, 3 neutral, 1-2 not useful.
func FeedbackFromRating(rating int) FeedbackVote {
	switch {
	case rating >= 4:
		return FeedbackUseful
	case rating <= 2:
		return FeedbackNotUseful
	default:
		return FeedbackNeutral
	}
}

// FeedbackRequest correlates a user's verdict to a prior search session.
type FeedbackRequest struct {
	// SessionID links the feedback to a search response. Assigned by the
	// server during search.
	SessionID string `json:"sessionId,omitempty"`

	// QueryText is the original query the feedback refers to.
	QueryText string `json:"queryText,omitempty"`

	// ProjectIDs are the project filters active during the search.
	ProjectIDs []string `json:"projectIds,omitempty"`

	// DocumentTypeIDs are the type filters active during the search.
	DocumentTypeIDs []string `json:"documentTypeIds,omitempty"`

	// Feedback is the user's verdict.
	Feedback FeedbackVote `json:"feedback"`

	// Comments is optional free-form text.
	Comments string `json:"comments,omitempty"`
}

// FeedbackResponse is the server's acknowledgement of submitted feedback.
type FeedbackResponse struct {
	// SessionID echoes the correlated search session, when returned.
	SessionID string `json:"sessionId,omitempty"`

	// Message is an optional human-readable acknowledgement.
	Message string `json:"message,omitempty"`
}
