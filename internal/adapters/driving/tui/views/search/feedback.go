package search

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/epic-search/epicsearch-cli/internal/adapters/driving/tui/styles"
	"github.com/epic-search/epicsearch-cli/internal/core/domain"
)

// feedbackFocus identifies which part of the feedback form has focus.
type feedbackFocus int

const (
	focusVote feedbackFocus = iota
	focusComments
)

// feedbackForm is the modal overlay for rating a search session.
type feedbackForm struct {
	styles *styles.Styles

	votes    []domain.FeedbackVote
	voteIdx  int
	comments textinput.Model
	focus    feedbackFocus

	sessionID  string
	submitting bool
}

// newFeedbackForm creates a feedback form for the given session.
func newFeedbackForm(s *styles.Styles, sessionID string) *feedbackForm {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "Optional comments..."
	ti.CharLimit = 512
	ti.Width = 48

	return &feedbackForm{
		styles:    s,
		votes:     domain.AllFeedbackVotes(),
		voteIdx:   0,
		comments:  ti,
		focus:     focusVote,
		sessionID: sessionID,
	}
}

// Vote returns the currently selected vote.
func (f *feedbackForm) Vote() domain.FeedbackVote {
	return f.votes[f.voteIdx]
}

// Comments returns the entered comments.
func (f *feedbackForm) Comments() string {
	return strings.TrimSpace(f.comments.Value())
}

// handleKey processes keyboard input while the form is open. It returns true
// when the form consumed the key, plus an optional command.
func (f *feedbackForm) handleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	if f.submitting {
		return true, nil
	}

	switch msg.Type {
	case tea.KeyTab:
		if f.focus == focusVote {
			f.focus = focusComments
			return true, f.comments.Focus()
		}
		f.focus = focusVote
		f.comments.Blur()
		return true, nil

	case tea.KeyLeft:
		if f.focus == focusVote && f.voteIdx > 0 {
			f.voteIdx--
		}
		return true, nil

	case tea.KeyRight:
		if f.focus == focusVote && f.voteIdx < len(f.votes)-1 {
			f.voteIdx++
		}
		return true, nil
	default:
		// Remaining keys go to the comments input when focused.
	}

	if f.focus == focusComments {
		var cmd tea.Cmd
		f.comments, cmd = f.comments.Update(msg)
		return true, cmd
	}

	return false, nil
}

// view renders the feedback form overlay.
func (f *feedbackForm) view() string {
	lines := make([]string, 0, 6)
	lines = append(lines, f.styles.Subtitle.Render("Rate this search"))

	choices := make([]string, 0, len(f.votes))
	for i, v := range f.votes {
		label := v.Description()
		if i == f.voteIdx {
			if f.focus == focusVote {
				label = f.styles.Selected.Render(" " + label + " ")
			} else {
				label = f.styles.Title.Render("[" + label + "]")
			}
		} else {
			label = f.styles.Muted.Render(" " + label + " ")
		}
		choices = append(choices, label)
	}
	lines = append(lines, strings.Join(choices, " "))

	lines = append(lines, "", f.comments.View())

	if f.submitting {
		lines = append(lines, "", f.styles.Muted.Render("Submitting..."))
	} else {
		lines = append(lines, "", f.styles.Help.Render("enter: submit | tab: comments | esc: cancel"))
	}

	box := f.styles.Border.Padding(0, 1)
	return box.Render(strings.Join(lines, "\n"))
}
