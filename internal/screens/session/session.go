// Package session is the exam screen: it drives one active session
// through answering, the review grid, and the graded report.
package session

import (
	tea "charm.land/bubbletea/v2"

	"peprep/internal/appctx"
	"peprep/internal/exam"
	"peprep/internal/router"
	"peprep/internal/screen"
	"peprep/internal/ui/components"
	"peprep/internal/ui/layout"
)

// SessionScreen implements screen.Screen for the active session. The
// session itself lives on the app context; this screen only translates
// key presses into state-machine operations and renders the result.
type SessionScreen struct {
	ctx     *appctx.Context
	choices components.ChoiceList

	reviewCursor       int
	showingQuitConfirm bool
	errMsg             string
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)

// New creates a SessionScreen over the context's already-started session.
func New(ctx *appctx.Context) *SessionScreen {
	s := &SessionScreen{ctx: ctx}
	s.resetChoices()
	return s
}

func (s *SessionScreen) session() *exam.Session {
	return s.ctx.Session
}

func (s *SessionScreen) resetChoices() {
	if sess := s.session(); sess != nil {
		s.choices = components.NewChoiceList(sess.CurrentQuestion())
	}
}

func (s *SessionScreen) Init() tea.Cmd {
	return nil
}

func (s *SessionScreen) Title() string {
	sess := s.session()
	if sess == nil {
		return "Exam"
	}
	switch sess.Stage {
	case exam.StageReview:
		return "Review"
	case exam.StageReport:
		return "Report"
	}
	return "Exam"
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	sess := s.session()
	if sess == nil {
		return nil
	}
	if s.showingQuitConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "Abandon exam"},
			{Key: "N", Description: "Keep going"},
		}
	}
	switch sess.Stage {
	case exam.StageActive:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Option"},
			{Key: "Space", Description: "Choose"},
			{Key: "←→", Description: "Question"},
			{Key: "F", Description: "Flag"},
			{Key: "R", Description: "Review"},
			{Key: "Esc", Description: "Quit"},
		}
	case exam.StageReview:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Open question"},
			{Key: "S", Description: "Submit exam"},
			{Key: "Esc", Description: "Back to exam"},
		}
	case exam.StageReport:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Done"},
		}
	}
	return nil
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case submittedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		}
		return s, nil
	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *SessionScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	sess := s.session()
	if sess == nil {
		return s, popCmd()
	}
	key := msg.String()

	if s.showingQuitConfirm {
		switch key {
		case "y", "Y":
			s.ctx.DiscardSession()
			return s, popCmd()
		case "n", "N", "esc":
			s.showingQuitConfirm = false
		}
		return s, nil
	}

	switch sess.Stage {
	case exam.StageActive:
		return s.handleActiveKey(sess, key, msg)
	case exam.StageReview:
		return s.handleReviewKey(sess, key)
	case exam.StageReport:
		switch key {
		case "enter", "esc":
			s.ctx.DiscardSession()
			return s, popCmd()
		}
	}
	return s, nil
}

func (s *SessionScreen) handleActiveKey(sess *exam.Session, key string, msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch key {
	case "esc":
		s.showingQuitConfirm = true
		return s, nil
	case "left", "p":
		if sess.Prev() {
			s.resetChoices()
		}
		return s, nil
	case "right", "n":
		if sess.Next() {
			s.resetChoices()
		}
		return s, nil
	case "f":
		sess.ToggleFlag()
		return s, nil
	case "r":
		sess.BeginReview()
		s.reviewCursor = sess.Current
		return s, nil
	case " ", "space", "enter":
		sess.Select(s.choices.Cursor)
		return s, nil
	}

	// Number keys choose options directly.
	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		idx := int(key[0] - '1')
		if q := sess.CurrentQuestion(); q != nil && idx < len(q.Options) {
			s.choices.Cursor = idx
			sess.Select(idx)
		}
		return s, nil
	}

	var cmd tea.Cmd
	s.choices, cmd = s.choices.Update(msg)
	return s, cmd
}

func (s *SessionScreen) handleReviewKey(sess *exam.Session, key string) (screen.Screen, tea.Cmd) {
	n := len(sess.Questions)
	switch key {
	case "up", "k", "left":
		if s.reviewCursor > 0 {
			s.reviewCursor--
		}
	case "down", "j", "right":
		if s.reviewCursor < n-1 {
			s.reviewCursor++
		}
	case "enter":
		if err := sess.Jump(s.reviewCursor); err == nil {
			s.resetChoices()
		}
	case "esc":
		if err := sess.Jump(sess.Current); err == nil {
			s.resetChoices()
		}
	case "s", "S":
		return s, s.submit()
	}
	return s, nil
}

// submit grades the session and persists ledger + history.
func (s *SessionScreen) submit() tea.Cmd {
	ctx := s.ctx
	return func() tea.Msg {
		_, err := ctx.SubmitSession()
		return submittedMsg{Err: err}
	}
}

func popCmd() tea.Cmd {
	return func() tea.Msg { return router.PopScreenMsg{} }
}
