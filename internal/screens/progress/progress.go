// Package progress shows all-time stats and the per-session record from
// the history store.
package progress

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"peprep/internal/appctx"
	"peprep/internal/history"
	"peprep/internal/router"
	"peprep/internal/screen"
	"peprep/internal/ui/components"
	"peprep/internal/ui/layout"
	"peprep/internal/ui/theme"
)

type progressLoadedMsg struct {
	Sessions []history.SessionRecord
	Missed   map[string][]history.AttemptRecord // sessionID → missed attempts
	Err      error
}

// ProgressScreen displays ledger totals and past sessions.
type ProgressScreen struct {
	ctx      *appctx.Context
	sessions []history.SessionRecord
	missed   map[string][]history.AttemptRecord
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*ProgressScreen)(nil)
var _ screen.KeyHintProvider = (*ProgressScreen)(nil)

// New creates a new ProgressScreen.
func New(ctx *appctx.Context) *ProgressScreen {
	return &ProgressScreen{
		ctx:      ctx,
		expanded: make(map[int]bool),
	}
}

func (s *ProgressScreen) Init() tea.Cmd {
	return func() tea.Msg {
		if s.ctx.History == nil {
			return progressLoadedMsg{Missed: make(map[string][]history.AttemptRecord)}
		}

		sessions, err := s.ctx.History.ListSessions(50)
		if err != nil {
			return progressLoadedMsg{Err: err}
		}

		missed := make(map[string][]history.AttemptRecord)
		for _, sess := range sessions {
			m, err := s.ctx.History.SessionMissed(sess.ID)
			if err != nil {
				continue
			}
			missed[sess.ID] = m
		}

		return progressLoadedMsg{Sessions: sessions, Missed: missed}
	}
}

func (s *ProgressScreen) Title() string {
	return "Progress"
}

func (s *ProgressScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ProgressScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case progressLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
			s.missed = msg.Missed
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		}
	}
	return s, nil
}

func (s *ProgressScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading progress...")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(s.renderTotals(width))
	b.WriteString("\n\n")

	if len(s.sessions) == 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("No sessions on record yet."))
		return b.String()
	}

	for i, sess := range s.sessions {
		dateStr := sess.SubmittedAt.Local().Format("Jan 02, 2006 15:04")

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %s  %d/%d  %.0f%%",
			prefix, dateStr, sess.Mode, sess.Correct, sess.Total, sess.Percent())

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(s.renderMissed(width, sess.ID))
		}
	}

	return b.String()
}

// renderTotals summarizes the ledger plus the accuracy bar.
func (s *ProgressScreen) renderTotals(width int) string {
	led := s.ctx.Ledger

	var b strings.Builder
	line := fmt.Sprintf("Seen: %d of %d    Missed ever: %d    Answered: %d",
		led.UsedCount(), s.ctx.Bank.Len(), len(led.WrongIDs()), led.Answered)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Text).Render(line)))
	b.WriteString("\n\n")

	bar := components.NewProgressBar("Accuracy", led.Accuracy(), min(width-8, 50))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))

	return b.String()
}

// renderMissed lists a session's incorrect attempts under its row.
func (s *ProgressScreen) renderMissed(width int, sessionID string) string {
	missed := s.missed[sessionID]
	if len(missed) == 0 {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
				Render("    No misses this session")) + "\n"
	}

	var b strings.Builder
	for _, a := range missed {
		line := fmt.Sprintf("    %s  answered %s, correct %s",
			a.QuestionID, orDash(a.Selected), a.CorrectLetters)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Error).Render(line)))
		b.WriteString("\n")
	}
	return b.String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
