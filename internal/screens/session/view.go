package session

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"peprep/internal/exam"
	"peprep/internal/ui/theme"
)

func (s *SessionScreen) View(width, height int) string {
	sess := s.session()
	if sess == nil {
		return renderError(width, "no active session")
	}
	if s.errMsg != "" {
		return renderError(width, s.errMsg)
	}
	if s.showingQuitConfirm {
		return renderQuitConfirm(width)
	}

	switch sess.Stage {
	case exam.StageReview:
		return s.renderReview(width)
	case exam.StageReport:
		return s.renderReport(width)
	default:
		return s.renderQuestion(width)
	}
}

// renderQuestion renders the active question with its choice list.
func (s *SessionScreen) renderQuestion(width int) string {
	sess := s.session()
	q := sess.CurrentQuestion()
	if q == nil {
		return renderError(width, "no question at cursor")
	}

	var b strings.Builder

	// Position line.
	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  Question %d of %d", sess.Current+1, len(sess.Questions)))

	flagStr := ""
	if q.Flagged {
		flagStr = lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("⚑ flagged  ")
	}
	infoRight := flagStr + lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("answered %d/%d", sess.AnsweredCount(), len(sess.Questions)))

	infoLine := infoLeft
	rightPad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4
	if rightPad > 0 {
		infoLine += strings.Repeat(" ", rightPad) + infoRight
	}

	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	// Question text.
	questionStyle := lipgloss.NewStyle().
		Width(min(width-8, 72)).
		Foreground(theme.Text).
		Bold(true)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, questionStyle.Render(q.Text)))
	b.WriteString("\n\n")

	if q.MultiSelect() {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("Select all that apply"))
		b.WriteString("\n\n")
	}

	// Options.
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.choices.View()))

	return b.String()
}

// renderReview renders the pre-submission status grid.
func (s *SessionScreen) renderReview(width int) string {
	sess := s.session()
	statuses := sess.Statuses()

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("Review before submitting"))
	b.WriteString("\n\n")

	unanswered := len(sess.Questions) - sess.AnsweredCount()
	summary := fmt.Sprintf("%d answered, %d unanswered", sess.AnsweredCount(), unanswered)
	summaryStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	if unanswered > 0 {
		summaryStyle = lipgloss.NewStyle().Foreground(theme.Accent)
	}
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render(summaryStyle.Render(summary)))
	b.WriteString("\n\n")

	// One row per question.
	var rows []string
	for i, q := range sess.Questions {
		marker := "  "
		if i == s.reviewCursor {
			marker = "▸ "
		}

		var statusStr string
		var style lipgloss.Style
		switch statuses[i] {
		case exam.StatusFlagged:
			statusStr = "⚑ flagged"
			style = lipgloss.NewStyle().Foreground(theme.Accent)
		case exam.StatusAnswered:
			statusStr = "answered " + q.SelectedLetters()
			style = lipgloss.NewStyle().Foreground(theme.Success)
		default:
			statusStr = "unanswered"
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		}

		line := fmt.Sprintf("%sQ%-3d %s", marker, i+1, statusStr)
		if i == s.reviewCursor {
			style = style.Bold(true)
		}
		rows = append(rows, style.Render(line))
	}

	grid := strings.Join(rows, "\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, grid))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Unanswered questions grade as incorrect."))

	return b.String()
}

// renderReport renders the graded outcome with the missed-question recap.
func (s *SessionScreen) renderReport(width int) string {
	sess := s.session()
	res := sess.Result
	if res == nil {
		return renderError(width, "session not graded")
	}

	var b strings.Builder
	b.WriteString("\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("Exam complete"))
	b.WriteString("\n\n")

	scoreStyle := lipgloss.NewStyle().Foreground(theme.Success)
	if res.Percent() < 70 {
		scoreStyle = lipgloss.NewStyle().Foreground(theme.Error)
	}
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render(scoreStyle.Bold(true).Render(
			fmt.Sprintf("Score: %d / %d  (%.0f%%)", res.Correct, res.Total, res.Percent()))))
	b.WriteString("\n\n")

	if len(res.Missed) == 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Success).
			Render("No misses. Clean sheet."))
		return b.String()
	}

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Missed questions")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	textWidth := min(width-12, 64)
	for _, q := range res.Missed {
		head := fmt.Sprintf("%s  your answer: %s  correct: %s",
			q.ID, orDash(q.SelectedLetters()), q.CorrectLetters())
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Error).Render(head)))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Width(textWidth).Foreground(theme.TextDim).Render(q.Text)))
		b.WriteString("\n\n")
	}

	return b.String()
}

func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("Abandon this exam?"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Sampled questions stay marked as seen. Nothing is graded."))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render("[Y] Yes, abandon"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Render("[N] No, keep going"))

	return b.String()
}

func renderError(width int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  Error: %s", errMsg))
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

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
