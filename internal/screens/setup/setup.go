// Package setup is the pre-exam screen: it shows how many unseen
// questions remain and lets the user size the session before starting.
package setup

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"peprep/internal/appctx"
	"peprep/internal/router"
	"peprep/internal/sampler"
	"peprep/internal/screen"
	sessionscreen "peprep/internal/screens/session"
	"peprep/internal/ui/components"
	"peprep/internal/ui/layout"
	"peprep/internal/ui/theme"
)

// SetupScreen collects the session size and starts a standard exam.
type SetupScreen struct {
	ctx    *appctx.Context
	input  components.TextInput
	errMsg string
}

var _ screen.Screen = (*SetupScreen)(nil)
var _ screen.KeyHintProvider = (*SetupScreen)(nil)

// New creates a new SetupScreen.
func New(ctx *appctx.Context) *SetupScreen {
	return &SetupScreen{
		ctx:   ctx,
		input: components.NewTextInput(fmt.Sprint(sampler.DefaultSessionSize), true, 3),
	}
}

func (s *SetupScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *SetupScreen) Title() string {
	return "Exam Setup"
}

func (s *SetupScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Begin"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SetupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter":
			return s.begin()
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *SetupScreen) begin() (screen.Screen, tea.Cmd) {
	k := sampler.DefaultSessionSize
	if s.input.Value() != "" {
		n, err := s.input.NumericValue()
		if err != nil || n < 1 {
			s.errMsg = "enter a question count of at least 1"
			return s, nil
		}
		k = n
	}

	_, err := s.ctx.StartStandard(k)
	if err != nil {
		s.errMsg = err.Error()
		return s, nil
	}

	// Swap setup for the exam so Esc from the exam lands back home.
	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: sessionscreen.New(s.ctx)}
	}
}

func (s *SetupScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("Standard Exam"))
	b.WriteString("\n\n")

	remaining := s.ctx.Remaining()
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(fmt.Sprintf("%d unseen questions in the pool", remaining)))
	b.WriteString("\n\n")

	if remaining == 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Accent).
			Render("Pool exhausted. Reset the ledger or import more questions."))
		b.WriteString("\n\n")
	}

	prompt := "Questions this session: " + s.input.View()
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, prompt))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("(%d at most; fewer if the pool runs short)", sampler.DefaultSessionSize)))

	if s.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(s.errMsg))
	}

	return b.String()
}
