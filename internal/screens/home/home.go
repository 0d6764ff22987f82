package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"peprep/internal/appctx"
	"peprep/internal/router"
	"peprep/internal/screen"
	"peprep/internal/screens/drill"
	"peprep/internal/screens/placeholder"
	"peprep/internal/screens/progress"
	"peprep/internal/screens/setup"
	"peprep/internal/ui/components"
	"peprep/internal/ui/theme"
)

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	ctx  *appctx.Context
	menu components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(ctx *appctx.Context) *HomeScreen {
	items := []components.MenuItem{
		{Label: "START EXAM", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: setup.New(ctx)}
			}
		}},
		{Label: "TARGETED DRILL", Action: func() tea.Cmd {
			if ctx.Topics == nil || ctx.Topics.Len() == 0 {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: placeholder.New("Targeted Drill")}
				}
			}
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: drill.New(ctx)}
			}
		}},
		{Label: "PROGRESS", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: progress.New(ctx)}
			}
		}},
		{Label: "EXIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		ctx:  ctx,
		menu: components.NewMenu(items),
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var sections []string

	sections = append(sections, lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("PE EXAM PREP"))

	sections = append(sections, lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Fire Protection practice simulator"))

	sections = append(sections, h.renderStatsBar(width))

	menu := h.menu.View()
	sections = append(sections, lipgloss.PlaceHorizontal(width, lipgloss.Center, menu))

	content := strings.Join(sections, "\n\n")

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Left, lipgloss.Center).
		Render(content)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

// renderStatsBar shows the bank and ledger at a glance.
func (h *HomeScreen) renderStatsBar(width int) string {
	led := h.ctx.Ledger
	line := fmt.Sprintf("Bank: %d    Unseen: %d    Missed: %d    Accuracy: %.0f%%",
		h.ctx.Bank.Len(),
		h.ctx.Remaining(),
		len(led.WrongIDs()),
		led.Accuracy()*100)

	bar := lipgloss.NewStyle().
		Foreground(theme.Text).
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Border).
		Padding(0, 2).
		Render(line)

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, bar)
}
