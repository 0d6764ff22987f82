// Package drill is the targeted-drill topic picker. Drills pull from a
// curated id list and ignore seen state, so weak areas can be repeated.
package drill

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

// DrillScreen lists configured topics and starts a targeted session.
type DrillScreen struct {
	ctx    *appctx.Context
	menu   components.Menu
	errMsg string
}

var _ screen.Screen = (*DrillScreen)(nil)
var _ screen.KeyHintProvider = (*DrillScreen)(nil)

// New creates a new DrillScreen over the configured topic set.
func New(ctx *appctx.Context) *DrillScreen {
	d := &DrillScreen{ctx: ctx}

	var items []components.MenuItem
	for _, name := range ctx.Topics.Names() {
		name := name
		items = append(items, components.MenuItem{
			Label: name,
			Action: func() tea.Cmd {
				return d.startDrill(name)
			},
		})
	}
	d.menu = components.NewMenu(items)
	return d
}

func (d *DrillScreen) startDrill(topic string) tea.Cmd {
	_, err := d.ctx.StartTargeted(topic, sampler.DefaultSessionSize)
	if err != nil {
		d.errMsg = err.Error()
		return nil
	}
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: sessionscreen.New(d.ctx)}
	}
}

func (d *DrillScreen) Init() tea.Cmd {
	return nil
}

func (d *DrillScreen) Title() string {
	return "Targeted Drill"
}

func (d *DrillScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Start drill"},
		{Key: "Esc", Description: "Back"},
	}
}

func (d *DrillScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "esc" {
		return d, func() tea.Msg { return router.PopScreenMsg{} }
	}
	var cmd tea.Cmd
	d.menu, cmd = d.menu.Update(msg)
	return d, cmd
}

func (d *DrillScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("Pick a topic"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Drills repeat seen questions. Up to %d per session.", sampler.DefaultSessionSize)))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, d.menu.View()))

	if d.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(d.errMsg))
	}

	return b.String()
}
