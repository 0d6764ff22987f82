// Package screen defines the contract every peprep screen (home, setup,
// exam, review, progress) satisfies. The router owns a stack of these and
// forwards messages to whichever is on top.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"peprep/internal/ui/layout"
)

// Screen is one full-window view of the app.
type Screen interface {
	// Init returns a command to run when the screen becomes active.
	Init() tea.Cmd

	// Update handles a message and returns the (possibly replaced)
	// screen plus a follow-up command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the body; the root model wraps it in header and
	// footer chrome.
	View(width, height int) string

	// Title names the screen in the header bar.
	Title() string
}

// KeyHintProvider lets a screen supply its own footer key hints. The exam
// screen uses it to swap hints per stage; screens without it get the
// depth-based defaults.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}
