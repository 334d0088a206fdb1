package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/quoteoftheday/internal/surface"
)

// Spinner is a status indicator whose reason is announced but not drawn.
type Spinner struct {
	reason string
	model  spinner.Model
}

// NewSpinner returns a spinner announcing reason.
func NewSpinner(reason string) Spinner {
	spin := spinner.New()
	spin.Spinner = spinner.Dot
	return Spinner{reason: reason, model: spin}
}

// Tick starts the animation.
func (s Spinner) Tick() tea.Msg {
	return s.model.Tick()
}

func (s Spinner) Update(msg tea.Msg) (Spinner, tea.Cmd) {
	var cmd tea.Cmd
	s.model, cmd = s.model.Update(msg)
	return s, cmd
}

// Node is the status node for the current frame.
func (s Spinner) Node() surface.Node {
	return surface.Status(s.reason, s.model.View())
}
