package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/csheth/quoteoftheday/internal/surface"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).Underline(true)
	helperStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	statusBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#8ecae6")).Padding(0, 1)
)

func (a *App) View() string {
	if a.quitting {
		return ""
	}
	return surface.JoinBlocks([]string{
		titleStyle.Render(appTitle),
		surface.Render(a.Nodes(), wrapWidth(a.width)),
		a.statusBarView(),
		helperStyle.Render(a.helpText()),
	})
}

func (a *App) helpText() string {
	hints := []string{}
	if a.loader.quote != nil {
		hints = append(hints, fmt.Sprintf("%s: %s", keys.Like.Help().Key, keys.Like.Help().Desc))
	}
	hints = append(hints, fmt.Sprintf("%s: %s", keys.Quit.Help().Key, keys.Quit.Help().Desc))
	return strings.Join(hints, " • ")
}

func (a *App) statusBarView() string {
	badges := a.jobStatusBadges()
	if len(badges) == 0 {
		return ""
	}
	return statusBarStyle.Render(strings.Join(badges, "  •  "))
}

func (a *App) jobStatusBadges() []string {
	badges := make([]string, 0, len(a.jobOrder))
	for _, id := range a.jobOrder {
		snapshot := a.jobs[id]
		switch snapshot.Status {
		case jobStatusRunning:
			badges = append(badges, fmt.Sprintf("%s running", snapshot.Kind))
		default:
			badges = append(badges, fmt.Sprintf("%s %s in %s", snapshot.Kind, snapshot.Status, snapshot.Duration.Round(time.Millisecond)))
		}
	}
	return badges
}
