package surface

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

const minWrapWidth = 20

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).Underline(true)
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	bodyStyle    = lipgloss.NewStyle().Italic(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#a3be8c"))
	helperStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	buttonStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#ffd166")).Padding(0, 1)
)

// Render draws nodes top to bottom, wrapping text to width.
func Render(nodes []Node, width int) string {
	if width < minWrapWidth {
		width = minWrapWidth
	}
	parts := make([]string, 0, len(nodes))
	for _, node := range nodes {
		parts = append(parts, renderNode(node, width))
	}
	return JoinBlocks(parts)
}

func renderNode(node Node, width int) string {
	visual := node.Visual()
	if strings.TrimSpace(visual) == "" {
		return ""
	}
	switch node.Role {
	case RoleHeading:
		if node.Level <= 1 {
			return titleStyle.Render(visual)
		}
		return headingStyle.Render(visual)
	case RoleButton:
		return buttonStyle.Render(visual)
	case RoleStatus:
		return helperStyle.Render(visual)
	default:
		wrapped := wordwrap.String(visual, width)
		switch node.Tone {
		case ToneError:
			return errorStyle.Render(wrapped)
		case ToneSuccess:
			return successStyle.Render(wrapped)
		default:
			return bodyStyle.Render(wrapped)
		}
	}
}

// JoinBlocks joins the non-blank blocks with one empty line between them.
func JoinBlocks(parts []string) string {
	filtered := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		filtered = append(filtered, part)
	}
	return strings.Join(filtered, "\n\n")
}
