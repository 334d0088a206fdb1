// Package surface is the accessible node tree every view produces. Views
// return nodes; the terminal renders them with lipgloss and tests look them
// up by role and text, independent of styling.
package surface

import "strings"

// Role is the semantic classification of a node.
type Role string

const (
	RoleHeading Role = "heading"
	RoleText    Role = "text"
	RoleButton  Role = "button"
	RoleStatus  Role = "status"
)

// Tone picks the styling of text nodes.
type Tone int

const (
	ToneNormal Tone = iota
	ToneError
	ToneSuccess
)

// Node is one element of a rendered view.
type Node struct {
	Role  Role
	Level int
	// Name is the accessible text of the node.
	Name string
	// Display replaces Name in the terminal rendering when set.
	Display string
	// Hidden keeps Name out of the terminal rendering.
	Hidden bool
	// Key activates a button.
	Key  string
	Tone Tone
}

// Heading returns a heading of the given level.
func Heading(level int, text string) Node {
	return Node{Role: RoleHeading, Level: level, Name: text}
}

// Text returns a plain text node.
func Text(text string) Node {
	return Node{Role: RoleText, Name: text}
}

// Alert returns a text node styled as an error.
func Alert(text string) Node {
	return Node{Role: RoleText, Name: text, Tone: ToneError}
}

// Notice returns a text node styled as a confirmation.
func Notice(text string) Node {
	return Node{Role: RoleText, Name: text, Tone: ToneSuccess}
}

// Button returns a button labelled label, activated by key.
func Button(label, key string) Node {
	return Node{Role: RoleButton, Name: label, Key: key}
}

// Status returns a status node whose accessible name is reason. Only glyph is
// drawn.
func Status(reason, glyph string) Node {
	return Node{Role: RoleStatus, Name: reason, Display: glyph, Hidden: true}
}

// Visual is what the terminal shows for the node.
func (n Node) Visual() string {
	if n.Display != "" {
		return n.Display
	}
	if n.Hidden {
		return ""
	}
	return n.Name
}

// AllByRole returns the nodes with the given role in tree order.
func AllByRole(nodes []Node, role Role) []Node {
	var out []Node
	for _, node := range nodes {
		if node.Role == role {
			out = append(out, node)
		}
	}
	return out
}

// ByText returns the first node whose accessible name equals text.
func ByText(nodes []Node, text string) (Node, bool) {
	for _, node := range nodes {
		if node.Name == text {
			return node, true
		}
	}
	return Node{}, false
}

// ContainsText reports whether any node's accessible name contains text.
func ContainsText(nodes []Node, text string) bool {
	for _, node := range nodes {
		if strings.Contains(node.Name, text) {
			return true
		}
	}
	return false
}
