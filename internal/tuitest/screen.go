package tuitest

import (
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/quoteoftheday/internal/surface"
)

// DefaultFindTimeout bounds the Find* helpers.
const DefaultFindTimeout = 2 * time.Second

// Component is a view that exposes its accessible tree.
type Component interface {
	tea.Model
	Nodes() []surface.Node
}

type unmounter interface {
	Unmount()
}

// Screen drives a Component in-process. Commands run on their own
// goroutines; their messages are applied one at a time on the test goroutine,
// only while a helper is waiting, so Update never runs concurrently.
type Screen struct {
	t         testing.TB
	model     Component
	msgs      chan tea.Msg
	done      chan struct{}
	closeOnce sync.Once
	quit      bool
}

// Mount calls Init and starts executing the returned command. The screen is
// unmounted through t.Cleanup.
func Mount(t testing.TB, model Component) *Screen {
	t.Helper()
	s := &Screen{
		t:     t,
		model: model,
		msgs:  make(chan tea.Msg, 64),
		done:  make(chan struct{}),
	}
	t.Cleanup(s.Unmount)
	s.exec(model.Init())
	return s
}

func (s *Screen) exec(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	go func() {
		s.deliver(cmd())
	}()
}

func (s *Screen) deliver(msg tea.Msg) {
	if msg == nil {
		return
	}
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, cmd := range batch {
			s.exec(cmd)
		}
		return
	}
	select {
	case s.msgs <- msg:
	case <-s.done:
	}
}

func (s *Screen) dispatch(msg tea.Msg) {
	if _, ok := msg.(tea.QuitMsg); ok {
		s.quit = true
		return
	}
	_, cmd := s.model.Update(msg)
	s.exec(cmd)
}

// Nodes returns the current accessible tree without processing pending
// messages.
func (s *Screen) Nodes() []surface.Node {
	return s.model.Nodes()
}

// Text renders the current tree as plain accessible text, one node per line.
func (s *Screen) Text() string {
	nodes := s.model.Nodes()
	lines := make([]string, 0, len(nodes))
	for _, node := range nodes {
		lines = append(lines, node.Name)
	}
	return strings.Join(lines, "\n")
}

// Send applies msg immediately.
func (s *Screen) Send(msg tea.Msg) {
	s.dispatch(msg)
}

// Click activates a button node with the key it advertises.
func (s *Screen) Click(node surface.Node) {
	s.t.Helper()
	if node.Role != surface.RoleButton {
		s.t.Fatalf("click: node %q has role %q, want button", node.Name, node.Role)
	}
	s.dispatch(KeyMsg(node.Key))
}

// Quit reports whether the component returned tea.Quit.
func (s *Screen) Quit() bool {
	return s.quit
}

// WaitFor processes messages until cond holds or timeout elapses.
func (s *Screen) WaitFor(timeout time.Duration, cond func([]surface.Node) bool) bool {
	if cond(s.model.Nodes()) {
		return true
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	for {
		select {
		case msg := <-s.msgs:
			s.dispatch(msg)
			if cond(s.model.Nodes()) {
				return true
			}
		case <-timer.C:
			return false
		}
	}
}

// Settle processes every message that arrives within d.
func (s *Screen) Settle(d time.Duration) {
	s.WaitFor(d, func([]surface.Node) bool { return false })
}

// FindByText waits for a node whose accessible name equals text.
func (s *Screen) FindByText(text string) surface.Node {
	s.t.Helper()
	var found surface.Node
	ok := s.WaitFor(DefaultFindTimeout, func(nodes []surface.Node) bool {
		var hit bool
		found, hit = surface.ByText(nodes, text)
		return hit
	})
	if !ok {
		s.t.Fatalf("no node with text %q after %s; screen:\n%s", text, DefaultFindTimeout, s.Text())
	}
	return found
}

// FindByRole waits for exactly one node with role.
func (s *Screen) FindByRole(role surface.Role) surface.Node {
	s.t.Helper()
	ok := s.WaitFor(DefaultFindTimeout, func(nodes []surface.Node) bool {
		return len(surface.AllByRole(nodes, role)) == 1
	})
	if !ok {
		s.t.Fatalf("no single %s node after %s; screen:\n%s", role, DefaultFindTimeout, s.Text())
	}
	return surface.AllByRole(s.model.Nodes(), role)[0]
}

// GetByRole returns the single node with role right now.
func (s *Screen) GetByRole(role surface.Role) surface.Node {
	s.t.Helper()
	nodes := surface.AllByRole(s.model.Nodes(), role)
	if len(nodes) != 1 {
		s.t.Fatalf("found %d %s nodes, want 1; screen:\n%s", len(nodes), role, s.Text())
	}
	return nodes[0]
}

// AllByRole returns every node with role right now.
func (s *Screen) AllByRole(role surface.Role) []surface.Node {
	return surface.AllByRole(s.model.Nodes(), role)
}

// QueryByText returns the node named text, if present right now.
func (s *Screen) QueryByText(text string) (surface.Node, bool) {
	return surface.ByText(s.model.Nodes(), text)
}

// Unmount unmounts the component when it supports it and stops delivering
// messages. Late command results are discarded.
func (s *Screen) Unmount() {
	s.closeOnce.Do(func() {
		if u, ok := s.model.(unmounter); ok {
			u.Unmount()
		}
		close(s.done)
	})
}

// KeyMsg builds the key message for a key name such as "enter" or "q".
func KeyMsg(name string) tea.KeyMsg {
	switch name {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case " ", "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(name)}
	}
}
