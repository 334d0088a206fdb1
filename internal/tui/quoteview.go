package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/quoteoftheday/internal/quote"
	"github.com/csheth/quoteoftheday/internal/surface"
	"github.com/csheth/quoteoftheday/internal/viewstate"
)

// QuoteView shows one quote with a like button. The like flag lives only in
// this view.
type QuoteView struct {
	quote quote.Quote
	like  viewstate.Like
	width int
}

// NewQuoteView mounts a quote view. The like button starts unliked.
func NewQuoteView(q quote.Quote) *QuoteView {
	return &QuoteView{quote: q, width: defaultViewportWidth}
}

func (v *QuoteView) Init() tea.Cmd {
	return nil
}

func (v *QuoteView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, keys.Like) {
			v.like = v.like.Toggle()
		}
	case tea.WindowSizeMsg:
		v.width = msg.Width
	}
	return v, nil
}

func (v *QuoteView) View() string {
	return surface.Render(v.Nodes(), wrapWidth(v.width))
}

func (v *QuoteView) Nodes() []surface.Node {
	return []surface.Node{
		surface.Heading(2, quoteHeading),
		surface.Text(v.quote.Text),
		surface.Button(v.like.Label(), likeKey),
	}
}

// Liked reports the current toggle state.
func (v *QuoteView) Liked() bool {
	return v.like.Liked()
}
