package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/quoteoftheday/internal/quote"
	"github.com/csheth/quoteoftheday/internal/quoteapi/quoteapitest"
)

func newClient(t *testing.T, srv *quoteapitest.Server) *quote.Client {
	t.Helper()
	client, err := quote.New(quote.Config{BaseURL: srv.URL(), Timeout: 2 * time.Second})
	if err != nil {
		t.Fatalf("quote.New: %v", err)
	}
	return client
}

type sourceFunc func(ctx context.Context) (quote.Quote, error)

func (f sourceFunc) QuoteOfTheDay(ctx context.Context) (quote.Quote, error) {
	return f(ctx)
}

type sinkFunc func(ctx context.Context, draft quote.Draft) error

func (f sinkFunc) Upload(ctx context.Context, draft quote.Draft) error {
	return f(ctx, draft)
}

// collect runs cmd synchronously and returns every message it produces,
// expanding batches.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, inner := range batch {
			out = append(out, collect(inner)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}
