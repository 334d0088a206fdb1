package tui

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/key"

	"github.com/csheth/quoteoftheday/internal/quote"
	"github.com/csheth/quoteoftheday/internal/viewstate"
)

const (
	quoteHeading = "Quote of the Day"
	appTitle     = "quoteoftheday"

	// DefaultLoadingReason is the accessible name of the spinner while the
	// quote is loading.
	DefaultLoadingReason = "Quote is loading..."
	// DefaultUploadingReason is the accessible name of the spinner while an
	// upload is in flight.
	DefaultUploadingReason = "Quote is uploading..."

	likeKey = "enter"

	minViewportWidth          = 40
	viewportHorizontalPadding = 4
	defaultViewportWidth      = 80
)

// QuoteSource loads the quote of the day.
type QuoteSource interface {
	QuoteOfTheDay(ctx context.Context) (quote.Quote, error)
}

// QuoteSink uploads a quote draft.
type QuoteSink interface {
	Upload(ctx context.Context, draft quote.Draft) error
}

var (
	// ErrNoSource is the failure of a Loader built without a Source.
	ErrNoSource = errors.New("tui: no quote source configured")
	// ErrNoSink is the failure of an Uploader built without a Sink.
	ErrNoSink = errors.New("tui: no quote sink configured")
)

// unconfigured answers for a missing Source or Sink.
type unconfigured struct{}

func (unconfigured) QuoteOfTheDay(context.Context) (quote.Quote, error) {
	return quote.Quote{}, ErrNoSource
}

func (unconfigured) Upload(context.Context, quote.Draft) error {
	return ErrNoSink
}

type keyMap struct {
	Like key.Binding
	Quit key.Binding
}

var keys = keyMap{
	Like: key.NewBinding(
		key.WithKeys(likeKey, " ", "l"),
		key.WithHelp("enter", "like"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c", "esc", "q"),
		key.WithHelp("q", "quit"),
	),
}

var instanceCounter int64

// nextInstanceID tags result messages with the view that issued the request.
func nextInstanceID() int64 {
	return atomic.AddInt64(&instanceCounter, 1)
}

type quoteLoadedMsg struct {
	owner   int64
	attempt viewstate.Attempt
	quote   quote.Quote
	err     error
}

type quoteUploadedMsg struct {
	owner   int64
	attempt viewstate.Attempt
	err     error
}

func wrapWidth(windowWidth int) int {
	width := windowWidth - viewportHorizontalPadding
	if width < minViewportWidth {
		width = minViewportWidth
	}
	return width
}
