package quoteapi

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/csheth/quoteoftheday/internal/quote"
)

// ErrNoQuotes is returned when the book is empty.
var ErrNoQuotes = errors.New("no quotes in book")

// Book is an in-memory quote store. The quote of the day is picked from the
// calendar day on the first Today call of that day and kept until midnight
// UTC, so quotes added during the day do not change it.
type Book struct {
	mu     sync.RWMutex
	quotes []quote.Quote
	now    func() time.Time

	// pickedDay and picked pin the quote of the day; picked is -1 when
	// nothing has been picked yet.
	pickedDay int64
	picked    int
}

// NewBook returns a book holding the given quotes in order.
func NewBook(seed []string) *Book {
	quotes := make([]quote.Quote, 0, len(seed))
	for _, text := range seed {
		quotes = append(quotes, quote.Quote{Text: text})
	}
	return &Book{quotes: quotes, now: time.Now, picked: -1}
}

// Add appends a quote and returns how many quotes the book now holds.
func (b *Book) Add(ctx context.Context, text string) (int, error) {
	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	default:
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.quotes = append(b.quotes, quote.Quote{Text: text})
	return len(b.quotes), nil
}

// Today returns the quote of the day.
func (b *Book) Today(ctx context.Context) (quote.Quote, error) {
	select {
	case <-ctx.Done():
		return quote.Quote{}, ctx.Err()
	default:
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.quotes) == 0 {
		return quote.Quote{}, ErrNoQuotes
	}
	day := b.now().UTC().Unix() / int64(24*time.Hour/time.Second)
	if b.picked < 0 || b.pickedDay != day {
		b.pickedDay = day
		b.picked = int(day % int64(len(b.quotes)))
	}
	return b.quotes[b.picked], nil
}

// All returns a copy of every stored quote.
func (b *Book) All(ctx context.Context) ([]quote.Quote, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	listCopy := make([]quote.Quote, len(b.quotes))
	copy(listCopy, b.quotes)
	return listCopy, nil
}

// Close drops every stored quote.
func (b *Book) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.quotes = []quote.Quote{}
	b.picked = -1
	return nil
}
