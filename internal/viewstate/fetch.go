package viewstate

import (
	"errors"

	"github.com/csheth/quoteoftheday/internal/quote"
)

// FetchErrorMessage is the only failure text a user sees for a quote fetch.
const FetchErrorMessage = "Error loading quote. Please try again later"

// Fetch is the view-state of the quote-of-the-day GET.
type Fetch struct {
	req   request
	quote quote.Quote
}

// Start begins a new attempt. Whatever the previous state was, the result is
// Pending and only results for the returned attempt will be applied.
func (f Fetch) Start() (Fetch, Attempt) {
	next := Fetch{req: f.req.start()}
	return next, next.req.attempt
}

// Resolve applies the outcome of attempt. A nil err with a decoded quote
// moves to Succeeded; any error moves to Failed. Results for another attempt,
// or arriving when nothing is pending, leave the state unchanged.
func (f Fetch) Resolve(attempt Attempt, q quote.Quote, err error) Fetch {
	if !f.req.accepts(attempt) {
		return f
	}
	next := Fetch{req: f.req}
	if err != nil {
		next.req.phase = Failed
		next.req.reason = err
		return next
	}
	next.req.phase = Succeeded
	next.quote = q
	return next
}

// Phase is the active variant.
func (f Fetch) Phase() Phase { return f.req.phase }

// Attempt is the number of the latest started request.
func (f Fetch) Attempt() Attempt { return f.req.attempt }

// Branch is what the loader renders.
func (f Fetch) Branch() Branch { return f.req.branch() }

// Reason is the failure behind Failed, or nil.
func (f Fetch) Reason() error { return f.req.reason }

// Quote returns the loaded quote; ok is false unless the state is Succeeded.
func (f Fetch) Quote() (quote.Quote, bool) {
	if f.req.phase != Succeeded {
		return quote.Quote{}, false
	}
	return f.quote, true
}

// Cause classifies the failure reason for logs; users never see it.
func (f Fetch) Cause() string {
	return causeOf(f.req.reason)
}

func causeOf(err error) string {
	if err == nil {
		return ""
	}
	var statusErr *quote.StatusError
	switch {
	case errors.Is(err, quote.ErrTransport):
		return "transport"
	case errors.As(err, &statusErr):
		return "status"
	case errors.Is(err, quote.ErrMalformedPayload):
		return "decode"
	default:
		return "other"
	}
}
