package quote_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/csheth/quoteoftheday/internal/quote"
	"github.com/csheth/quoteoftheday/internal/quoteapi/quoteapitest"
)

func newClient(t *testing.T, srv *quoteapitest.Server) *quote.Client {
	t.Helper()
	client, err := quote.New(quote.Config{BaseURL: srv.URL(), Timeout: 2 * time.Second})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return client
}

func TestNewValidatesBaseURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		baseURL string
		want    string
		wantErr bool
	}{
		{name: "plain", baseURL: "http://localhost:8080", want: "http://localhost:8080"},
		{name: "trailing slash", baseURL: " https://quotes.example.com/ ", want: "https://quotes.example.com"},
		{name: "empty", baseURL: "  ", wantErr: true},
		{name: "no scheme", baseURL: "localhost:8080", wantErr: true},
		{name: "ftp", baseURL: "ftp://quotes.example.com", wantErr: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			client, err := quote.New(quote.Config{BaseURL: tc.baseURL})
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tc.baseURL)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if client.BaseURL() != tc.want {
				t.Fatalf("BaseURL = %q, want %q", client.BaseURL(), tc.want)
			}
		})
	}
}

func TestQuoteOfTheDay(t *testing.T) {
	t.Parallel()

	srv := quoteapitest.NewServer(t)
	client := newClient(t, srv)

	q, err := client.QuoteOfTheDay(context.Background())
	if err != nil {
		t.Fatalf("QuoteOfTheDay returned error: %v", err)
	}
	if q.Text != "Just do it" {
		t.Fatalf("unexpected quote %q", q.Text)
	}
	reqs := srv.Requests()
	if len(reqs) != 1 || reqs[0].Method != http.MethodGet || reqs[0].Path != "/quoteoftheday" {
		t.Fatalf("unexpected requests %+v", reqs)
	}
}

func TestQuoteOfTheDayFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		setup      func(*quoteapitest.Server)
		wantIs     error
		wantStatus int
	}{
		{
			name: "server error",
			setup: func(s *quoteapitest.Server) {
				s.Use(http.MethodGet, "/quoteoftheday", func(w http.ResponseWriter, r *http.Request) {
					http.Error(w, "down", http.StatusInternalServerError)
				})
			},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name: "not found",
			setup: func(s *quoteapitest.Server) {
				s.Use(http.MethodGet, "/quoteoftheday", func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(http.StatusNotFound)
				})
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name: "network failure",
			setup: func(s *quoteapitest.Server) {
				s.FailNetwork(http.MethodGet, "/quoteoftheday")
			},
			wantIs: quote.ErrTransport,
		},
		{
			name:   "missing text",
			setup:  respondWith(`{"quote":"Just do it"}`),
			wantIs: quote.ErrMalformedPayload,
		},
		{
			name:   "null text",
			setup:  respondWith(`{"text":null}`),
			wantIs: quote.ErrMalformedPayload,
		},
		{
			name:   "numeric text",
			setup:  respondWith(`{"text":7}`),
			wantIs: quote.ErrMalformedPayload,
		},
		{
			name:   "not json",
			setup:  respondWith(`<html>`),
			wantIs: quote.ErrMalformedPayload,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			srv := quoteapitest.NewServer(t)
			tc.setup(srv)
			client := newClient(t, srv)

			_, err := client.QuoteOfTheDay(context.Background())
			if err == nil {
				t.Fatalf("expected error")
			}
			if tc.wantIs != nil && !errors.Is(err, tc.wantIs) {
				t.Fatalf("expected %v, got %v", tc.wantIs, err)
			}
			if tc.wantStatus != 0 {
				var statusErr *quote.StatusError
				if !errors.As(err, &statusErr) {
					t.Fatalf("expected StatusError, got %T: %v", err, err)
				}
				if statusErr.StatusCode != tc.wantStatus {
					t.Fatalf("status = %d, want %d", statusErr.StatusCode, tc.wantStatus)
				}
			}
		})
	}
}

func respondWith(body string) func(*quoteapitest.Server) {
	return func(s *quoteapitest.Server) {
		s.Use(http.MethodGet, "/quoteoftheday", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(body))
		})
	}
}

func TestQuoteOfTheDayHonoursContext(t *testing.T) {
	t.Parallel()

	srv := quoteapitest.NewServer(t)
	srv.Hold(http.MethodGet, "/quoteoftheday")
	client := newClient(t, srv)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := client.QuoteOfTheDay(ctx)
	if !errors.Is(err, quote.ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
	if !strings.Contains(err.Error(), "context deadline exceeded") {
		t.Fatalf("expected deadline in error, got %v", err)
	}
}

func TestUpload(t *testing.T) {
	t.Parallel()

	srv := quoteapitest.NewServer(t)
	client := newClient(t, srv)

	if err := client.Upload(context.Background(), quote.TextDraft("Optimise for Clarity")); err != nil {
		t.Fatalf("Upload returned error: %v", err)
	}

	reqs := srv.Requests()
	if len(reqs) != 1 {
		t.Fatalf("expected 1 request, got %d", len(reqs))
	}
	req := reqs[0]
	if req.Method != http.MethodPost || req.Path != "/quote" {
		t.Fatalf("unexpected request %s %s", req.Method, req.Path)
	}
	if got := req.Header.Get("Content-Type"); got != "application/json" {
		t.Fatalf("content type = %q", got)
	}
	var body map[string]any
	if err := json.Unmarshal(req.Body, &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["text"] != "Optimise for Clarity" || len(body) != 1 {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestUploadRejected(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		draft      quote.Draft
		wantReason string
	}{
		{name: "empty draft", draft: quote.Draft{}, wantReason: "Missing quote text"},
		{name: "nil draft", draft: nil, wantReason: "Missing quote text"},
		{name: "numeric text", draft: quote.Draft{"text": 42}, wantReason: "String required for field text"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			srv := quoteapitest.NewServer(t)
			client := newClient(t, srv)

			err := client.Upload(context.Background(), tc.draft)
			var statusErr *quote.StatusError
			if !errors.As(err, &statusErr) {
				t.Fatalf("expected StatusError, got %v", err)
			}
			if statusErr.StatusCode != http.StatusBadRequest || statusErr.Body != tc.wantReason {
				t.Fatalf("unexpected rejection %d %q", statusErr.StatusCode, statusErr.Body)
			}
		})
	}
}

func TestUploadNetworkFailure(t *testing.T) {
	t.Parallel()

	srv := quoteapitest.NewServer(t)
	srv.FailNetwork(http.MethodPost, "/quote")
	client := newClient(t, srv)

	if err := client.Upload(context.Background(), quote.TextDraft("x")); !errors.Is(err, quote.ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
}

func TestDraftText(t *testing.T) {
	t.Parallel()

	if text, ok := quote.TextDraft("Just do it").Text(); !ok || text != "Just do it" {
		t.Fatalf("TextDraft.Text = (%q, %v)", text, ok)
	}
	if _, ok := (quote.Draft{}).Text(); ok {
		t.Fatalf("empty draft reported text")
	}
	if _, ok := (quote.Draft{"text": 42}).Text(); ok {
		t.Fatalf("numeric text reported as string")
	}
}
