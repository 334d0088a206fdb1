// Package quoteapitest runs a scoped quote API for tests. Each test builds its
// own server, points its client at URL, and the server is closed through
// t.Cleanup; no process-wide stub is registered.
package quoteapitest

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/csheth/quoteoftheday/internal/quoteapi"
)

// Request is a copy of one request the server received.
type Request struct {
	Method string
	Path   string
	Header http.Header
	Body   []byte
}

type routeKey struct {
	method string
	path   string
}

// Option customizes a Server.
type Option func(*Server)

// WithQuotes seeds the backing book. The default book holds the single quote
// "Just do it" so the quote of the day is predictable.
func WithQuotes(texts ...string) Option {
	return func(s *Server) {
		s.book = quoteapi.NewBook(texts)
	}
}

// WithLogger routes the server's access log to log.
func WithLogger(log *zap.Logger) Option {
	return func(s *Server) {
		s.log = log
	}
}

// Server is the stub collaborator.
type Server struct {
	srv  *httptest.Server
	book *quoteapi.Book
	log  *zap.Logger

	mu        sync.Mutex
	router    http.Handler
	overrides map[routeKey]http.HandlerFunc
	requests  []Request
	holds     []func()
	closeOnce sync.Once
}

// NewServer starts a server and registers its shutdown with t.Cleanup.
func NewServer(t testing.TB, opts ...Option) *Server {
	t.Helper()
	s := &Server{
		book:      quoteapi.NewBook([]string{"Just do it"}),
		log:       zap.NewNop(),
		overrides: map[routeKey]http.HandlerFunc{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = quoteapi.NewRouter(s.log, s.book)
	s.srv = httptest.NewServer(http.HandlerFunc(s.serveHTTP))
	t.Cleanup(s.Close)
	return s
}

// URL is the base URL to inject into the client under test.
func (s *Server) URL() string {
	return s.srv.URL
}

// Client returns an HTTP client wired to the test server.
func (s *Server) Client() *http.Client {
	return s.srv.Client()
}

// Book exposes the backing store.
func (s *Server) Book() *quoteapi.Book {
	return s.book
}

// Use replaces the handler for one route until Reset is called.
func (s *Server) Use(method, path string, handler http.HandlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides[routeKey{method: method, path: path}] = handler
}

// Reset drops every override installed with Use, FailNetwork or Hold.
func (s *Server) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides = map[routeKey]http.HandlerFunc{}
}

// FailNetwork makes the route drop the connection without writing a
// response, which clients observe as a transport error.
func (s *Server) FailNetwork(method, path string) {
	s.Use(method, path, func(w http.ResponseWriter, r *http.Request) {
		hijacker, ok := w.(http.Hijacker)
		if !ok {
			panic("quoteapitest: response writer cannot be hijacked")
		}
		conn, _, err := hijacker.Hijack()
		if err != nil {
			panic("quoteapitest: hijack: " + err.Error())
		}
		_ = conn.Close()
	})
}

// Hold blocks requests to the route until release is called, then serves
// them normally. Close releases every hold.
func (s *Server) Hold(method, path string) (release func()) {
	gate := make(chan struct{})
	var once sync.Once
	release = func() { once.Do(func() { close(gate) }) }

	s.mu.Lock()
	s.holds = append(s.holds, release)
	s.mu.Unlock()

	s.Use(method, path, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-gate:
		case <-r.Context().Done():
			return
		}
		s.router.ServeHTTP(w, r)
	})
	return release
}

// Requests returns the requests received so far, in arrival order.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// Close releases held requests and shuts the server down.
func (s *Server) Close() {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		holds := s.holds
		s.holds = nil
		s.mu.Unlock()
		for _, release := range holds {
			release()
		}
		s.srv.CloseClientConnections()
		s.srv.Close()
	})
}

func (s *Server) serveHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	_ = r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(body))

	s.mu.Lock()
	s.requests = append(s.requests, Request{
		Method: r.Method,
		Path:   r.URL.Path,
		Header: r.Header.Clone(),
		Body:   body,
	})
	override := s.overrides[routeKey{method: r.Method, path: r.URL.Path}]
	s.mu.Unlock()

	if override != nil {
		override(w, r)
		return
	}
	s.router.ServeHTTP(w, r)
}
