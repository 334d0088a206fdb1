package quote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	quoteOfTheDayPath     = "/quoteoftheday"
	uploadPath            = "/quote"
	defaultRequestTimeout = 10 * time.Second
)

// Config describes how to build an API client.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Client talks to the quote API: one GET for the quote of the day and one
// POST for uploads.
type Client struct {
	baseURL string
	client  *http.Client
	log     *zap.Logger
}

// New validates the base URL and returns a ready client.
func New(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, errors.New("quote api base url is required")
	}
	parsed, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("invalid quote api base url %q: %w", base, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("invalid quote api base url %q: scheme must be http or https", base)
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL: base,
		client:  pickHTTPClient(cfg.HTTPClient, cfg.Timeout),
		log:     log.Named("quote"),
	}, nil
}

func pickHTTPClient(custom *http.Client, timeout time.Duration) *http.Client {
	if custom != nil {
		return custom
	}
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &http.Client{Timeout: timeout}
}

// BaseURL returns the normalized API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// QuoteOfTheDay issues GET {base}/quoteoftheday and decodes the body.
func (c *Client) QuoteOfTheDay(ctx context.Context) (Quote, error) {
	const op = "quote.QuoteOfTheDay"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+quoteOfTheDayPath, nil)
	if err != nil {
		return Quote{}, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Warn("request failed", zap.String("op", op), zap.Error(err))
		return Quote{}, fmt.Errorf("%s: %w: %v", op, ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		statusErr := newStatusError(op, resp)
		c.log.Warn("unexpected status", zap.String("op", op), zap.Int("status", resp.StatusCode))
		return Quote{}, statusErr
	}

	q, err := Decode(resp.Body)
	if err != nil {
		c.log.Warn("undecodable body", zap.String("op", op), zap.Error(err))
		return Quote{}, fmt.Errorf("%s: %w", op, err)
	}
	c.log.Debug("quote loaded", zap.Int("length", len(q.Text)))
	return q, nil
}

// Upload posts the draft as JSON to {base}/quote. Any 2xx is success.
func (c *Client) Upload(ctx context.Context, draft Draft) error {
	const op = "quote.Upload"
	if draft == nil {
		draft = Draft{}
	}
	buf, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("%s: encode draft: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+uploadPath, bytes.NewReader(buf))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Warn("request failed", zap.String("op", op), zap.Error(err))
		return fmt.Errorf("%s: %w: %v", op, ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := newStatusError(op, resp)
		c.log.Warn("upload rejected", zap.Int("status", resp.StatusCode), zap.String("reason", statusErr.Body))
		return statusErr
	}
	c.log.Debug("quote uploaded", zap.Int("status", resp.StatusCode))
	return nil
}
