package quote

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Quote is the immutable value rendered by the quote view.
type Quote struct {
	Text string `json:"text"`
}

// Draft is the JSON object posted to the upload endpoint. It is a plain map so
// callers can send payloads the server must reject (missing or non-string
// text) as well as well-formed ones.
type Draft map[string]any

// TextDraft builds the well-formed upload payload {"text": text}.
func TextDraft(text string) Draft {
	return Draft{"text": text}
}

// Text reports the draft's text when it is present and a string.
func (d Draft) Text() (string, bool) {
	value, ok := d["text"]
	if !ok {
		return "", false
	}
	text, ok := value.(string)
	return text, ok
}

var (
	// ErrTransport marks failures that happened before any HTTP response arrived.
	ErrTransport = errors.New("quote api unreachable")
	// ErrMalformedPayload marks a success response whose body lacks a string text field.
	ErrMalformedPayload = errors.New("malformed quote payload")
)

// StatusError reports a response outside the endpoint's success status.
type StatusError struct {
	Op         string
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: quote api error: %s", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: quote api error: %s (%s)", e.Op, e.Status, e.Body)
}

func newStatusError(op string, resp *http.Response) *StatusError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return &StatusError{
		Op:         op,
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       strings.TrimSpace(string(body)),
	}
}

// Decode reads a quote-of-the-day body. The text field must be present and
// must be a JSON string; anything else is ErrMalformedPayload.
func Decode(reader io.Reader) (Quote, error) {
	var fields map[string]json.RawMessage
	if err := json.NewDecoder(reader).Decode(&fields); err != nil {
		return Quote{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	raw, ok := fields["text"]
	if !ok || string(raw) == "null" {
		return Quote{}, fmt.Errorf("%w: missing text field", ErrMalformedPayload)
	}
	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		return Quote{}, fmt.Errorf("%w: text is not a string", ErrMalformedPayload)
	}
	return Quote{Text: text}, nil
}
