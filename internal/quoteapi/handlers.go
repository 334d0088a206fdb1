package quoteapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/csheth/quoteoftheday/internal/quote"
)

// Plain-text reasons returned with 400 responses from POST /quote.
const (
	ReasonEmptyBody     = "Request body is empty"
	ReasonMalformedBody = "Failed to decode request body"
	ReasonMissingText   = "Missing quote text"
	ReasonTextNotString = "String required for field text"
)

// QuoteStore is the storage the handlers need.
type QuoteStore interface {
	Add(ctx context.Context, text string) (int, error)
	Today(ctx context.Context) (quote.Quote, error)
}

func sendJSONResponse(log *zap.Logger, w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error("failed to encode and write JSON response", zap.Error(err))
	}
}

func sendTextError(w http.ResponseWriter, statusCode int, reason string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(statusCode)
	_, _ = io.WriteString(w, reason)
}

// NewQuoteOfTheDayHandler serves GET /quoteoftheday.
func NewQuoteOfTheDayHandler(logger *zap.Logger, qs QuoteStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.quote.QuoteOfTheDay"
		log := logger.With(zap.String("op", op))

		q, err := qs.Today(r.Context())
		if err != nil {
			if errors.Is(err, ErrNoQuotes) {
				log.Info("no quotes to pick from")
				sendTextError(w, http.StatusNotFound, "No quotes found")
				return
			}
			log.Error("failed to pick quote of the day", zap.Error(err))
			sendTextError(w, http.StatusInternalServerError, "Failed to load quote")
			return
		}

		log.Debug("serving quote of the day", zap.Int("length", len(q.Text)))
		sendJSONResponse(log, w, http.StatusOK, q)
	}
}

// NewUploadQuoteHandler serves POST /quote. The body must be a JSON object
// whose text field is present and a string; the response is 204 on success.
func NewUploadQuoteHandler(logger *zap.Logger, qs QuoteStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.quote.Upload"
		log := logger.With(zap.String("op", op))
		defer r.Body.Close()

		var fields map[string]json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
			if errors.Is(err, io.EOF) {
				log.Warn("request body is empty")
				sendTextError(w, http.StatusBadRequest, ReasonEmptyBody)
				return
			}
			log.Warn("failed to decode request body", zap.Error(err))
			sendTextError(w, http.StatusBadRequest, ReasonMalformedBody)
			return
		}

		raw, ok := fields["text"]
		if !ok || string(raw) == "null" {
			log.Warn("upload without text")
			sendTextError(w, http.StatusBadRequest, ReasonMissingText)
			return
		}
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			log.Warn("upload text is not a string", zap.ByteString("text", raw))
			sendTextError(w, http.StatusBadRequest, ReasonTextNotString)
			return
		}

		count, err := qs.Add(r.Context(), text)
		if err != nil {
			log.Error("failed to store quote", zap.Error(err))
			sendTextError(w, http.StatusInternalServerError, "Failed to store quote")
			return
		}

		log.Info("quote stored", zap.Int("count", count))
		w.WriteHeader(http.StatusNoContent)
	}
}
