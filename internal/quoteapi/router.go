package quoteapi

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Route paths served by the API.
const (
	PathQuoteOfTheDay = "/quoteoftheday"
	PathQuote         = "/quote"
)

// NewRouter wires the quote endpoints behind panic recovery and access logging.
func NewRouter(logger *zap.Logger, qs QuoteStore) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	router := mux.NewRouter()
	router.Use(recoverer(logger))
	router.Use(accessLog(logger))

	router.HandleFunc(PathQuoteOfTheDay, NewQuoteOfTheDayHandler(logger, qs)).Methods(http.MethodGet)
	router.HandleFunc(PathQuote, NewUploadQuoteHandler(logger, qs)).Methods(http.MethodPost)

	return router
}
