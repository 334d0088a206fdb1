package quoteapi

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDHeader = "X-Request-ID"

type responseWriterInterceptor struct {
	http.ResponseWriter
	statusCode    int
	bytesWritten  int
	headerWritten bool
}

func newResponseWriterInterceptor(w http.ResponseWriter) *responseWriterInterceptor {
	return &responseWriterInterceptor{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (wri *responseWriterInterceptor) WriteHeader(code int) {
	if wri.headerWritten {
		return
	}
	wri.ResponseWriter.WriteHeader(code)
	wri.statusCode = code
	wri.headerWritten = true
}

func (wri *responseWriterInterceptor) Write(b []byte) (int, error) {
	if !wri.headerWritten {
		wri.WriteHeader(http.StatusOK)
	}
	n, err := wri.ResponseWriter.Write(b)
	wri.bytesWritten += n
	return n, err
}

func (wri *responseWriterInterceptor) Flush() {
	if flusher, ok := wri.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

// accessLog logs one line per request. Incoming X-Request-ID values are kept;
// otherwise a fresh UUID is assigned and echoed back.
func accessLog(log *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		middlewareLog := log.With(zap.String("component", "middleware/access_log"))
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(requestIDHeader)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			w.Header().Set(requestIDHeader, requestID)

			interceptor := newResponseWriterInterceptor(w)
			startTime := time.Now()
			defer func() {
				middlewareLog.Info("request completed",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.String("remote_addr", r.RemoteAddr),
					zap.String("request_id", requestID),
					zap.Int("status", interceptor.statusCode),
					zap.Int("bytes", interceptor.bytesWritten),
					zap.Duration("duration", time.Since(startTime)),
				)
			}()

			next.ServeHTTP(interceptor, r)
		})
	}
}

func recoverer(log *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					log.Error("panic recovered", zap.Any("panic", rvr), zap.ByteString("stack", debug.Stack()))
					http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
