package middleware

import (
	"net/http"
	"strconv"
	"time"

	"promptglot/internal/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type responseWriter struct {
	http.ResponseWriter
	status      int
	bytes       int
	wroteHeader bool
}

func (rw *responseWriter) WriteHeader(code int) {
	if !rw.wroteHeader {
		rw.status = code
		rw.wroteHeader = true
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(p []byte) (int, error) {
	if !rw.wroteHeader {
		rw.wroteHeader = true
	}
	n, err := rw.ResponseWriter.Write(p)
	rw.bytes += n
	return n, err
}

// Logger writes one structured access log line per request and records the
// request in the HTTP metrics.
func Logger(l zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rw, r)
			elapsed := time.Since(start)

			route := routePattern(r)
			metrics.RecordRequest(r.Method, route, strconv.Itoa(rw.status), elapsed)

			event := l.Info()
			if rw.status >= http.StatusInternalServerError {
				event = l.Error()
			} else if rw.status >= http.StatusBadRequest {
				event = l.Warn()
			}
			event.
				Str("request_id", RequestIDFromContext(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", rw.status).
				Int("bytes", rw.bytes).
				Dur("duration", elapsed).
				Msg("http request")
		})
	}
}

// routePattern keeps metric label cardinality bounded: unmatched paths share
// one label.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}
