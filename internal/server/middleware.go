package server

import (
	"context"
	"net/http"
	"time"

	"taxmaster/statement-extractor/internal/logging"

	"github.com/google/uuid"
)

type contextKey string

const requestIDKey contextKey = "request_id"

// RequestIDFromContext returns the request id attached by the middleware, or
// an empty string.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// requestID tags every request with a uuid, echoed in the X-Request-ID
// response header so the calling service can correlate logs.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

// requestLogger logs one line per request with method, path, status, and
// duration.
func requestLogger(logger logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			started := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)

			logger.Info("Handled request",
				logging.Field{Key: logging.FieldRequestID, Value: RequestIDFromContext(r.Context())},
				logging.Field{Key: logging.FieldOperation, Value: r.Method + " " + r.URL.Path},
				logging.Field{Key: "status", Value: sw.status},
				logging.Field{Key: logging.FieldDuration, Value: time.Since(started).Milliseconds()})
		})
	}
}

// recoverer converts handler panics into the uniform JSON failure payload.
// The caller must never see a bare 500 with no body.
func recoverer(logger logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("Handler panic",
						logging.Field{Key: logging.FieldRequestID, Value: RequestIDFromContext(r.Context())},
						logging.Field{Key: logging.FieldError, Value: rec})
					writeFailure(w, http.StatusInternalServerError, "internal error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
