package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

const (
	// RequestIDHeader is the header name for the request ID.
	RequestIDHeader = "X-Request-ID"

	// RequestIDContextKey is the context key for the request ID.
	RequestIDContextKey contextKey = "request_id"
)

// RequestID attaches a unique ID to each request. An existing
// X-Request-ID header (from a load balancer) is reused; otherwise a
// fresh UUID is generated. The ID is echoed on the response and stored
// in the request context.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		w.Header().Set(RequestIDHeader, requestID)

		ctx := context.WithValue(r.Context(), RequestIDContextKey, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestID retrieves the request ID from the context.
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIDContextKey).(string); ok {
		return id
	}
	return ""
}
