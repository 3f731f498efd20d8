// Package middleware holds the HTTP middleware shared by all routes:
// request IDs, request-scoped logging, Prometheus metrics and basic
// request limits.
package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"
)

type contextKey string

// Request body and timeout limits.
const (
	KB = 1024
	MB = 1024 * KB

	// DefaultMaxBodySize bounds JSON payloads; order submissions are small.
	DefaultMaxBodySize = 1 * MB

	// DefaultTimeout covers the slowest upstream round trip.
	DefaultTimeout = 30 * time.Second
)

// MaxBodySize limits request body size, returning 413 when exceeded.
func MaxBodySize(maxBytes int64) func(http.Handler) http.Handler {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodySize
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil && r.ContentLength > maxBytes {
				http.Error(w, "Request body too large", http.StatusRequestEntityTooLarge)
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// Timeout bounds request processing. When the handler does not finish in
// time and has not started writing, the client gets a 503.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			done := make(chan struct{})
			tw := &timeoutWriter{ResponseWriter: w}

			go func() {
				defer close(done)
				next.ServeHTTP(tw, r.WithContext(ctx))
			}()

			select {
			case <-done:
			case <-ctx.Done():
				tw.mu.Lock()
				defer tw.mu.Unlock()
				tw.timedOut = true
				if !tw.wroteHeader {
					tw.wroteHeader = true
					w.WriteHeader(http.StatusServiceUnavailable)
					w.Write([]byte("Request timeout"))
				}
			}
		})
	}
}

// timeoutWriter tracks whether the handler started responding and whether
// the deadline already fired. Once timed out, every later write from the
// still-running handler is dropped so the 503 body stays intact.
type timeoutWriter struct {
	http.ResponseWriter
	mu          sync.Mutex
	wroteHeader bool
	timedOut    bool
}

func (tw *timeoutWriter) WriteHeader(code int) {
	tw.mu.Lock()
	defer tw.mu.Unlock()

	if tw.timedOut || tw.wroteHeader {
		return
	}
	tw.wroteHeader = true
	tw.ResponseWriter.WriteHeader(code)
}

func (tw *timeoutWriter) Write(b []byte) (int, error) {
	tw.mu.Lock()
	defer tw.mu.Unlock()

	if tw.timedOut {
		return 0, context.DeadlineExceeded
	}
	if !tw.wroteHeader {
		tw.wroteHeader = true
		tw.ResponseWriter.WriteHeader(http.StatusOK)
	}
	return tw.ResponseWriter.Write(b)
}
