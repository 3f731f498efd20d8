package storefront

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/vitrinebr/vitrine/internal/cookie"
)

// SessionID retrieves the browsing session ID from the session cookie.
// Returns "" when the cookie is missing.
func SessionID(r *http.Request) string {
	return cookie.Get(r, cookie.SessionCookieName)
}

// EnsureSession returns the session ID from the cookie, minting and
// setting a fresh one when the browser has none yet.
func EnsureSession(w http.ResponseWriter, r *http.Request, cfg *cookie.Config) string {
	if id := SessionID(r); id != "" {
		return id
	}

	id := uuid.New().String()
	cfg.SetSession(w, id)
	return id
}
