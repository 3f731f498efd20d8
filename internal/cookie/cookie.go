// Package cookie provides the session cookie helpers. The storefront
// serves a single host, so cookies are host-scoped; there is no domain
// field to manage.
package cookie

import "net/http"

// SessionCookieName identifies the browsing session that owns a cart and
// a checkout state.
const SessionCookieName = "vitrine_session"

// SessionTTL is the session cookie lifetime in seconds (7 days).
const SessionTTL = 7 * 24 * 60 * 60

// Config holds cookie settings that differ between environments.
type Config struct {
	// Secure requires HTTPS for the cookie. True in production.
	Secure bool
}

// NewConfig creates a cookie configuration.
func NewConfig(secure bool) *Config {
	return &Config{Secure: secure}
}

// SetSession sets the session cookie. HttpOnly and SameSite=Lax keep it
// out of scripts and cross-site POSTs.
func (c *Config) SetSession(w http.ResponseWriter, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   SessionTTL,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSession removes the session cookie.
func (c *Config) ClearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Get retrieves a cookie value from the request, or "" if absent.
func Get(r *http.Request, name string) string {
	ck, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return ck.Value
}
