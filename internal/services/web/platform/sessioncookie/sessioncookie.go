// Package sessioncookie moves the backend session cookie between the browser
// and the backend. The value is opaque to the web service.
package sessioncookie

import (
	"net/http"
	"strings"

	"github.com/louisbranch/portfolio-tracker/internal/services/web/platform/requestmeta"
)

// Name is the backend-issued session cookie name.
const Name = "session_token"

// Read returns the trimmed session cookie value when present.
func Read(r *http.Request) (string, bool) {
	if r == nil {
		return "", false
	}
	cookie, err := r.Cookie(Name)
	if err != nil || cookie == nil {
		return "", false
	}
	value := strings.TrimSpace(cookie.Value)
	if value == "" {
		return "", false
	}
	return value, true
}

// Outbound returns the cookies a backend call made on behalf of r should carry.
func Outbound(r *http.Request) []*http.Cookie {
	value, ok := Read(r)
	if !ok {
		return nil
	}
	return []*http.Cookie{{Name: Name, Value: value}}
}

// Relay copies backend-issued session cookies onto the browser response. The
// backend's Domain is dropped so the cookie binds to the web host, and the
// Secure flag follows the browser-facing scheme.
func Relay(w http.ResponseWriter, r *http.Request, cookies []*http.Cookie, policy requestmeta.SchemePolicy) {
	if w == nil {
		return
	}
	for _, upstream := range cookies {
		if upstream == nil || upstream.Name != Name {
			continue
		}
		relayed := &http.Cookie{
			Name:     Name,
			Value:    upstream.Value,
			Path:     "/",
			Expires:  upstream.Expires,
			MaxAge:   upstream.MaxAge,
			HttpOnly: true,
			Secure:   requestmeta.IsHTTPS(r, policy),
			SameSite: http.SameSiteLaxMode,
		}
		http.SetCookie(w, relayed)
	}
}

// Clear expires the session cookie in the browser.
func Clear(w http.ResponseWriter, r *http.Request, policy requestmeta.SchemePolicy) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     Name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   requestmeta.IsHTTPS(r, policy),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
