package handoff

import (
	"net/http"
	"strings"
	"time"

	"github.com/louisbranch/portfolio-tracker/internal/services/web/platform/requestmeta"
)

// CookieName carries the pending handoff key to the next page load.
const CookieName = "pt_handoff"

// WriteCookie points the browser's next request at key.
func WriteCookie(w http.ResponseWriter, r *http.Request, key string, ttl time.Duration, policy requestmeta.SchemePolicy) {
	if w == nil || strings.TrimSpace(key) == "" {
		return
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    key,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   requestmeta.IsHTTPS(r, policy),
		SameSite: http.SameSiteLaxMode,
	})
}

// ReadCookie returns the pending handoff key, if any.
func ReadCookie(r *http.Request) (string, bool) {
	if r == nil {
		return "", false
	}
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return "", false
	}
	value := strings.TrimSpace(cookie.Value)
	return value, value != ""
}

// ClearCookie expires the handoff cookie.
func ClearCookie(w http.ResponseWriter, r *http.Request, policy requestmeta.SchemePolicy) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   requestmeta.IsHTTPS(r, policy),
		SameSite: http.SameSiteLaxMode,
	})
}
