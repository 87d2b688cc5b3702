package callback

import (
	"net/url"
	"strings"
)

// SessionIDParam is the fragment parameter carrying the OAuth session id.
const SessionIDParam = "session_id"

// ParseFragment extracts the session id from a URL fragment such as
// "#session_id=abc123". A blank or missing id is reported as not ok.
func ParseFragment(raw string) (string, bool) {
	raw = strings.TrimPrefix(strings.TrimSpace(raw), "#")
	if raw == "" {
		return "", false
	}
	// Malformed pairs are skipped; the well-formed ones still count.
	values, _ := url.ParseQuery(raw)
	sessionID := strings.TrimSpace(values.Get(SessionIDParam))
	return sessionID, sessionID != ""
}
