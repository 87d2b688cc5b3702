// Package routepath stores canonical HTTP paths for web modules.
package routepath

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	Root                    = "/"
	Login                   = "/login"
	Signup                  = "/signup"
	Logout                  = "/logout"
	Health                  = "/up"
	Metrics                 = "/metrics"
	StaticPrefix            = "/static/"
	AuthCallback            = "/auth/callback"
	Dashboard               = "/dashboard"
	DashboardHoldings       = "/dashboard/holdings"
	DashboardHoldingsDelete = "/dashboard/holdings/delete"
	History                 = "/history"
	HistorySnapshot         = "/history/snapshot"
	LangQueryKey            = "lang"
)

// Static returns the path of an embedded static asset.
func Static(name string) string {
	return StaticPrefix + strings.TrimLeft(strings.TrimSpace(name), "/")
}

// WithLang returns path with the language query parameter set.
func WithLang(path, lang string) string {
	lang = strings.TrimSpace(lang)
	if lang == "" {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + LangQueryKey + "=" + url.QueryEscape(lang)
}

// ParsePublicBaseURL checks that raw is an absolute http(s) URL and returns
// it without a trailing slash. An empty raw is allowed and returns "".
func ParsePublicBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("public base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("public base url %q must use http or https", raw)
	}
	if parsed.Host == "" || parsed.RawQuery != "" || parsed.Fragment != "" {
		return "", fmt.Errorf("public base url %q must be an origin with an optional path", raw)
	}
	return strings.TrimRight(parsed.String(), "/"), nil
}

// OAuthStart returns the hosted login URL that sends the visitor back to the
// dashboard of publicBaseURL once authenticated.
func OAuthStart(authURL, publicBaseURL string) string {
	authURL = strings.TrimSpace(authURL)
	target := strings.TrimRight(strings.TrimSpace(publicBaseURL), "/") + Dashboard
	sep := "?"
	if strings.Contains(authURL, "?") {
		sep = "&"
	}
	return authURL + sep + "redirect=" + url.QueryEscape(target)
}
