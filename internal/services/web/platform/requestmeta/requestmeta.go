// Package requestmeta resolves request scheme and origin facts used by cookie
// and mutation guards.
package requestmeta

import (
	"net/http"
	"net/url"
	"strings"
)

// SchemePolicy controls how the request scheme is derived.
//
// X-Forwarded-Proto is only honored when TrustForwardedProto is set, which
// should be the case only behind a proxy that overwrites the header.
type SchemePolicy struct {
	TrustForwardedProto bool
}

// IsHTTPS reports whether a request should be treated as HTTPS under policy.
func IsHTTPS(r *http.Request, policy SchemePolicy) bool {
	return Scheme(r, policy) == "https"
}

// Scheme returns "https" or "http" for the request.
func Scheme(r *http.Request, policy SchemePolicy) string {
	if r == nil {
		return "http"
	}
	if policy.TrustForwardedProto {
		switch forwarded := strings.ToLower(strings.TrimSpace(r.Header.Get("X-Forwarded-Proto"))); forwarded {
		case "http", "https":
			return forwarded
		}
	}
	if r.URL != nil {
		switch scheme := strings.ToLower(r.URL.Scheme); scheme {
		case "http", "https":
			return scheme
		}
	}
	if r.TLS != nil {
		return "https"
	}
	return "http"
}

// Origin returns the scheme and host the browser used to reach the request,
// or "" when the request carries no host.
func Origin(r *http.Request, policy SchemePolicy) string {
	if r == nil {
		return ""
	}
	host := strings.ToLower(strings.TrimSpace(r.Host))
	if host == "" && r.URL != nil {
		host = strings.ToLower(r.URL.Host)
	}
	if host == "" || strings.ContainsAny(host, "/?#@") {
		return ""
	}
	return Scheme(r, policy) + "://" + host
}

// HasSameOriginProof reports whether the Origin header, or failing that the
// Referer header, names the same scheme, host and port as the request.
func HasSameOriginProof(r *http.Request, policy SchemePolicy) bool {
	if r == nil {
		return false
	}
	self := origin{scheme: Scheme(r, policy)}
	self.host, self.port = splitHost(r.Host)
	if self.host == "" && r.URL != nil {
		self.host, self.port = splitHost(r.URL.Host)
	}
	if self.host == "" {
		return false
	}
	self = self.withDefaultPort()

	claimed := strings.TrimSpace(r.Header.Get("Origin"))
	if claimed == "" {
		claimed = strings.TrimSpace(r.Header.Get("Referer"))
	}
	if claimed == "" {
		return false
	}
	parsed, err := url.Parse(claimed)
	if err != nil || parsed.Scheme == "" {
		return false
	}
	other := origin{
		scheme: strings.ToLower(parsed.Scheme),
		host:   strings.ToLower(parsed.Hostname()),
		port:   parsed.Port(),
	}.withDefaultPort()
	return other == self
}

type origin struct {
	scheme string
	host   string
	port   string
}

func (o origin) withDefaultPort() origin {
	if o.port != "" {
		return o
	}
	switch o.scheme {
	case "https":
		o.port = "443"
	case "http":
		o.port = "80"
	}
	return o
}

func splitHost(raw string) (string, string) {
	parsed, err := url.Parse("//" + strings.TrimSpace(raw))
	if err != nil {
		return "", ""
	}
	return strings.ToLower(parsed.Hostname()), parsed.Port()
}
