// Package i18n resolves the request language and prints localized copy for
// web pages. French is the default; English is the only other catalog.
package i18n

import (
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// LangParam is the query parameter used to select a language.
	LangParam = "lang"
	// LangCookieName stores the user's language preference.
	LangCookieName = "pt_lang"
)

var (
	supported = []language.Tag{language.French, language.English}
	matcher   = language.NewMatcher(supported)
)

// Localizer prints a catalog message for the resolved language.
type Localizer interface {
	Sprintf(key message.Reference, args ...any) string
}

// Supported returns the list of supported language tags, default first.
func Supported() []language.Tag {
	return append([]language.Tag(nil), supported...)
}

// Default returns the default language tag.
func Default() language.Tag {
	return supported[0]
}

// Printer returns a message printer for the supplied tag.
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(match(tag))
}

// ResolveTag determines the best language tag for the request, preferring the
// lang query parameter, then the preference cookie, then Accept-Language.
// The bool reports whether the query parameter should be persisted.
func ResolveTag(r *http.Request) (language.Tag, bool) {
	if r == nil {
		return Default(), false
	}
	if r.URL != nil {
		if raw := strings.TrimSpace(r.URL.Query().Get(LangParam)); raw != "" {
			if tag, ok := parseSupported(raw); ok {
				return tag, true
			}
		}
	}
	if cookie, err := r.Cookie(LangCookieName); err == nil {
		if tag, ok := parseSupported(cookie.Value); ok {
			return tag, false
		}
	}
	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil && len(tags) > 0 {
			_, idx, confidence := matcher.Match(tags...)
			if confidence != language.No {
				return supported[idx], false
			}
		}
	}
	return Default(), false
}

// ResolveLocalizer resolves the request language, persists an explicit
// choice, and returns a printer plus the BCP 47 tag for the html lang attribute.
func ResolveLocalizer(w http.ResponseWriter, r *http.Request) (Localizer, string) {
	tag, persist := ResolveTag(r)
	if persist {
		SetLanguageCookie(w, tag)
	}
	return message.NewPrinter(tag), tag.String()
}

// SetLanguageCookie persists the selected language on the response.
func SetLanguageCookie(w http.ResponseWriter, tag language.Tag) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     LangCookieName,
		Value:    match(tag).String(),
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}

func parseSupported(raw string) (language.Tag, bool) {
	tag, err := language.Parse(strings.TrimSpace(raw))
	if err != nil {
		return language.Und, false
	}
	base, _ := tag.Base()
	for _, candidate := range supported {
		if candidateBase, _ := candidate.Base(); candidateBase == base {
			return candidate, true
		}
	}
	return language.Und, false
}

func match(tag language.Tag) language.Tag {
	if resolved, ok := parseSupported(tag.String()); ok {
		return resolved
	}
	return Default()
}
