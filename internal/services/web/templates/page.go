package templates

import (
	"net/url"
	"strings"

	webi18n "github.com/louisbranch/portfolio-tracker/internal/services/web/i18n"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/routepath"
)

// PageContext provides shared layout context for pages.
type PageContext struct {
	Lang         string
	Loc          Localizer
	CurrentPath  string
	CurrentQuery string
	AppName      string
	// UserName is set on authenticated pages and enables the app navigation.
	UserName    string
	UserPicture string
	Toast       *Toast
}

// Toast is a one-time notice rendered at the top of the page.
type Toast struct {
	Kind    string
	Message string
}

// Authenticated reports whether the page is rendered for a signed-in user.
func (p PageContext) Authenticated() bool {
	return strings.TrimSpace(p.UserName) != ""
}

// LanguageOption represents a supported language option in the UI.
type LanguageOption struct {
	Tag    string
	Label  string
	URL    string
	Active bool
}

// LanguageOptions returns supported language options with active selection.
func LanguageOptions(page PageContext) []LanguageOption {
	options := make([]LanguageOption, 0, len(webi18n.Supported()))
	for _, tag := range webi18n.Supported() {
		base, _ := tag.Base()
		code := base.String()
		options = append(options, LanguageOption{
			Tag:    code,
			Label:  T(page.Loc, "nav.lang_"+code),
			URL:    LanguageURL(page, code),
			Active: strings.EqualFold(page.Lang, code) || strings.HasPrefix(strings.ToLower(page.Lang), code+"-"),
		})
	}
	return options
}

// LanguageURL returns the current URL with the language param updated.
func LanguageURL(page PageContext, tag string) string {
	path := strings.TrimSpace(page.CurrentPath)
	if path == "" {
		path = routepath.Root
	}
	values, err := url.ParseQuery(page.CurrentQuery)
	if err != nil {
		values = url.Values{}
	}
	values.Set(webi18n.LangParam, tag)
	return path + "?" + values.Encode()
}

func (p PageContext) title(key string) string {
	appName := strings.TrimSpace(p.AppName)
	if appName == "" {
		appName = T(p.Loc, "app.name")
	}
	return T(p.Loc, key, appName)
}
