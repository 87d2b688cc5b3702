package templates

import (
	"context"

	"github.com/a-h/templ"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/routepath"
)

// Layout wraps the children in the document shell. The bootstrap script is
// loaded synchronously in the head so it runs before any body content.
func Layout(page PageContext, titleKey string) templ.Component {
	return component(func(ctx context.Context, m *markup) {
		lang := page.Lang
		if lang == "" {
			lang = "fr"
		}
		m.raw("<!DOCTYPE html>")
		m.open("html", "lang", lang)
		m.raw("<head><meta charset=\"utf-8\"><meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">")
		m.element("title", page.title(titleKey))
		m.raw("<script")
		m.href("src", routepath.Static("bootstrap.js"))
		m.raw("></script>")
		m.raw("<link rel=\"stylesheet\"")
		m.href("href", routepath.Static("app.css"))
		m.raw("></head><body>")

		header(m, page)
		if page.Toast != nil && page.Toast.Message != "" {
			m.open("div", "class", "toast toast-"+page.Toast.Kind, "role", "status")
			m.text(page.Toast.Message)
			m.close("div")
		}
		m.open("main", "class", "container")
		m.render(ctx, templ.GetChildren(ctx))
		m.close("main")
		m.raw("</body></html>")
	})
}

func header(m *markup, page PageContext) {
	m.open("header", "class", "topbar")
	home := routepath.Login
	if page.Authenticated() {
		home = routepath.Dashboard
	}
	m.raw("<a class=\"brand\"")
	m.href("href", home)
	m.raw(">")
	m.text(T(page.Loc, "app.name"))
	m.close("a")

	if page.Authenticated() {
		m.open("nav", "class", "app-nav")
		navLink(m, page, routepath.Dashboard, "nav.dashboard")
		navLink(m, page, routepath.History, "nav.history")
		m.close("nav")
		m.open("span", "class", "user")
		if page.UserPicture != "" {
			m.raw("<img class=\"avatar\" alt=\"\"")
			m.href("src", page.UserPicture)
			m.raw(">")
		}
		m.text(page.UserName)
		m.close("span")
		m.postForm(routepath.Logout, "logout")
		m.element("button", T(page.Loc, "nav.logout"), "type", "submit")
		m.close("form")
	}

	m.open("nav", "class", "lang-switch")
	for _, option := range LanguageOptions(page) {
		class := "lang"
		if option.Active {
			class = "lang active"
		}
		m.raw("<a")
		m.attr("class", class)
		m.href("href", option.URL)
		m.raw(">")
		m.text(option.Label)
		m.close("a")
	}
	m.close("nav")
	m.close("header")
}

func navLink(m *markup, page PageContext, path, key string) {
	class := "nav-link"
	if page.CurrentPath == path {
		class = "nav-link active"
	}
	m.raw("<a")
	m.attr("class", class)
	m.href("href", path)
	m.raw(">")
	m.text(T(page.Loc, key))
	m.close("a")
}
