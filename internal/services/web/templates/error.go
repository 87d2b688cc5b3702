package templates

import (
	"context"
	"net/http"

	"github.com/a-h/templ"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/routepath"
)

// ErrorPage renders a not-found or unavailable message with a way back.
func ErrorPage(page PageContext, statusCode int) templ.Component {
	return component(func(_ context.Context, m *markup) {
		m.open("section", "class", "error-page")
		m.element("h1", T(page.Loc, "error.heading"))
		m.element("p", T(page.Loc, errorMessageKey(statusCode)))
		m.raw("<a class=\"button\"")
		m.href("href", routepath.Root)
		m.raw(">")
		m.text(T(page.Loc, "error.back_home"))
		m.close("a")
		m.close("section")
	})
}

func errorMessageKey(statusCode int) string {
	if statusCode == http.StatusNotFound {
		return "error.not_found"
	}
	return "error.unavailable"
}
