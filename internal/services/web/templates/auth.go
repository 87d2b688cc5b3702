package templates

import (
	"context"

	"github.com/a-h/templ"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/routepath"
)

// Login strategies.
const (
	StrategyOAuth    = "oauth"
	StrategyPassword = "password"
)

// LoginView is the login page state.
type LoginView struct {
	Strategy string
	OAuthURL string
	Email    string
	// Error is shown verbatim above the form.
	Error string
}

// SignupView is the signup page state.
type SignupView struct {
	Name  string
	Email string
	Error string
}

// LoginPage renders the login card for the configured strategy.
func LoginPage(page PageContext, view LoginView) templ.Component {
	return component(func(_ context.Context, m *markup) {
		m.open("section", "class", "auth-card")
		m.element("h1", T(page.Loc, "login.heading"))
		m.element("p", T(page.Loc, "login.subtitle"), "class", "subtitle")
		formError(m, view.Error)

		if view.Strategy == StrategyPassword {
			m.postForm(routepath.Login, "auth-form")
			m.input("email", "email", T(page.Loc, "login.email"), view.Email, true, "autocomplete", "email")
			m.input("password", "password", T(page.Loc, "login.password"), "", true, "autocomplete", "current-password")
			m.element("button", T(page.Loc, "login.submit"), "type", "submit", "class", "primary")
			m.close("form")
			m.open("p", "class", "switch")
			m.text(T(page.Loc, "login.no_account") + " ")
			m.raw("<a")
			m.href("href", routepath.Signup)
			m.raw(">")
			m.text(T(page.Loc, "login.signup_link"))
			m.close("a")
			m.close("p")
		} else {
			m.raw("<a class=\"button primary oauth\"")
			m.href("href", view.OAuthURL)
			m.raw(">")
			m.text(T(page.Loc, "login.oauth_button"))
			m.close("a")
		}
		m.element("p", T(page.Loc, "login.terms"), "class", "terms")
		m.close("section")
	})
}

// SignupPage renders the account creation form.
func SignupPage(page PageContext, view SignupView) templ.Component {
	return component(func(_ context.Context, m *markup) {
		m.open("section", "class", "auth-card")
		m.element("h1", T(page.Loc, "signup.heading"))
		m.element("p", T(page.Loc, "signup.subtitle"), "class", "subtitle")
		formError(m, view.Error)

		m.postForm(routepath.Signup, "auth-form")
		m.input("text", "name", T(page.Loc, "signup.name"), view.Name, true, "autocomplete", "name")
		m.input("email", "email", T(page.Loc, "login.email"), view.Email, true, "autocomplete", "email")
		m.input("password", "password", T(page.Loc, "login.password"), "", true, "autocomplete", "new-password", "minlength", "6")
		m.input("password", "confirm_password", T(page.Loc, "signup.confirm_password"), "", true, "autocomplete", "new-password", "minlength", "6")
		m.element("button", T(page.Loc, "signup.submit"), "type", "submit", "class", "primary")
		m.close("form")

		m.open("p", "class", "switch")
		m.text(T(page.Loc, "signup.have_account") + " ")
		m.raw("<a")
		m.href("href", routepath.Login)
		m.raw(">")
		m.text(T(page.Loc, "signup.login_link"))
		m.close("a")
		m.close("p")
		m.element("p", T(page.Loc, "signup.terms"), "class", "terms")
		m.close("section")
	})
}

// CallbackPage renders the transient authenticating placeholder. The script
// posts the URL fragment together with loadID exactly once.
func CallbackPage(page PageContext, loadID string) templ.Component {
	return component(func(_ context.Context, m *markup) {
		m.open("section", "class", "callback", "id", "auth-callback",
			"data-load-id", loadID,
			"data-endpoint", routepath.AuthCallback,
			"data-fallback", routepath.Login)
		m.raw("<div class=\"spinner\" aria-hidden=\"true\"></div>")
		m.element("p", T(page.Loc, "callback.authenticating"), "role", "status")
		m.raw("<noscript>")
		m.element("p", T(page.Loc, "callback.noscript"))
		m.close("noscript")
		m.close("section")
		m.raw("<script defer")
		m.href("src", routepath.Static("callback.js"))
		m.raw("></script>")
	})
}

func formError(m *markup, message string) {
	if message == "" {
		return
	}
	m.element("p", message, "class", "form-error", "role", "alert")
}
