package publicauth

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/backend"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/handoff"
	module "github.com/louisbranch/portfolio-tracker/internal/services/web/module"
	apperrors "github.com/louisbranch/portfolio-tracker/internal/services/web/platform/errors"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/platform/flash"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/platform/httpx"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/platform/pagerender"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/platform/sessioncookie"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/platform/weberror"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/portfolio-tracker/internal/services/web/templates"
)

type handlers struct {
	modulehandler.Base
	service service
	cfg     Config
}

func newHandlers(cfg Config, deps module.Dependencies) handlers {
	return handlers{
		Base:    modulehandler.NewBase(deps),
		service: service{auth: cfg.Auth, sessions: cfg.Sessions},
		cfg:     cfg,
	}
}

// oauthStart sends the provider back to the configured public origin, or to
// the origin this request arrived on when none is configured.
func (h handlers) oauthStart(r *http.Request) string {
	base := strings.TrimSpace(h.cfg.PublicBaseURL)
	if base == "" {
		base = requestmeta.Origin(r, h.SchemePolicy())
	}
	return routepath.OAuthStart(h.cfg.OAuthURL, base)
}

func (h handlers) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.service.signedIn(r.Context(), sessioncookie.Outbound(r)); ok {
		httpx.WriteRedirect(w, r, routepath.Dashboard)
		return
	}
	h.renderLogin(w, r, http.StatusOK, webtemplates.LoginView{}, nil)
}

func (h handlers) handleLoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderLogin(w, r, http.StatusBadRequest, webtemplates.LoginView{}, nil)
		return
	}
	email := r.PostForm.Get("email")
	result, err := h.service.login(r.Context(), email, r.PostForm.Get("password"))
	if err != nil {
		log.Printf("password login failed request_id=%s err=%v", httpx.RequestIDFrom(r), err)
		h.renderLogin(w, r, formStatus(err), webtemplates.LoginView{Email: email}, withFormError(err, "login.error.credentials"))
		return
	}
	h.completeSignIn(w, r, result)
}

func (h handlers) handleSignupPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.service.signedIn(r.Context(), sessioncookie.Outbound(r)); ok {
		httpx.WriteRedirect(w, r, routepath.Dashboard)
		return
	}
	h.renderSignup(w, r, http.StatusOK, webtemplates.SignupView{}, nil)
}

func (h handlers) handleSignupSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderSignup(w, r, http.StatusBadRequest, webtemplates.SignupView{}, nil)
		return
	}
	form := signupForm{
		Name:            r.PostForm.Get("name"),
		Email:           r.PostForm.Get("email"),
		Password:        r.PostForm.Get("password"),
		ConfirmPassword: r.PostForm.Get("confirm_password"),
	}
	result, err := h.service.signup(r.Context(), form)
	if err != nil {
		log.Printf("signup failed request_id=%s err=%v", httpx.RequestIDFrom(r), err)
		view := webtemplates.SignupView{Name: form.Name, Email: form.Email}
		h.renderSignup(w, r, formStatus(err), view, withFormError(err, "signup.error.generic"))
		return
	}
	h.completeSignIn(w, r, result)
}

func (h handlers) handleLogout(w http.ResponseWriter, r *http.Request) {
	notice := flash.NoticeSuccess("toast.logout_success")
	if err := h.service.logout(r.Context(), sessioncookie.Outbound(r)); err != nil {
		log.Printf("logout failed request_id=%s err=%v", httpx.RequestIDFrom(r), err)
		notice = flash.NoticeError("toast.logout_failed")
	}
	// The browser cookie is dropped even when the backend call failed.
	sessioncookie.Clear(w, r, h.SchemePolicy())
	h.RedirectWithNotice(w, r, routepath.Login, notice)
}

// completeSignIn relays the backend session and hands the identity to the
// next guarded page load so it renders without another /auth/me call.
func (h handlers) completeSignIn(w http.ResponseWriter, r *http.Request, result backend.AuthResult) {
	sessioncookie.Relay(w, r, result.Cookies, h.SchemePolicy())
	if h.cfg.Handoffs != nil {
		key, err := h.cfg.Handoffs.Put(r.Context(), result.Identity)
		if err != nil {
			log.Printf("handoff put failed request_id=%s err=%v", httpx.RequestIDFrom(r), err)
		} else {
			handoff.WriteCookie(w, r, key, h.handoffTTL(), h.SchemePolicy())
		}
	}
	h.RedirectWithNotice(w, r, routepath.Dashboard, flash.NoticeSuccess("toast.login_success"))
}

func (h handlers) handoffTTL() time.Duration {
	if h.cfg.HandoffTTL > 0 {
		return h.cfg.HandoffTTL
	}
	return handoff.DefaultTTL
}

// formErrorFunc resolves the inline error once the page localizer is known.
type formErrorFunc func(loc webtemplates.Localizer) string

func withFormError(err error, fallbackKey string) formErrorFunc {
	if apperrors.HTTPStatus(err) >= http.StatusInternalServerError && apperrors.LocalizationKey(err) == "" && backend.DetailOf(err) == "" {
		fallbackKey = "error.unavailable"
	}
	return func(loc webtemplates.Localizer) string {
		return weberror.PublicMessage(loc, err, fallbackKey)
	}
}

// formStatus keeps rejected credentials and validation errors in the 4xx range.
func formStatus(err error) int {
	status := apperrors.HTTPStatus(err)
	if status < http.StatusBadRequest {
		return http.StatusBadRequest
	}
	return status
}

func (h handlers) renderLogin(w http.ResponseWriter, r *http.Request, status int, view webtemplates.LoginView, formErr formErrorFunc) {
	view.Strategy = h.cfg.strategy()
	view.OAuthURL = h.oauthStart(r)
	h.WritePage(w, r, pagerender.Page{
		TitleKey:   "title.login",
		StatusCode: status,
		Body: func(page webtemplates.PageContext) templ.Component {
			if formErr != nil {
				view.Error = formErr(page.Loc)
			}
			return webtemplates.LoginPage(page, view)
		},
	})
}

func (h handlers) renderSignup(w http.ResponseWriter, r *http.Request, status int, view webtemplates.SignupView, formErr formErrorFunc) {
	h.WritePage(w, r, pagerender.Page{
		TitleKey:   "title.signup",
		StatusCode: status,
		Body: func(page webtemplates.PageContext) templ.Component {
			if formErr != nil {
				view.Error = formErr(page.Loc)
			}
			return webtemplates.SignupPage(page, view)
		},
	})
}
