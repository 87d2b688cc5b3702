// Package modulehandler provides a composable base for protected web module handlers.
//
// Protected modules share page rendering, identity lookup, error pages and
// the flash-then-redirect pattern used after every mutation. Modules embed
// Base rather than duplicating that scaffold.
package modulehandler

import (
	"log"
	"net/http"

	"github.com/louisbranch/portfolio-tracker/internal/services/web/backend"
	module "github.com/louisbranch/portfolio-tracker/internal/services/web/module"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/platform/flash"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/platform/httpx"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/platform/pagerender"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/routepath"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/session"
)

// Base carries the shared module dependencies.
type Base struct {
	deps module.Dependencies
}

// NewBase builds a handler base from module dependencies. A missing renderer
// gets a default one so tests can pass zero dependencies.
func NewBase(deps module.Dependencies) Base {
	if deps.Renderer == nil {
		deps.Renderer = pagerender.New("", deps.SchemePolicy)
	}
	return Base{deps: deps}
}

// SchemePolicy returns the cookie scheme policy shared by all modules.
func (b Base) SchemePolicy() requestmeta.SchemePolicy {
	return b.deps.SchemePolicy
}

// Identity returns the identity the session guard attached to the request.
func (b Base) Identity(r *http.Request) session.Identity {
	if r == nil {
		return session.Identity{}
	}
	identity, _ := session.IdentityFromContext(r.Context())
	return identity
}

// WritePage renders a full module page (HTMX-aware); render failures become
// a 500 error page.
func (b Base) WritePage(w http.ResponseWriter, r *http.Request, page pagerender.Page) {
	if err := b.deps.Renderer.WritePage(w, r, page); err != nil {
		log.Printf("render %s failed request_id=%s err=%v", page.TitleKey, httpx.RequestIDFrom(r), err)
		b.deps.Renderer.WriteError(w, r, http.StatusInternalServerError)
	}
}

// WriteNotFound renders a 404 error page within the app shell.
func (b Base) WriteNotFound(w http.ResponseWriter, r *http.Request) {
	b.deps.Renderer.WriteError(w, r, http.StatusNotFound)
}

// RedirectWithNotice stores notice for the next page and redirects to location.
func (b Base) RedirectWithNotice(w http.ResponseWriter, r *http.Request, location string, notice flash.Notice) {
	flash.Write(w, r, notice, b.deps.SchemePolicy)
	httpx.WriteRedirect(w, r, location)
}

// RedirectIfExpired sends the visitor to the login page when err reports a
// session the backend no longer accepts. It reports whether it redirected.
func (b Base) RedirectIfExpired(w http.ResponseWriter, r *http.Request, err error) bool {
	if !backend.IsUnauthorized(err) {
		return false
	}
	httpx.WriteRedirect(w, r, routepath.Login)
	return true
}
