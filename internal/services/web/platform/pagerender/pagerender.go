// Package pagerender centralizes full-page rendering for web modules.
package pagerender

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	webi18n "github.com/louisbranch/portfolio-tracker/internal/services/web/i18n"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/platform/flash"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/platform/httpx"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/session"
	webtemplates "github.com/louisbranch/portfolio-tracker/internal/services/web/templates"
)

// Page describes one page response.
type Page struct {
	TitleKey   string
	StatusCode int
	// Notice is shown when no flash notice is pending, for failures detected
	// while rendering this very page.
	Notice *flash.Notice
	// Body builds the page content once the request's page context is known.
	Body func(page webtemplates.PageContext) templ.Component
}

// Renderer writes pages inside the shared layout.
type Renderer struct {
	appName string
	policy  requestmeta.SchemePolicy
}

// New builds a renderer. policy decides the Secure flag of cookies the
// renderer clears or sets (flash and language preference).
func New(appName string, policy requestmeta.SchemePolicy) *Renderer {
	return &Renderer{appName: strings.TrimSpace(appName), policy: policy}
}

// PageContext resolves language, identity and the pending flash notice for r.
// Reading the notice consumes it.
func (rd *Renderer) PageContext(w http.ResponseWriter, r *http.Request) webtemplates.PageContext {
	loc, lang := webi18n.ResolveLocalizer(w, r)
	page := webtemplates.PageContext{
		Lang: lang,
		Loc:  loc,
	}
	if rd != nil {
		page.AppName = rd.appName
	}
	if r != nil && r.URL != nil {
		page.CurrentPath = r.URL.Path
		page.CurrentQuery = r.URL.RawQuery
	}
	if identity, ok := session.IdentityFromContext(httpx.RequestContext(r)); ok {
		page.UserName = identity.DisplayName()
		page.UserPicture = identity.Picture
	}
	page.Toast = rd.resolveToast(w, r, loc)
	return page
}

// WritePage renders page in the layout, or the bare body for HTMX requests.
func (rd *Renderer) WritePage(w http.ResponseWriter, r *http.Request, page Page) error {
	if w == nil {
		return nil
	}
	statusCode := page.StatusCode
	if statusCode <= 0 {
		statusCode = http.StatusOK
	}
	pageCtx := rd.PageContext(w, r)
	if pageCtx.Toast == nil && page.Notice != nil {
		pageCtx.Toast = toastFor(pageCtx.Loc, *page.Notice)
	}
	var body templ.Component = templ.NopComponent
	if page.Body != nil {
		if c := page.Body(pageCtx); c != nil {
			body = c
		}
	}

	ctx := httpx.RequestContext(r)
	var buf bytes.Buffer
	if httpx.IsHTMXRequest(r) {
		if err := body.Render(ctx, &buf); err != nil {
			return err
		}
	} else {
		layout := webtemplates.Layout(pageCtx, page.TitleKey)
		if err := layout.Render(templ.WithChildren(ctx, body), &buf); err != nil {
			return err
		}
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(statusCode)
	_, _ = w.Write(buf.Bytes())
	return nil
}

// WriteError renders the shared error page for statusCode.
func (rd *Renderer) WriteError(w http.ResponseWriter, r *http.Request, statusCode int) {
	if statusCode != http.StatusNotFound {
		statusCode = http.StatusInternalServerError
	}
	err := rd.WritePage(w, r, Page{
		TitleKey:   "title.error",
		StatusCode: statusCode,
		Body: func(page webtemplates.PageContext) templ.Component {
			return webtemplates.ErrorPage(page, statusCode)
		},
	})
	if err != nil {
		http.Error(w, http.StatusText(statusCode), statusCode)
	}
}

func (rd *Renderer) resolveToast(w http.ResponseWriter, r *http.Request, loc webi18n.Localizer) *webtemplates.Toast {
	var policy requestmeta.SchemePolicy
	if rd != nil {
		policy = rd.policy
	}
	notice, ok := flash.ReadAndClear(w, r, policy)
	if !ok {
		return nil
	}
	return toastFor(loc, notice)
}

func toastFor(loc webtemplates.Localizer, notice flash.Notice) *webtemplates.Toast {
	message := ""
	if key := strings.TrimSpace(notice.Key); key != "" {
		message = strings.TrimSpace(webtemplates.T(loc, key))
	}
	if detail := strings.TrimSpace(notice.Detail); detail != "" {
		if message == "" {
			message = detail
		} else {
			message += " " + detail
		}
	}
	if message == "" {
		return nil
	}
	return &webtemplates.Toast{Kind: string(notice.Kind), Message: message}
}
