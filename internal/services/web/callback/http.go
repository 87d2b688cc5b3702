package callback

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/google/uuid"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/handoff"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/platform/flash"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/platform/httpx"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/platform/pagerender"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/platform/sessioncookie"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/portfolio-tracker/internal/services/web/templates"
)

const maxExchangeBody = 8 << 10

// Config wires the callback HTTP surface.
type Config struct {
	Handler      *Handler
	Handoffs     handoff.Store
	HandoffTTL   time.Duration
	Latches      *Latches[Outcome]
	Renderer     *pagerender.Renderer
	SchemePolicy requestmeta.SchemePolicy
}

// Routes serves GET and POST on the callback path.
type Routes struct {
	cfg Config
}

// NewRoutes builds the callback routes. A nil latch registry gets the default TTL.
func NewRoutes(cfg Config) *Routes {
	if cfg.Latches == nil {
		cfg.Latches = NewLatches[Outcome](DefaultLatchTTL, DefaultLatchLimit)
	}
	if cfg.HandoffTTL <= 0 {
		cfg.HandoffTTL = handoff.DefaultTTL
	}
	return &Routes{cfg: cfg}
}

// Register mounts the callback page and exchange endpoint on mux.
func (rt *Routes) Register(mux *http.ServeMux) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.AuthCallback, rt.Page)
	mux.HandleFunc(http.MethodPost+" "+routepath.AuthCallback, rt.Complete)
}

type exchangeRequest struct {
	Fragment string `json:"fragment"`
	LoadID   string `json:"load_id"`
}

type exchangeResponse struct {
	Location string `json:"location"`
	Replace  bool   `json:"replace"`
}

// Page renders the authenticating placeholder with a fresh page-load id.
func (rt *Routes) Page(w http.ResponseWriter, r *http.Request) {
	loadID := uuid.NewString()
	rt.cfg.Latches.Issue(loadID)
	err := rt.cfg.Renderer.WritePage(w, r, pagerender.Page{
		TitleKey: "title.callback",
		Body: func(page webtemplates.PageContext) templ.Component {
			return webtemplates.CallbackPage(page, loadID)
		},
	})
	if err != nil {
		log.Printf("callback page render failed request_id=%s err=%v", httpx.RequestIDFrom(r), err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// Complete runs the exchange for the posted fragment, once per page load,
// and answers with the navigation the browser must perform.
func (rt *Routes) Complete(w http.ResponseWriter, r *http.Request) {
	if !requestmeta.HasSameOriginProof(r, rt.cfg.SchemePolicy) {
		_ = httpx.WriteJSON(w, http.StatusForbidden, exchangeResponse{Location: routepath.Login, Replace: true})
		return
	}

	var in exchangeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxExchangeBody)).Decode(&in); err != nil {
		_ = httpx.WriteJSON(w, http.StatusBadRequest, exchangeResponse{Location: routepath.Login, Replace: true})
		return
	}

	latch, ok := rt.cfg.Latches.Lookup(in.LoadID)
	if !ok {
		// Unknown or expired page load: fail without contacting the backend.
		rt.apply(w, r, failure(errUnknownLoad))
		return
	}
	ctx := httpx.RequestContext(r)
	outcome, first := latch.Do(func() Outcome {
		result := rt.cfg.Handler.Exchange(ctx, in.Fragment, sessioncookie.Outbound(r))
		result.HandoffKey = rt.handOff(r, result)
		return result
	})
	if !first {
		log.Printf("callback replay served from latch request_id=%s", httpx.RequestIDFrom(r))
	}
	rt.apply(w, r, outcome)
}

// handOff stores the identity for the next guarded page load. It runs inside
// the page load's latch, so one page load owns at most one handoff.
func (rt *Routes) handOff(r *http.Request, outcome Outcome) string {
	if outcome.Identity == nil || rt.cfg.Handoffs == nil {
		return ""
	}
	key, err := rt.cfg.Handoffs.Put(httpx.RequestContext(r), *outcome.Identity)
	if err != nil {
		log.Printf("handoff put failed request_id=%s err=%v", httpx.RequestIDFrom(r), err)
		return ""
	}
	return key
}

// apply relays the outcome's side effects onto the response and writes the
// navigation answer. Replays of a page load write the same session cookie and
// handoff key as the first answer.
func (rt *Routes) apply(w http.ResponseWriter, r *http.Request, outcome Outcome) {
	if outcome.Err != nil {
		log.Printf("callback exchange failed request_id=%s err=%v", httpx.RequestIDFrom(r), outcome.Err)
	}
	sessioncookie.Relay(w, r, outcome.Cookies, rt.cfg.SchemePolicy)
	if outcome.HandoffKey != "" {
		handoff.WriteCookie(w, r, outcome.HandoffKey, rt.cfg.HandoffTTL, rt.cfg.SchemePolicy)
	}
	flash.Write(w, r, outcome.Notice, rt.cfg.SchemePolicy)
	_ = httpx.WriteJSON(w, http.StatusOK, exchangeResponse{Location: outcome.Location, Replace: outcome.Replace})
}
