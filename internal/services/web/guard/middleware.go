package guard

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/louisbranch/portfolio-tracker/internal/services/web/handoff"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/platform/httpx"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/platform/sessioncookie"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/routepath"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/session"
)

// Guard outcomes reported to the Observer.
const (
	OutcomeHandoff       = "handoff"
	OutcomeAuthenticated = "authenticated"
	OutcomeRedirected    = "redirected"
	OutcomeGaveUp        = "gave_up"
)

// SessionResolver resolves the session for a set of browser cookies.
type SessionResolver interface {
	Resolve(ctx context.Context, cookies []*http.Cookie, handoff *session.Identity) session.Result
}

// Observer receives one guard outcome per request and one handoff lookup
// result per request that carried a handoff cookie. Nil is allowed.
type Observer interface {
	ObserveGuard(outcome string)
	ObserveHandoff(delivered bool)
}

// Config wires the HTTP guard.
type Config struct {
	Resolver     SessionResolver
	Handoffs     handoff.Store
	Policy       Policy
	SchemePolicy requestmeta.SchemePolicy
	// LoginPath is where unauthenticated visitors are sent; defaults to /login.
	LoginPath string
	Observer  Observer
}

// Middleware runs one fresh Guard per request. Authenticated requests reach
// next with the identity in their context; all others get a single redirect
// to the login page and no body.
func Middleware(cfg Config) httpx.Middleware {
	loginPath := strings.TrimSpace(cfg.LoginPath)
	if loginPath == "" {
		loginPath = routepath.Login
	}
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := httpx.RequestContext(r)
			seeded := takeHandoff(ctx, w, r, cfg)
			cookies := sessioncookie.Outbound(r)

			var resolver Resolver
			if cfg.Resolver != nil {
				resolver = ResolverFunc(func(ctx context.Context, h *session.Identity) session.Result {
					return cfg.Resolver.Resolve(ctx, cookies, h)
				})
			}
			g := New(resolver, seeded, func() {
				httpx.WriteRedirect(w, r, loginPath)
			}, cfg.Policy)
			g.Activate(ctx)

			identity, ok := g.Identity()
			if g.View() != ViewContent || !ok {
				outcome := OutcomeRedirected
				if err := g.Err(); err != nil {
					outcome = OutcomeGaveUp
					log.Printf("guard gave up path=%s request_id=%s attempts=%d err=%v",
						r.URL.Path, httpx.RequestIDFrom(r), g.Attempts(), err)
				}
				observeGuard(cfg.Observer, outcome)
				return
			}
			if seeded != nil {
				observeGuard(cfg.Observer, OutcomeHandoff)
			} else {
				observeGuard(cfg.Observer, OutcomeAuthenticated)
			}
			next.ServeHTTP(w, r.WithContext(session.WithIdentity(ctx, identity)))
		})
	}
}

// takeHandoff consumes the pending handoff, if any. The cookie is cleared
// whether or not the identity is still available.
func takeHandoff(ctx context.Context, w http.ResponseWriter, r *http.Request, cfg Config) *session.Identity {
	key, ok := handoff.ReadCookie(r)
	if !ok {
		return nil
	}
	handoff.ClearCookie(w, r, cfg.SchemePolicy)
	if cfg.Handoffs == nil {
		return nil
	}
	identity, found, err := cfg.Handoffs.Take(ctx, key)
	if err != nil {
		log.Printf("handoff take failed request_id=%s err=%v", httpx.RequestIDFrom(r), err)
	}
	delivered := err == nil && found && !identity.IsEmpty()
	if cfg.Observer != nil {
		cfg.Observer.ObserveHandoff(delivered)
	}
	if !delivered {
		return nil
	}
	return &identity
}

func observeGuard(observer Observer, outcome string) {
	if observer != nil {
		observer.ObserveGuard(outcome)
	}
}
