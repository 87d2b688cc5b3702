// Package publicauth serves the unauthenticated sign-in surfaces.
package publicauth

import (
	"net/http"
	"strings"
	"time"

	"github.com/louisbranch/portfolio-tracker/internal/services/web/handoff"
	module "github.com/louisbranch/portfolio-tracker/internal/services/web/module"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/portfolio-tracker/internal/services/web/templates"
)

// Config wires the public auth module.
type Config struct {
	Auth     AuthGateway
	Sessions SessionResolver
	Handoffs handoff.Store
	// HandoffTTL defaults to handoff.DefaultTTL.
	HandoffTTL time.Duration
	// Strategy is "oauth" (default) or "password". Only the chosen login
	// surface is mounted.
	Strategy      string
	OAuthURL      string
	PublicBaseURL string
}

func (c Config) strategy() string {
	if strings.EqualFold(strings.TrimSpace(c.Strategy), webtemplates.StrategyPassword) {
		return webtemplates.StrategyPassword
	}
	return webtemplates.StrategyOAuth
}

// Module provides the login, signup and logout routes.
type Module struct {
	cfg Config
}

// New returns a public auth module.
func New(cfg Config) Module {
	return Module{cfg: cfg}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "publicauth" }

// Healthy reports whether the module can reach the auth backend.
func (m Module) Healthy() bool { return m.cfg.Auth != nil }

// Mount wires public auth route handlers.
func (m Module) Mount(deps module.Dependencies) (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(m.cfg, deps))
	patterns := []string{routepath.Login, routepath.Logout}
	if m.cfg.strategy() == webtemplates.StrategyPassword {
		patterns = append(patterns, routepath.Signup)
	}
	return module.Mount{Patterns: patterns, Handler: mux}, nil
}
