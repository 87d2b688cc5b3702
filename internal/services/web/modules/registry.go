// Package modules assembles the web feature modules.
package modules

import (
	"time"

	"github.com/louisbranch/portfolio-tracker/internal/services/web/handoff"
	module "github.com/louisbranch/portfolio-tracker/internal/services/web/module"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/modules/dashboard"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/modules/history"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/modules/publicauth"
)

// Module aliases the module interface contract.
type Module = module.Module

// Dependencies carries the backend surfaces and shared config required to
// compose the web module registry. Each gateway field is typed as the narrow
// interface defined by the consuming module, so modules cannot reach calls
// they were not given.
type Dependencies struct {
	DashboardGateway dashboard.Gateway
	HistoryGateway   history.Gateway
	AuthGateway      publicauth.AuthGateway
	Sessions         publicauth.SessionResolver

	Handoffs   handoff.Store
	HandoffTTL time.Duration

	AuthStrategy  string
	OAuthURL      string
	PublicBaseURL string
}

// DefaultPublicModules returns modules served without a session.
func DefaultPublicModules(deps Dependencies) []Module {
	return []Module{
		publicauth.New(publicauth.Config{
			Auth:          deps.AuthGateway,
			Sessions:      deps.Sessions,
			Handoffs:      deps.Handoffs,
			HandoffTTL:    deps.HandoffTTL,
			Strategy:      deps.AuthStrategy,
			OAuthURL:      deps.OAuthURL,
			PublicBaseURL: deps.PublicBaseURL,
		}),
	}
}

// DefaultProtectedModules returns modules that require an authenticated session.
func DefaultProtectedModules(deps Dependencies) []Module {
	dash := dashboard.New()
	if deps.DashboardGateway != nil {
		dash = dashboard.NewWithGateway(deps.DashboardGateway)
	}
	return []Module{
		dash,
		history.New(deps.HistoryGateway),
	}
}
