package dashboard

import (
	"net/http"

	module "github.com/louisbranch/portfolio-tracker/internal/services/web/module"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/routepath"
)

// Module provides the authenticated portfolio dashboard.
type Module struct {
	gateway Gateway
}

// New returns a dashboard module with no backend; every load fails as unavailable.
func New() Module {
	return Module{}
}

// NewWithGateway returns a dashboard module backed by gateway.
func NewWithGateway(gateway Gateway) Module {
	return Module{gateway: gateway}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "dashboard" }

// Healthy reports whether the module has a backend gateway.
func (m Module) Healthy() bool { return m.gateway != nil }

// Mount wires dashboard route handlers.
func (m Module) Mount(deps module.Dependencies) (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(newService(m.gateway), deps))
	return module.Mount{
		Patterns: []string{routepath.Root + "{$}", routepath.Dashboard, routepath.Dashboard + "/"},
		Handler:  mux,
	}, nil
}
