// Package history serves the portfolio snapshot history.
package history

import (
	"net/http"

	module "github.com/louisbranch/portfolio-tracker/internal/services/web/module"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/routepath"
)

// Module provides the snapshot history page and the snapshot action.
type Module struct {
	gateway Gateway
}

// New returns a history module backed by gateway.
func New(gateway Gateway) Module {
	return Module{gateway: gateway}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "history" }

// Healthy reports whether the module has a backend gateway.
func (m Module) Healthy() bool { return m.gateway != nil }

// Mount wires history route handlers.
func (m Module) Mount(deps module.Dependencies) (module.Mount, error) {
	mux := http.NewServeMux()
	h := newHandlers(newService(m.gateway), deps)
	mux.HandleFunc(http.MethodGet+" "+routepath.History, h.handleList)
	mux.HandleFunc(http.MethodPost+" "+routepath.HistorySnapshot, h.handleSnapshot)
	return module.Mount{
		Patterns: []string{routepath.History, routepath.HistorySnapshot},
		Handler:  mux,
	}, nil
}
