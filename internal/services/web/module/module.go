// Package module defines the feature contract used by web composition.
package module

import (
	"net/http"

	"github.com/louisbranch/portfolio-tracker/internal/services/web/platform/pagerender"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/platform/requestmeta"
)

// Dependencies carries the shared runtime every module renders and sets
// cookies with.
type Dependencies struct {
	Renderer     *pagerender.Renderer
	SchemePolicy requestmeta.SchemePolicy
}

// Mount describes the route patterns a module owns and the handler serving them.
type Mount struct {
	Patterns []string
	Handler  http.Handler
}

// Module declares the minimum contract required by web composition.
type Module interface {
	ID() string
	Mount(deps Dependencies) (Mount, error)
}

// HealthReporter is an optional interface for modules backed by a gateway
// that may be unconfigured.
type HealthReporter interface {
	Healthy() bool
}
