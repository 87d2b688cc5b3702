// Package app composes module groups into the root HTTP handler.
package app

import (
	"fmt"
	"net/http"
	"strings"

	module "github.com/louisbranch/portfolio-tracker/internal/services/web/module"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/platform/httpx"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/platform/requestmeta"
)

// ComposeInput carries module groups and shared composition contracts.
type ComposeInput struct {
	Dependencies     module.Dependencies
	PublicModules    []module.Module
	ProtectedModules []module.Module
	// Guard wraps every protected module. Required when protected modules
	// are present.
	Guard httpx.Middleware
}

// Compose mounts the module groups onto a fresh mux. Every mutation must
// carry a same-origin proof.
func Compose(input ComposeInput) (*http.ServeMux, error) {
	root := http.NewServeMux()
	if len(input.ProtectedModules) > 0 && input.Guard == nil {
		return nil, fmt.Errorf("protected modules require a guard")
	}
	sameOrigin := requireSameOrigin(input.Dependencies.SchemePolicy)
	seen := make(map[string]string)

	for _, feature := range input.PublicModules {
		if feature == nil {
			return nil, fmt.Errorf("public module is nil")
		}
		if err := mountModule(root, feature, input.Dependencies, seen, sameOrigin); err != nil {
			return nil, err
		}
	}

	protect := func(next http.Handler) http.Handler {
		return input.Guard(sameOrigin(next))
	}
	for _, feature := range input.ProtectedModules {
		if feature == nil {
			return nil, fmt.Errorf("protected module is nil")
		}
		if err := mountModule(root, feature, input.Dependencies, seen, protect); err != nil {
			return nil, err
		}
	}
	return root, nil
}

func mountModule(root *http.ServeMux, feature module.Module, deps module.Dependencies, seen map[string]string, wrap httpx.Middleware) error {
	mount, err := feature.Mount(deps)
	if err != nil {
		return fmt.Errorf("mount module %q: %w", feature.ID(), err)
	}
	if mount.Handler == nil {
		return fmt.Errorf("mount module %q: handler is required", feature.ID())
	}
	if len(mount.Patterns) == 0 {
		return fmt.Errorf("mount module %q: at least one pattern is required", feature.ID())
	}
	handler := wrap(mount.Handler)
	for _, pattern := range mount.Patterns {
		if err := validatePattern(pattern); err != nil {
			return fmt.Errorf("mount module %q has invalid pattern %q: %w", feature.ID(), pattern, err)
		}
		if previous, ok := seen[pattern]; ok {
			return fmt.Errorf("module %q duplicates pattern %q owned by module %q", feature.ID(), pattern, previous)
		}
		seen[pattern] = feature.ID()
		root.Handle(pattern, handler)
	}
	return nil
}

func validatePattern(pattern string) error {
	if pattern == "" {
		return fmt.Errorf("pattern is required")
	}
	if strings.TrimSpace(pattern) != pattern {
		return fmt.Errorf("pattern must not include surrounding whitespace")
	}
	if !strings.HasPrefix(pattern, "/") {
		return fmt.Errorf("pattern must begin with /")
	}
	return nil
}

func requireSameOrigin(policy requestmeta.SchemePolicy) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !isMutationMethod(r) || requestmeta.HasSameOriginProof(r, policy) {
				next.ServeHTTP(w, r)
				return
			}
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		})
	}
}

func isMutationMethod(r *http.Request) bool {
	if r == nil {
		return false
	}
	switch r.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	default:
		return false
	}
}
