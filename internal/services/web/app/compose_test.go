package app

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	module "github.com/louisbranch/portfolio-tracker/internal/services/web/module"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/platform/httpx"
)

type stubModule struct {
	id    string
	mount module.Mount
	err   error
}

func (m stubModule) ID() string { return m.id }

func (m stubModule) Mount(module.Dependencies) (module.Mount, error) {
	return m.mount, m.err
}

func noContent() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

// denyAll stands in for the session guard: every request is redirected.
func denyAll() httpx.Middleware {
	return func(http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			httpx.WriteRedirect(w, r, "/login")
		})
	}
}

func allowAll() httpx.Middleware {
	return func(next http.Handler) http.Handler { return next }
}

func TestComposeRejectsDuplicatePattern(t *testing.T) {
	t.Parallel()

	_, err := Compose(ComposeInput{
		PublicModules: []module.Module{
			stubModule{id: "one", mount: module.Mount{Patterns: []string{"/one"}, Handler: noContent()}},
			stubModule{id: "two", mount: module.Mount{Patterns: []string{"/one"}, Handler: noContent()}},
		},
	})
	if err == nil || !strings.Contains(err.Error(), "duplicates pattern") {
		t.Fatalf("Compose() error = %v, want duplicate pattern error", err)
	}
}

func TestComposeRejectsInvalidPatterns(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		pattern string
	}{
		{name: "empty", pattern: ""},
		{name: "missing leading slash", pattern: "login"},
		{name: "surrounding whitespace", pattern: "/login "},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := Compose(ComposeInput{
				PublicModules: []module.Module{
					stubModule{id: "bad", mount: module.Mount{Patterns: []string{tc.pattern}, Handler: noContent()}},
				},
			})
			if err == nil || !strings.Contains(err.Error(), "invalid pattern") || !strings.Contains(err.Error(), "bad") {
				t.Fatalf("Compose() error = %v, want invalid pattern error", err)
			}
		})
	}
}

func TestComposeRejectsBrokenModules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input ComposeInput
	}{
		{name: "nil public module", input: ComposeInput{PublicModules: []module.Module{nil}}},
		{name: "nil protected module", input: ComposeInput{Guard: allowAll(), ProtectedModules: []module.Module{nil}}},
		{name: "mount error", input: ComposeInput{PublicModules: []module.Module{stubModule{id: "x", err: errors.New("boom")}}}},
		{name: "missing handler", input: ComposeInput{PublicModules: []module.Module{stubModule{id: "x", mount: module.Mount{Patterns: []string{"/x"}}}}}},
		{name: "missing patterns", input: ComposeInput{PublicModules: []module.Module{stubModule{id: "x", mount: module.Mount{Handler: noContent()}}}}},
		{name: "protected without guard", input: ComposeInput{ProtectedModules: []module.Module{stubModule{id: "x", mount: module.Mount{Patterns: []string{"/x"}, Handler: noContent()}}}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if _, err := Compose(tc.input); err == nil {
				t.Fatalf("expected Compose() error")
			}
		})
	}
}

func TestComposeGuardsOnlyProtectedModules(t *testing.T) {
	t.Parallel()

	root, err := Compose(ComposeInput{
		Guard:            denyAll(),
		PublicModules:    []module.Module{stubModule{id: "auth", mount: module.Mount{Patterns: []string{"/login"}, Handler: noContent()}}},
		ProtectedModules: []module.Module{stubModule{id: "dashboard", mount: module.Mount{Patterns: []string{"/dashboard"}, Handler: noContent()}}},
	})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	rr := httptest.NewRecorder()
	root.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/login", nil))
	if rr.Code != http.StatusNoContent {
		t.Fatalf("public status = %d, want %d", rr.Code, http.StatusNoContent)
	}

	rr = httptest.NewRecorder()
	root.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	if rr.Code != http.StatusFound || rr.Header().Get("Location") != "/login" {
		t.Fatalf("protected status = %d location = %q, want redirect to /login", rr.Code, rr.Header().Get("Location"))
	}
}

func TestComposeRequiresSameOriginForMutations(t *testing.T) {
	t.Parallel()

	root, err := Compose(ComposeInput{
		Guard:            allowAll(),
		PublicModules:    []module.Module{stubModule{id: "auth", mount: module.Mount{Patterns: []string{"/logout"}, Handler: noContent()}}},
		ProtectedModules: []module.Module{stubModule{id: "dashboard", mount: module.Mount{Patterns: []string{"/dashboard/holdings"}, Handler: noContent()}}},
	})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	tests := []struct {
		name       string
		path       string
		origin     string
		wantStatus int
	}{
		{name: "public without origin", path: "/logout", wantStatus: http.StatusForbidden},
		{name: "public same origin", path: "/logout", origin: "http://example.com", wantStatus: http.StatusNoContent},
		{name: "protected cross origin", path: "/dashboard/holdings", origin: "https://evil.example", wantStatus: http.StatusForbidden},
		{name: "protected same origin", path: "/dashboard/holdings", origin: "http://example.com", wantStatus: http.StatusNoContent},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodPost, tc.path, nil)
			if tc.origin != "" {
				req.Header.Set("Origin", tc.origin)
			}
			rr := httptest.NewRecorder()
			root.ServeHTTP(rr, req)
			if rr.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rr.Code, tc.wantStatus)
			}
		})
	}
}
