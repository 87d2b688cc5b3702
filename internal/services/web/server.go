package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/louisbranch/portfolio-tracker/internal/platform/timeouts"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/app"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/backend"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/callback"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/guard"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/handoff"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/metrics"
	module "github.com/louisbranch/portfolio-tracker/internal/services/web/module"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/modules"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/platform/httpx"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/platform/observability"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/platform/pagerender"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/routepath"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/session"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/static"
)

// DefaultAppName is shown in page titles and the header.
const DefaultAppName = "Portfolio Tracker"

// Config defines the inputs for the web server.
type Config struct {
	HTTPAddr   string
	AppName    string
	BackendURL string
	// PublicBaseURL is the browser-facing origin the OAuth provider returns to.
	PublicBaseURL string
	OAuthURL      string
	// AuthStrategy is "oauth" or "password".
	AuthStrategy        string
	HandoffTTL          time.Duration
	TrustForwardedProto bool
	GuardMaxAttempts    int
	GuardFailClosed     bool

	// Handoffs defaults to an in-memory store.
	Handoffs handoff.Store
	// Metrics is optional; nil disables collection and /metrics.
	Metrics *metrics.Metrics
	// HTTPClient overrides the backend transport.
	HTTPClient backend.HTTPDoer
	// Logger receives request log lines; defaults to the standard logger.
	Logger *log.Logger
}

// Server hosts the web HTTP server.
type Server struct {
	httpAddr   string
	httpServer *http.Server
}

// pinger is implemented by handoff stores backed by a remote service.
type pinger interface {
	Ping(ctx context.Context) error
}

// NewHandler assembles the root handler: static assets, health, metrics,
// the OAuth callback and every feature module.
func NewHandler(cfg Config) (http.Handler, error) {
	appName := strings.TrimSpace(cfg.AppName)
	if appName == "" {
		appName = DefaultAppName
	}
	publicBaseURL, err := routepath.ParsePublicBaseURL(cfg.PublicBaseURL)
	if err != nil {
		return nil, err
	}
	policy := requestmeta.SchemePolicy{TrustForwardedProto: cfg.TrustForwardedProto}
	handoffs := cfg.Handoffs
	if handoffs == nil {
		handoffs = handoff.NewMemoryStore(cfg.HandoffTTL)
	}

	client, err := backend.NewClient(backend.Config{
		BaseURL:    cfg.BackendURL,
		HTTPClient: cfg.HTTPClient,
		Observer:   cfg.Metrics,
	})
	if err != nil {
		return nil, fmt.Errorf("backend client: %w", err)
	}
	resolver := session.NewResolver(client, cfg.Metrics)
	renderer := pagerender.New(appName, policy)
	deps := module.Dependencies{Renderer: renderer, SchemePolicy: policy}

	registryDeps := modules.Dependencies{
		DashboardGateway: client,
		HistoryGateway:   client,
		AuthGateway:      client,
		Sessions:         resolver,
		Handoffs:         handoffs,
		HandoffTTL:       cfg.HandoffTTL,
		AuthStrategy:     cfg.AuthStrategy,
		OAuthURL:         cfg.OAuthURL,
		PublicBaseURL:    publicBaseURL,
	}
	public := modules.DefaultPublicModules(registryDeps)
	protected := modules.DefaultProtectedModules(registryDeps)

	root, err := app.Compose(app.ComposeInput{
		Dependencies:     deps,
		PublicModules:    public,
		ProtectedModules: protected,
		Guard: guard.Middleware(guard.Config{
			Resolver: resolver,
			Handoffs: handoffs,
			Policy: guard.Policy{
				MaxAttempts: cfg.GuardMaxAttempts,
				FailClosed:  cfg.GuardFailClosed,
			},
			SchemePolicy: policy,
			Observer:     cfg.Metrics,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("compose modules: %w", err)
	}

	callback.NewRoutes(callback.Config{
		Handler:      callback.NewHandler(client, cfg.Metrics),
		Handoffs:     handoffs,
		HandoffTTL:   cfg.HandoffTTL,
		Renderer:     renderer,
		SchemePolicy: policy,
	}).Register(root)

	root.Handle(routepath.StaticPrefix, http.StripPrefix(routepath.StaticPrefix, http.FileServerFS(static.FS)))
	root.Handle(http.MethodGet+" "+routepath.Health, healthHandler(append(public, protected...), handoffs))
	if cfg.Metrics != nil {
		root.Handle(http.MethodGet+" "+routepath.Metrics, cfg.Metrics.Handler())
	}
	root.HandleFunc(routepath.Root, func(w http.ResponseWriter, r *http.Request) {
		renderer.WriteError(w, r, http.StatusNotFound)
	})

	return httpx.Chain(root,
		httpx.RecoverPanic(),
		httpx.RequestID(),
		observability.RequestLogger(cfg.Logger),
	), nil
}

type healthReport struct {
	Status  string          `json:"status"`
	Modules map[string]bool `json:"modules"`
	Handoff string          `json:"handoff"`
}

// healthHandler reports liveness plus module wiring. A handoff store that
// cannot be reached answers 503.
func healthHandler(mods []module.Module, handoffs handoff.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		report := healthReport{Status: "ok", Modules: make(map[string]bool, len(mods)), Handoff: "ok"}
		for _, m := range mods {
			healthy := true
			if reporter, ok := m.(module.HealthReporter); ok {
				healthy = reporter.Healthy()
			}
			report.Modules[m.ID()] = healthy
		}
		status := http.StatusOK
		if p, ok := handoffs.(pinger); ok {
			ctx, cancel := context.WithTimeout(r.Context(), time.Second)
			err := p.Ping(ctx)
			cancel()
			if err != nil {
				log.Printf("health: handoff store unreachable: %v", err)
				report.Status = "degraded"
				report.Handoff = "unreachable"
				status = http.StatusServiceUnavailable
			}
		}
		if err := httpx.WriteJSON(w, status, report); err != nil {
			log.Printf("health: write response: %v", err)
		}
	})
}

// NewServer builds a configured web server.
func NewServer(cfg Config) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	handler, err := NewHandler(cfg)
	if err != nil {
		return nil, err
	}
	return &Server{
		httpAddr: httpAddr,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
	}, nil
}

// ListenAndServe runs the HTTP server until the context ends.
//
// On cancellation, it performs a bounded shutdown so in-flight requests
// are drained before hard close.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	log.Printf("web listening at %s", s.httpAddr)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

// Close stops the server immediately.
func (s *Server) Close() {
	if s == nil || s.httpServer == nil {
		return
	}
	if err := s.httpServer.Close(); err != nil {
		log.Printf("close http server: %v", err)
	}
}
