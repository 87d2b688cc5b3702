// Package web parses web command flags and starts the browser-facing server.
package web

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	entrypoint "github.com/louisbranch/portfolio-tracker/internal/platform/cmd"
	"github.com/louisbranch/portfolio-tracker/internal/services/web"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/handoff"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/metrics"
	"github.com/redis/go-redis/v9"
)

// Config holds web command configuration.
type Config struct {
	HTTPAddr            string        `env:"PORTFOLIO_WEB_HTTP_ADDR" envDefault:"localhost:8080"`
	AppName             string        `env:"PORTFOLIO_WEB_APP_NAME" envDefault:"Portfolio Tracker"`
	BackendURL          string        `env:"PORTFOLIO_WEB_BACKEND_URL" envDefault:"http://localhost:8001"`
	PublicBaseURL       string        `env:"PORTFOLIO_WEB_PUBLIC_BASE_URL"`
	OAuthURL            string        `env:"PORTFOLIO_WEB_OAUTH_URL" envDefault:"https://auth.emergentagent.com/"`
	AuthStrategy        string        `env:"PORTFOLIO_WEB_AUTH_STRATEGY" envDefault:"oauth"`
	RedisAddr           string        `env:"PORTFOLIO_WEB_REDIS_ADDR"`
	HandoffTTL          time.Duration `env:"PORTFOLIO_WEB_HANDOFF_TTL" envDefault:"30s"`
	TrustForwardedProto bool          `env:"PORTFOLIO_WEB_TRUST_FORWARDED_PROTO"`
	GuardMaxAttempts    int           `env:"PORTFOLIO_WEB_GUARD_MAX_ATTEMPTS" envDefault:"3"`
	GuardFailClosed     bool          `env:"PORTFOLIO_WEB_GUARD_FAIL_CLOSED"`
	EnableMetrics       bool          `env:"PORTFOLIO_WEB_METRICS" envDefault:"true"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.AppName, "app-name", cfg.AppName, "Name shown in page titles")
	fs.StringVar(&cfg.BackendURL, "backend-url", cfg.BackendURL, "Portfolio backend base URL")
	fs.StringVar(&cfg.PublicBaseURL, "public-base-url", cfg.PublicBaseURL, "Browser-facing origin used for the OAuth return address")
	fs.StringVar(&cfg.OAuthURL, "oauth-url", cfg.OAuthURL, "OAuth provider entry point")
	fs.StringVar(&cfg.AuthStrategy, "auth-strategy", cfg.AuthStrategy, "Login strategy: oauth or password")
	fs.StringVar(&cfg.RedisAddr, "redis-addr", cfg.RedisAddr, "Redis address for the handoff store (empty keeps it in memory)")
	fs.DurationVar(&cfg.HandoffTTL, "handoff-ttl", cfg.HandoffTTL, "Lifetime of a post-login identity handoff")
	fs.BoolVar(&cfg.TrustForwardedProto, "trust-forwarded-proto", cfg.TrustForwardedProto, "Trust X-Forwarded-Proto when marking cookies secure")
	fs.IntVar(&cfg.GuardMaxAttempts, "guard-max-attempts", cfg.GuardMaxAttempts, "Session resolution attempts before redirecting to login")
	fs.BoolVar(&cfg.GuardFailClosed, "guard-fail-closed", cfg.GuardFailClosed, "Redirect to login on the first failed session resolution")
	fs.BoolVar(&cfg.EnableMetrics, "metrics", cfg.EnableMetrics, "Expose Prometheus metrics at /metrics")

	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the web server and blocks until ctx is done.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceWeb, func(ctx context.Context) error {
		handoffs, closeStore := openHandoffStore(cfg)
		defer closeStore()

		var collectors *metrics.Metrics
		if cfg.EnableMetrics {
			collectors = metrics.New()
		}

		server, err := web.NewServer(web.Config{
			HTTPAddr:            cfg.HTTPAddr,
			AppName:             cfg.AppName,
			BackendURL:          cfg.BackendURL,
			PublicBaseURL:       cfg.PublicBaseURL,
			OAuthURL:            cfg.OAuthURL,
			AuthStrategy:        cfg.AuthStrategy,
			HandoffTTL:          cfg.HandoffTTL,
			TrustForwardedProto: cfg.TrustForwardedProto,
			GuardMaxAttempts:    cfg.GuardMaxAttempts,
			GuardFailClosed:     cfg.GuardFailClosed,
			Handoffs:            handoffs,
			Metrics:             collectors,
		})
		if err != nil {
			return fmt.Errorf("init web server: %w", err)
		}
		defer server.Close()

		return server.ListenAndServe(ctx)
	})
}

// openHandoffStore returns the Redis store when an address is configured and
// the in-memory store otherwise.
func openHandoffStore(cfg Config) (handoff.Store, func()) {
	addr := strings.TrimSpace(cfg.RedisAddr)
	if addr == "" {
		return handoff.NewMemoryStore(cfg.HandoffTTL), func() {}
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	closeClient := func() {
		if err := client.Close(); err != nil {
			log.Printf("close redis client: %v", err)
		}
	}
	return handoff.NewRedisStore(client, cfg.HandoffTTL), closeClient
}
