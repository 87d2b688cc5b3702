// Package guard decides, once per protected page load, whether the page may
// render its content or must send the visitor to the login page.
package guard

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/session"
)

// DefaultMaxAttempts bounds resolution attempts when the backend is unreachable.
const DefaultMaxAttempts = 3

var errResolutionFailed = errors.New("session resolution failed")

// State is the authentication status held by one guard.
type State int

const (
	StateUnknown State = iota
	StateAuthenticated
	StateUnauthenticated
)

func (s State) String() string {
	switch s {
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// View is what the guarded page shows for the current state.
type View int

const (
	// ViewPlaceholder is the loading indicator shown while the state is unknown.
	ViewPlaceholder View = iota
	// ViewContent is the protected content.
	ViewContent
	// ViewNone renders nothing; the visitor is being redirected.
	ViewNone
)

// Resolver answers the session question for the request the guard serves.
type Resolver interface {
	Resolve(ctx context.Context, handoff *session.Identity) session.Result
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(ctx context.Context, handoff *session.Identity) session.Result

// Resolve calls f.
func (f ResolverFunc) Resolve(ctx context.Context, handoff *session.Identity) session.Result {
	return f(ctx, handoff)
}

// Policy decides what a failed resolution means.
//
// By default a failed resolution is retried with exponential backoff up to
// MaxAttempts times and then treated as unauthenticated. FailClosed skips the
// retries.
type Policy struct {
	MaxAttempts int
	FailClosed  bool
	// NewBackOff overrides the delay schedule between attempts.
	NewBackOff func() backoff.BackOff
}

func (p Policy) attempts() uint {
	if p.FailClosed {
		return 1
	}
	if p.MaxAttempts <= 0 {
		return DefaultMaxAttempts
	}
	return uint(p.MaxAttempts)
}

func (p Policy) backOff() backoff.BackOff {
	if p.NewBackOff != nil {
		return p.NewBackOff()
	}
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 100 * time.Millisecond
	b.MaxInterval = time.Second
	return b
}

// Guard is the per-page-load authentication gate. It is created fresh for
// every protected request and never reused.
type Guard struct {
	resolver Resolver
	handoff  *session.Identity
	redirect func()
	policy   Policy

	once sync.Once

	mu       sync.Mutex
	state    State
	identity session.Identity
	attempts int
	lastErr  error
}

// New builds a guard. A non-empty handoff identity seeds the authenticated
// state so Activate never consults the resolver.
func New(resolver Resolver, handoff *session.Identity, redirect func(), policy Policy) *Guard {
	g := &Guard{
		resolver: resolver,
		redirect: redirect,
		policy:   policy,
	}
	if handoff != nil && !handoff.IsEmpty() {
		seeded := *handoff
		g.handoff = &seeded
		g.state = StateAuthenticated
		g.identity = seeded
	}
	return g
}

// Activate resolves the session at most once. Later calls return immediately
// without touching the resolver or the redirect.
func (g *Guard) Activate(ctx context.Context) {
	g.once.Do(func() {
		if g.State() == StateAuthenticated {
			return
		}
		result := g.resolve(ctx)
		if result.Status == session.StatusAuthenticated {
			g.settle(StateAuthenticated, result.Identity)
			return
		}
		g.settle(StateUnauthenticated, session.Identity{})
		if g.redirect != nil {
			g.redirect()
		}
	})
}

func (g *Guard) resolve(ctx context.Context) session.Result {
	if g.resolver == nil {
		return session.Unauthenticated()
	}
	operation := func() (session.Result, error) {
		g.mu.Lock()
		g.attempts++
		g.mu.Unlock()

		result := g.resolver.Resolve(ctx, g.handoff)
		if result.Status == session.StatusFailed {
			err := result.Err
			if err == nil {
				err = errResolutionFailed
			}
			if ctx.Err() != nil {
				return result, backoff.Permanent(err)
			}
			return result, err
		}
		return result, nil
	}
	result, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(g.policy.backOff()),
		backoff.WithMaxTries(g.policy.attempts()),
	)
	if err != nil {
		g.mu.Lock()
		g.lastErr = err
		g.mu.Unlock()
		return session.Unauthenticated()
	}
	return result
}

func (g *Guard) settle(state State, identity session.Identity) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.state = state
	g.identity = identity
}

// State returns the current authentication status.
func (g *Guard) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// View returns what the page should show for the current state.
func (g *Guard) View() View {
	switch g.State() {
	case StateAuthenticated:
		return ViewContent
	case StateUnauthenticated:
		return ViewNone
	default:
		return ViewPlaceholder
	}
}

// Identity returns the authenticated identity, if any.
func (g *Guard) Identity() (session.Identity, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state != StateAuthenticated {
		return session.Identity{}, false
	}
	return g.identity, true
}

// Attempts reports how many times the resolver was called.
func (g *Guard) Attempts() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.attempts
}

// Err returns the last resolution failure that was given up on, if any.
func (g *Guard) Err() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lastErr
}
