package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrNoIdentity reports a successful backend answer that carried no user.
var ErrNoIdentity = errors.New("session: backend returned no identity")

// Status tags a resolution result.
type Status int

const (
	// StatusUnauthenticated means the backend answered and no user is signed in.
	StatusUnauthenticated Status = iota
	// StatusAuthenticated means Result.Identity is the signed-in user.
	StatusAuthenticated
	// StatusFailed means the backend could not be asked; the answer is unknown.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusAuthenticated:
		return "authenticated"
	case StatusFailed:
		return "failed"
	default:
		return "unauthenticated"
	}
}

// Result is the outcome of one resolution. Err is set only for StatusFailed.
type Result struct {
	Status   Status
	Identity Identity
	Err      error
}

// Authenticated builds an authenticated result.
func Authenticated(identity Identity) Result {
	return Result{Status: StatusAuthenticated, Identity: identity}
}

// Unauthenticated builds an unauthenticated result.
func Unauthenticated() Result {
	return Result{Status: StatusUnauthenticated}
}

// Failed builds a failed result carrying the cause.
func Failed(err error) Result {
	return Result{Status: StatusFailed, Err: err}
}

// IdentityFetcher performs the backend "who am I" call with the browser's
// credentials.
type IdentityFetcher interface {
	FetchIdentity(ctx context.Context, cookies []*http.Cookie) (Identity, error)
}

// Observer is notified once per resolution. A nil observer is allowed.
type Observer interface {
	ObserveResolution(status Status, elapsed time.Duration)
}

// statusCoder is implemented by backend errors that carry an HTTP status.
type statusCoder interface {
	StatusCode() int
}

// Resolver classifies the backend's answer about the current session.
//
// Every call to Resolve without a handoff issues exactly one backend call;
// results are neither cached nor shared between concurrent callers.
type Resolver struct {
	fetcher  IdentityFetcher
	observer Observer
}

// NewResolver builds a resolver backed by fetcher.
func NewResolver(fetcher IdentityFetcher, observer Observer) *Resolver {
	return &Resolver{fetcher: fetcher, observer: observer}
}

// Resolve reports the authentication status for the given browser cookies. A
// non-empty handoff identity is trusted as-is without contacting the backend.
func (r *Resolver) Resolve(ctx context.Context, cookies []*http.Cookie, handoff *Identity) Result {
	if handoff != nil && !handoff.IsEmpty() {
		return Authenticated(*handoff)
	}
	if r == nil || r.fetcher == nil {
		return Failed(errors.New("session: resolver is not configured"))
	}

	start := time.Now()
	result := classify(r.fetcher.FetchIdentity(ctx, cookies))
	if r.observer != nil {
		r.observer.ObserveResolution(result.Status, time.Since(start))
	}
	return result
}

func classify(identity Identity, err error) Result {
	if err == nil {
		if identity.IsEmpty() {
			return Unauthenticated()
		}
		return Authenticated(identity)
	}
	if errors.Is(err, ErrNoIdentity) {
		return Unauthenticated()
	}
	var coded statusCoder
	if errors.As(err, &coded) {
		status := coded.StatusCode()
		if status >= 400 && status < 500 {
			return Unauthenticated()
		}
	}
	return Failed(fmt.Errorf("resolve session: %w", err))
}
