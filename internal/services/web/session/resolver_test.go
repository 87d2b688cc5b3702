package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type fakeFetcher struct {
	calls    atomic.Int32
	identity Identity
	err      error
	gotMu    sync.Mutex
	got      []*http.Cookie
	block    chan struct{}
}

func (f *fakeFetcher) FetchIdentity(_ context.Context, cookies []*http.Cookie) (Identity, error) {
	f.calls.Add(1)
	f.gotMu.Lock()
	f.got = cookies
	f.gotMu.Unlock()
	if f.block != nil {
		<-f.block
	}
	return f.identity, f.err
}

type httpStatusError int

func (e httpStatusError) Error() string   { return fmt.Sprintf("backend status %d", int(e)) }
func (e httpStatusError) StatusCode() int { return int(e) }

type recordingObserver struct {
	mu       sync.Mutex
	statuses []Status
}

func (o *recordingObserver) ObserveResolution(status Status, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.statuses = append(o.statuses, status)
}

func TestResolveHandoffSkipsBackend(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{err: errors.New("must not be called")}
	handoff := &Identity{ID: "u1", Name: "Alice"}

	result := NewResolver(fetcher, nil).Resolve(context.Background(), nil, handoff)
	if result.Status != StatusAuthenticated {
		t.Fatalf("status = %v, want authenticated", result.Status)
	}
	if result.Identity.Subject() != "u1" || result.Identity.Name != "Alice" {
		t.Fatalf("identity = %+v", result.Identity)
	}
	if got := fetcher.calls.Load(); got != 0 {
		t.Fatalf("backend calls = %d, want 0", got)
	}
}

func TestResolveEmptyHandoffFallsBackToBackend(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{identity: Identity{UserID: "u2", Email: "bob@example.com"}}
	result := NewResolver(fetcher, nil).Resolve(context.Background(), nil, &Identity{})
	if result.Status != StatusAuthenticated || result.Identity.Subject() != "u2" {
		t.Fatalf("result = %+v", result)
	}
	if got := fetcher.calls.Load(); got != 1 {
		t.Fatalf("backend calls = %d, want 1", got)
	}
}

func TestResolveClassifiesBackendAnswers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		identity Identity
		err      error
		want     Status
	}{
		{name: "user", identity: Identity{UserID: "u1", Email: "a@example.com"}, want: StatusAuthenticated},
		{name: "empty body", want: StatusUnauthenticated},
		{name: "no identity", err: ErrNoIdentity, want: StatusUnauthenticated},
		{name: "401", err: httpStatusError(http.StatusUnauthorized), want: StatusUnauthenticated},
		{name: "403", err: httpStatusError(http.StatusForbidden), want: StatusUnauthenticated},
		{name: "other 4xx", err: fmt.Errorf("wrapped: %w", httpStatusError(http.StatusNotFound)), want: StatusUnauthenticated},
		{name: "5xx", err: httpStatusError(http.StatusBadGateway), want: StatusFailed},
		{name: "transport", err: errors.New("connection refused"), want: StatusFailed},
		{name: "timeout", err: context.DeadlineExceeded, want: StatusFailed},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			fetcher := &fakeFetcher{identity: tc.identity, err: tc.err}
			result := NewResolver(fetcher, nil).Resolve(context.Background(), nil, nil)
			if result.Status != tc.want {
				t.Fatalf("status = %v, want %v", result.Status, tc.want)
			}
			if tc.want == StatusFailed && result.Err == nil {
				t.Fatalf("expected failure cause")
			}
			if tc.want == StatusFailed && !errors.Is(result.Err, tc.err) {
				t.Fatalf("failure cause = %v, want wrapping %v", result.Err, tc.err)
			}
		})
	}
}

func TestResolveForwardsCookiesAndObserves(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{identity: Identity{UserID: "u1"}}
	observer := &recordingObserver{}
	cookies := []*http.Cookie{{Name: "session_token", Value: "tok"}}

	NewResolver(fetcher, observer).Resolve(context.Background(), cookies, nil)

	fetcher.gotMu.Lock()
	got := fetcher.got
	fetcher.gotMu.Unlock()
	if len(got) != 1 || got[0].Value != "tok" {
		t.Fatalf("forwarded cookies = %+v", got)
	}
	if len(observer.statuses) != 1 || observer.statuses[0] != StatusAuthenticated {
		t.Fatalf("observed = %v", observer.statuses)
	}
}

func TestResolveConcurrentCallsAreIndependent(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{identity: Identity{UserID: "u1"}, block: make(chan struct{})}
	resolver := NewResolver(fetcher, nil)

	var wg sync.WaitGroup
	results := make([]Result, 2)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = resolver.Resolve(context.Background(), nil, nil)
		}(i)
	}
	for fetcher.calls.Load() < 2 {
		time.Sleep(time.Millisecond)
	}
	close(fetcher.block)
	wg.Wait()

	if got := fetcher.calls.Load(); got != 2 {
		t.Fatalf("backend calls = %d, want 2", got)
	}
	for i, result := range results {
		if result.Status != StatusAuthenticated {
			t.Fatalf("result[%d] = %+v", i, result)
		}
	}
}

func TestResolveWithoutFetcherFails(t *testing.T) {
	t.Parallel()

	var resolver *Resolver
	if got := resolver.Resolve(context.Background(), nil, nil); got.Status != StatusFailed {
		t.Fatalf("status = %v, want failed", got.Status)
	}
}

func TestIdentityContextRoundTrip(t *testing.T) {
	t.Parallel()

	if _, ok := IdentityFromContext(context.Background()); ok {
		t.Fatalf("expected no identity")
	}
	ctx := WithIdentity(context.Background(), Identity{ID: "u1", Name: "Alice"})
	identity, ok := IdentityFromContext(ctx)
	if !ok || identity.Subject() != "u1" || identity.DisplayName() != "Alice" {
		t.Fatalf("identity = %+v, ok = %v", identity, ok)
	}
	if _, ok := IdentityFromContext(WithIdentity(context.Background(), Identity{})); ok {
		t.Fatalf("expected empty identity to be ignored")
	}
}
