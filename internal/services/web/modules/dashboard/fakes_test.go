package dashboard

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/louisbranch/portfolio-tracker/internal/services/web/backend"
	module "github.com/louisbranch/portfolio-tracker/internal/services/web/module"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/platform/flash"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/platform/pagerender"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/platform/requestmeta"
)

var errPriceDown = errors.New("price source down")

// fakeGateway implements Gateway with configurable data and call tracking.
type fakeGateway struct {
	mu sync.Mutex

	overview    backend.Overview
	overviewErr error
	holdings    map[backend.Kind][]backend.Holding
	holdingsErr error
	prices      map[string]backend.Price
	createErr   error
	deleteErr   error

	created    []backend.NewHolding
	deleted    []string
	priceCalls int
	cookies    []*http.Cookie
}

func (f *fakeGateway) Overview(_ context.Context, cookies []*http.Cookie) (backend.Overview, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cookies = cookies
	return f.overview, f.overviewErr
}

func (f *fakeGateway) Holdings(_ context.Context, kind backend.Kind, _ []*http.Cookie) ([]backend.Holding, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.holdingsErr != nil {
		return nil, f.holdingsErr
	}
	return f.holdings[kind], nil
}

func (f *fakeGateway) HoldingPrice(_ context.Context, _ backend.Kind, id string, _ []*http.Cookie) (backend.Price, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.priceCalls++
	price, ok := f.prices[id]
	if !ok {
		return backend.Price{}, errPriceDown
	}
	return price, nil
}

func (f *fakeGateway) CreateHolding(_ context.Context, kind backend.Kind, in backend.NewHolding, _ []*http.Cookie) (backend.Holding, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return backend.Holding{}, f.createErr
	}
	f.created = append(f.created, in)
	return backend.Holding{ID: "new", Name: in.Name, Symbol: in.Symbol, Quantity: in.Quantity}, nil
}

func (f *fakeGateway) DeleteHolding(_ context.Context, kind backend.Kind, id string, _ []*http.Cookie) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, string(kind)+"/"+id)
	return nil
}

func testDependencies() module.Dependencies {
	return module.Dependencies{Renderer: pagerender.New("Portfolio", requestmeta.SchemePolicy{})}
}

// flashFrom replays the response cookies into a request and reads the flash.
func flashFrom(t *testing.T, rr *httptest.ResponseRecorder) (flash.Notice, bool) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	for _, cookie := range rr.Result().Cookies() {
		req.AddCookie(cookie)
	}
	return flash.ReadAndClear(httptest.NewRecorder(), req, requestmeta.SchemePolicy{})
}
