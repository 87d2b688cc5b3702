package history

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/louisbranch/portfolio-tracker/internal/services/web/backend"
	module "github.com/louisbranch/portfolio-tracker/internal/services/web/module"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/platform/flash"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/platform/pagerender"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/routepath"
	"github.com/shopspring/decimal"
)

type fakeGateway struct {
	snapshots []backend.Snapshot
	listErr   error
	createErr error
	created   int
}

func (f *fakeGateway) Snapshots(context.Context, []*http.Cookie) ([]backend.Snapshot, error) {
	return f.snapshots, f.listErr
}

func (f *fakeGateway) CreateSnapshot(context.Context, []*http.Cookie) (backend.Snapshot, error) {
	if f.createErr != nil {
		return backend.Snapshot{}, f.createErr
	}
	f.created++
	return backend.Snapshot{ID: "s-new"}, nil
}

func mountHistory(t *testing.T, gw Gateway) http.Handler {
	t.Helper()

	var m Module
	if gw != nil {
		m = New(gw)
	}
	mount, err := m.Mount(module.Dependencies{Renderer: pagerender.New("Portfolio", requestmeta.SchemePolicy{})})
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	return mount.Handler
}

func readFlash(t *testing.T, rr *httptest.ResponseRecorder) flash.Notice {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, routepath.Dashboard, nil)
	for _, cookie := range rr.Result().Cookies() {
		req.AddCookie(cookie)
	}
	notice, ok := flash.ReadAndClear(httptest.NewRecorder(), req, requestmeta.SchemePolicy{})
	if !ok {
		t.Fatalf("expected flash cookie")
	}
	return notice
}

func TestModuleIDAndHealth(t *testing.T) {
	t.Parallel()

	if got := (Module{}).ID(); got != "history" {
		t.Fatalf("ID() = %q, want history", got)
	}
	if (Module{}).Healthy() {
		t.Fatalf("expected module without gateway to be unhealthy")
	}
}

func TestListRendersNewestFirst(t *testing.T) {
	t.Parallel()

	gw := &fakeGateway{snapshots: []backend.Snapshot{
		{ID: "old", Timestamp: "2024-01-02T10:00:00", TotalValue: decimal.RequireFromString("100")},
		{ID: "new", Timestamp: "2024-03-04T10:00:00Z", TotalValue: decimal.RequireFromString("250")},
	}}
	rr := httptest.NewRecorder()
	mountHistory(t, gw).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, routepath.History+"?lang=en", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	body := rr.Body.String()
	newer := strings.Index(body, "Mar 4, 2024")
	older := strings.Index(body, "Jan 2, 2024")
	if newer < 0 || older < 0 || newer > older {
		t.Fatalf("expected newest snapshot first, got indexes %d/%d", newer, older)
	}
}

func TestListEmptyState(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	mountHistory(t, &fakeGateway{}).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, routepath.History+"?lang=en", nil))

	if !strings.Contains(rr.Body.String(), "No snapshots yet") {
		t.Fatalf("body missing empty state")
	}
}

func TestListFailureShowsToast(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	mountHistory(t, nil).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, routepath.History+"?lang=en", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if !strings.Contains(rr.Body.String(), "Could not load the history") {
		t.Fatalf("body missing history failure toast")
	}
}

func TestListRedirectsWhenSessionExpired(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	mountHistory(t, &fakeGateway{listErr: &backend.Error{Op: "snapshots", Status: 401}}).
		ServeHTTP(rr, httptest.NewRequest(http.MethodGet, routepath.History, nil))

	if got := rr.Header().Get("Location"); got != routepath.Login {
		t.Fatalf("Location = %q, want %q", got, routepath.Login)
	}
}

func TestSnapshotRedirectsToDashboard(t *testing.T) {
	t.Parallel()

	gw := &fakeGateway{}
	rr := httptest.NewRecorder()
	mountHistory(t, gw).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, routepath.HistorySnapshot, nil))

	if rr.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusSeeOther)
	}
	if got := rr.Header().Get("Location"); got != routepath.Dashboard {
		t.Fatalf("Location = %q, want %q", got, routepath.Dashboard)
	}
	if notice := readFlash(t, rr); notice.Key != "toast.snapshot_created" {
		t.Fatalf("flash key = %q, want toast.snapshot_created", notice.Key)
	}
	if gw.created != 1 {
		t.Fatalf("created = %d, want 1", gw.created)
	}
}

func TestSnapshotFailureFlashesError(t *testing.T) {
	t.Parallel()

	gw := &fakeGateway{createErr: &backend.Error{Op: "snapshot", Status: 500}}
	rr := httptest.NewRecorder()
	mountHistory(t, gw).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, routepath.HistorySnapshot, nil))

	notice := readFlash(t, rr)
	if notice.Key != "toast.snapshot_failed" || notice.Kind != flash.KindError {
		t.Fatalf("flash = %+v, want toast.snapshot_failed error", notice)
	}
}
