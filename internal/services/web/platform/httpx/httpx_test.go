package httpx

import (
	"bytes"
	"errors"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "github.com/louisbranch/portfolio-tracker/internal/services/web/platform/errors"
)

func TestChainAppliesMiddlewareInOrder(t *testing.T) {
	t.Parallel()

	called := ""
	mw1 := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called += "1"
			next.ServeHTTP(w, r)
		})
	}
	mw2 := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called += "2"
			next.ServeHTTP(w, r)
		})
	}

	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called += "h"
		w.WriteHeader(http.StatusNoContent)
	}), mw1, mw2)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNoContent)
	}
	if called != "12h" {
		t.Fatalf("call order = %q, want %q", called, "12h")
	}
}

func TestChainHandlesNilHandlerAndMiddleware(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	Chain(nil, nil).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/no-route", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestRequireMethodRejectsUnexpectedMethod(t *testing.T) {
	t.Parallel()

	h := RequireMethod(http.MethodPost)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/logout", nil))
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusMethodNotAllowed)
	}
	if got := rr.Header().Get("Allow"); got != http.MethodPost {
		t.Fatalf("Allow = %q, want %q", got, http.MethodPost)
	}
}

func TestRequestIDAddsHeaderWhenMissing(t *testing.T) {
	t.Parallel()

	h := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.Header.Get("X-Request-ID"), "web-") {
			t.Fatalf("expected request header to include generated request id")
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected response to include request id")
	}
}

func TestRequestIDPreservesIncomingHeader(t *testing.T) {
	t.Parallel()

	h := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := RequestIDFrom(r); got != "req-123" {
			t.Fatalf("request id = %q, want %q", got, "req-123")
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "req-123")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if got := rr.Header().Get("X-Request-ID"); got != "req-123" {
		t.Fatalf("response request id = %q, want %q", got, "req-123")
	}
}

func TestRequestIDFromNilRequest(t *testing.T) {
	t.Parallel()

	if got := RequestIDFrom(nil); got != "-" {
		t.Fatalf("RequestIDFrom(nil) = %q, want %q", got, "-")
	}
}

func TestRecoverPanicLogsRequestContext(t *testing.T) {
	prevWriter := log.Writer()
	defer log.SetOutput(prevWriter)
	var buffer bytes.Buffer
	log.SetOutput(&buffer)

	h := RecoverPanic()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set("X-Request-ID", "req-123")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusInternalServerError)
	}
	logLine := buffer.String()
	for _, marker := range []string{"panic recovered", "path=/dashboard", "request_id=req-123"} {
		if !strings.Contains(logLine, marker) {
			t.Fatalf("panic log missing marker %q: %q", marker, logLine)
		}
	}
}

func TestWriteJSONSetsContentTypeAndBody(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	err := WriteJSON(rr, http.StatusOK, struct {
		Location string `json:"location"`
	}{Location: "/dashboard"})
	if err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}
	if got := rr.Header().Get("Content-Type"); !strings.HasPrefix(got, "application/json") {
		t.Fatalf("content-type = %q, want application/json", got)
	}
	if body := rr.Body.String(); !strings.Contains(body, `"location":"/dashboard"`) {
		t.Fatalf("body = %q, want encoded json", body)
	}
	if err := WriteJSON(nil, http.StatusOK, nil); err == nil {
		t.Fatalf("expected WriteJSON(nil) error")
	}
}

func TestWriteErrorUsesTypedStatus(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	WriteError(rr, apperrors.E(apperrors.KindUnauthorized, "missing session"))
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusUnauthorized)
	}

	rr = httptest.NewRecorder()
	WriteError(rr, errors.New("boom"))
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusInternalServerError)
	}

	WriteError(nil, errors.New("ignored"))
}

func TestIsHTMXRequestDetectsHeader(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if IsHTMXRequest(req) || IsHTMXRequest(nil) {
		t.Fatalf("expected non-htmx request")
	}
	req.Header.Set("HX-Request", "true")
	if !IsHTMXRequest(req) {
		t.Fatalf("expected htmx request")
	}
}

func TestWriteRedirect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		method     string
		htmx       bool
		wantStatus int
		wantHeader string
	}{
		{name: "get", method: http.MethodGet, wantStatus: http.StatusFound, wantHeader: "Location"},
		{name: "post", method: http.MethodPost, wantStatus: http.StatusSeeOther, wantHeader: "Location"},
		{name: "htmx", method: http.MethodGet, htmx: true, wantStatus: http.StatusOK, wantHeader: "HX-Redirect"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(tc.method, "/dashboard", nil)
			if tc.htmx {
				req.Header.Set("HX-Request", "true")
			}
			rr := httptest.NewRecorder()
			WriteRedirect(rr, req, "/login")
			if rr.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rr.Code, tc.wantStatus)
			}
			if got := rr.Header().Get(tc.wantHeader); got != "/login" {
				t.Fatalf("%s = %q, want %q", tc.wantHeader, got, "/login")
			}
		})
	}
}

func TestWriteRedirectHandlesNilRequestAndWriter(t *testing.T) {
	t.Parallel()

	WriteRedirect(nil, nil, "/ignored")
	WriteHXRedirect(nil, "/ignored")

	rr := httptest.NewRecorder()
	WriteRedirect(rr, nil, "/login")
	if rr.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusFound)
	}
	if got := rr.Header().Get("Location"); got != "/login" {
		t.Fatalf("Location = %q, want %q", got, "/login")
	}
}
