package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

type upstreamError struct{ status int }

func (e upstreamError) Error() string   { return fmt.Sprintf("upstream %d", e.status) }
func (e upstreamError) StatusCode() int { return e.status }

func TestHTTPStatusMapsKnownKinds(t *testing.T) {
	t.Parallel()

	if got := HTTPStatus(E(KindUnauthorized, "unauthorized")); got != http.StatusUnauthorized {
		t.Fatalf("unauthorized status = %d, want %d", got, http.StatusUnauthorized)
	}
	if got := HTTPStatus(E(KindInvalidInput, "bad")); got != http.StatusBadRequest {
		t.Fatalf("invalid input status = %d, want %d", got, http.StatusBadRequest)
	}
}

func TestHTTPStatusDefaultsToInternalError(t *testing.T) {
	t.Parallel()

	if got := HTTPStatus(errors.New("boom")); got != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", got, http.StatusInternalServerError)
	}
}

func TestErrorStringFallsBackToKindWhenMessageEmpty(t *testing.T) {
	t.Parallel()

	err := Error{Kind: KindForbidden}
	if got := err.Error(); got != string(KindForbidden) {
		t.Fatalf("Error() = %q, want %q", got, string(KindForbidden))
	}
}

func TestHTTPStatusCoversNilAndAdditionalKinds(t *testing.T) {
	t.Parallel()

	if got := HTTPStatus(nil); got != http.StatusOK {
		t.Fatalf("HTTPStatus(nil) = %d, want %d", got, http.StatusOK)
	}
	if got := HTTPStatus(E(KindForbidden, "forbidden")); got != http.StatusForbidden {
		t.Fatalf("forbidden status = %d, want %d", got, http.StatusForbidden)
	}
	if got := HTTPStatus(E(KindUnavailable, "unavailable")); got != http.StatusServiceUnavailable {
		t.Fatalf("unavailable status = %d, want %d", got, http.StatusServiceUnavailable)
	}
	if got := HTTPStatus(E(KindNotFound, "missing")); got != http.StatusNotFound {
		t.Fatalf("not-found status = %d, want %d", got, http.StatusNotFound)
	}
	if got := HTTPStatus(E(KindConflict, "conflict")); got != http.StatusConflict {
		t.Fatalf("conflict status = %d, want %d", got, http.StatusConflict)
	}
	if got := HTTPStatus(E(KindUnknown, "unknown")); got != http.StatusInternalServerError {
		t.Fatalf("unknown status = %d, want %d", got, http.StatusInternalServerError)
	}
}

func TestHTTPStatusMapsUpstreamStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		upstream int
		want     int
	}{
		{upstream: http.StatusUnauthorized, want: http.StatusUnauthorized},
		{upstream: http.StatusNotFound, want: http.StatusNotFound},
		{upstream: http.StatusUnprocessableEntity, want: http.StatusBadRequest},
		{upstream: http.StatusInternalServerError, want: http.StatusBadGateway},
	}
	for _, tt := range tests {
		err := fmt.Errorf("wrapped: %w", upstreamError{status: tt.upstream})
		if got := HTTPStatus(err); got != tt.want {
			t.Fatalf("HTTPStatus(upstream %d) = %d, want %d", tt.upstream, got, tt.want)
		}
	}
}

func TestLocalizationKey(t *testing.T) {
	t.Parallel()

	if got := LocalizationKey(EK(KindInvalidInput, " error.holding.quantity ", "bad quantity")); got != "error.holding.quantity" {
		t.Fatalf("LocalizationKey() = %q, want %q", got, "error.holding.quantity")
	}
	if got := LocalizationKey(errors.New("plain")); got != "" {
		t.Fatalf("LocalizationKey(plain) = %q, want empty", got)
	}
}
