package dashboard

import (
	"context"
	"net/http"

	"github.com/louisbranch/portfolio-tracker/internal/services/web/backend"
	apperrors "github.com/louisbranch/portfolio-tracker/internal/services/web/platform/errors"
)

var errUnavailable = apperrors.E(apperrors.KindUnavailable, "dashboard backend is not configured")

type unavailableGateway struct{}

func (unavailableGateway) Overview(context.Context, []*http.Cookie) (backend.Overview, error) {
	return backend.Overview{}, errUnavailable
}

func (unavailableGateway) Holdings(context.Context, backend.Kind, []*http.Cookie) ([]backend.Holding, error) {
	return nil, errUnavailable
}

func (unavailableGateway) HoldingPrice(context.Context, backend.Kind, string, []*http.Cookie) (backend.Price, error) {
	return backend.Price{}, errUnavailable
}

func (unavailableGateway) CreateHolding(context.Context, backend.Kind, backend.NewHolding, []*http.Cookie) (backend.Holding, error) {
	return backend.Holding{}, errUnavailable
}

func (unavailableGateway) DeleteHolding(context.Context, backend.Kind, string, []*http.Cookie) error {
	return errUnavailable
}
