package dashboard

import (
	"net/http"

	"github.com/louisbranch/portfolio-tracker/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.Root+"{$}", h.handleIndex)
	mux.HandleFunc(http.MethodGet+" "+routepath.Dashboard, h.handleIndex)
	mux.HandleFunc(http.MethodPost+" "+routepath.DashboardHoldings, h.handleCreate)
	mux.HandleFunc(http.MethodPost+" "+routepath.DashboardHoldingsDelete, h.handleDelete)
	mux.HandleFunc(http.MethodGet+" "+routepath.Dashboard+"/{rest...}", h.handleNotFound)
}
