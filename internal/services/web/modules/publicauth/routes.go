package publicauth

import (
	"net/http"

	"github.com/louisbranch/portfolio-tracker/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/portfolio-tracker/internal/services/web/templates"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.Login, h.handleLoginPage)
	mux.HandleFunc(http.MethodPost+" "+routepath.Logout, h.handleLogout)
	if h.cfg.strategy() != webtemplates.StrategyPassword {
		return
	}
	mux.HandleFunc(http.MethodPost+" "+routepath.Login, h.handleLoginSubmit)
	mux.HandleFunc(http.MethodGet+" "+routepath.Signup, h.handleSignupPage)
	mux.HandleFunc(http.MethodPost+" "+routepath.Signup, h.handleSignupSubmit)
}
