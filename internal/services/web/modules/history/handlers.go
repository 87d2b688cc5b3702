package history

import (
	"log"
	"net/http"

	"github.com/a-h/templ"
	module "github.com/louisbranch/portfolio-tracker/internal/services/web/module"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/platform/flash"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/platform/httpx"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/platform/pagerender"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/platform/sessioncookie"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/platform/weberror"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/portfolio-tracker/internal/services/web/templates"
)

type handlers struct {
	modulehandler.Base
	service service
}

func newHandlers(s service, deps module.Dependencies) handlers {
	return handlers{Base: modulehandler.NewBase(deps), service: s}
}

func (h handlers) handleList(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.list(r.Context(), sessioncookie.Outbound(r))
	var notice *flash.Notice
	if err != nil {
		if h.RedirectIfExpired(w, r, err) {
			return
		}
		log.Printf("history load failed request_id=%s err=%v", httpx.RequestIDFrom(r), err)
		failed := weberror.Notice(err, "toast.history_failed")
		notice = &failed
	}
	h.WritePage(w, r, pagerender.Page{
		TitleKey: "title.history",
		Notice:   notice,
		Body: func(page webtemplates.PageContext) templ.Component {
			return webtemplates.HistoryPage(page, rows)
		},
	})
}

// handleSnapshot records the current valuation and returns to the dashboard,
// where the snapshot form lives.
func (h handlers) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	if err := h.service.take(r.Context(), sessioncookie.Outbound(r)); err != nil {
		if h.RedirectIfExpired(w, r, err) {
			return
		}
		log.Printf("snapshot failed request_id=%s err=%v", httpx.RequestIDFrom(r), err)
		h.RedirectWithNotice(w, r, routepath.Dashboard, weberror.Notice(err, "toast.snapshot_failed"))
		return
	}
	h.RedirectWithNotice(w, r, routepath.Dashboard, flash.NoticeSuccess("toast.snapshot_created"))
}
