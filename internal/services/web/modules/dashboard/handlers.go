package dashboard

import (
	"log"
	"net/http"

	"github.com/a-h/templ"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/backend"
	module "github.com/louisbranch/portfolio-tracker/internal/services/web/module"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/platform/flash"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/platform/httpx"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/platform/pagerender"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/platform/sessioncookie"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/platform/weberror"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/routepath"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/session"
	webtemplates "github.com/louisbranch/portfolio-tracker/internal/services/web/templates"
)

// kindCopy holds the localization keys that differ per holding kind.
type kindCopy struct {
	title      string
	symbolHint string
	added      string
	addFailed  string
}

var copyByKind = map[backend.Kind]kindCopy{
	backend.KindCrypto: {title: "dashboard.crypto", symbolHint: "holding.symbol_crypto_hint", added: "toast.crypto_added", addFailed: "toast.crypto_add_failed"},
	backend.KindStocks: {title: "dashboard.stocks", symbolHint: "holding.symbol_stock_hint", added: "toast.stock_added", addFailed: "toast.stock_add_failed"},
	backend.KindCoins:  {title: "dashboard.coins", added: "toast.coin_added", addFailed: "toast.coin_add_failed"},
}

type handlers struct {
	modulehandler.Base
	service service
}

func newHandlers(s service, deps module.Dependencies) handlers {
	return handlers{Base: modulehandler.NewBase(deps), service: s}
}

func (h handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	identity := h.Identity(r)
	portfolio, err := h.service.load(r.Context(), sessioncookie.Outbound(r))
	var notice *flash.Notice
	if err != nil {
		if h.RedirectIfExpired(w, r, err) {
			return
		}
		log.Printf("dashboard load failed request_id=%s err=%v", httpx.RequestIDFrom(r), err)
		failed := weberror.Notice(err, "toast.load_failed")
		notice = &failed
		portfolio = emptyPortfolio()
	}

	h.WritePage(w, r, pagerender.Page{
		TitleKey: "title.dashboard",
		Notice:   notice,
		Body: func(page webtemplates.PageContext) templ.Component {
			return webtemplates.DashboardPage(page, dashboardView(identity, portfolio))
		},
	})
}

func (h handlers) handleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.RedirectWithNotice(w, r, routepath.Dashboard, flash.NoticeError("toast.invalid_holding"))
		return
	}
	kind, ok := backend.ParseKind(r.PostForm.Get("kind"))
	if !ok {
		h.RedirectWithNotice(w, r, routepath.Dashboard, flash.NoticeError("toast.invalid_holding"))
		return
	}
	labels := copyByKind[kind]
	in, err := parseNewHolding(kind, r.PostForm)
	if err != nil {
		h.RedirectWithNotice(w, r, routepath.Dashboard, weberror.Notice(err, labels.addFailed))
		return
	}
	if err := h.service.create(r.Context(), kind, in, sessioncookie.Outbound(r)); err != nil {
		if h.RedirectIfExpired(w, r, err) {
			return
		}
		log.Printf("holding create failed kind=%s request_id=%s err=%v", kind, httpx.RequestIDFrom(r), err)
		h.RedirectWithNotice(w, r, routepath.Dashboard, weberror.Notice(err, labels.addFailed))
		return
	}
	h.RedirectWithNotice(w, r, routepath.Dashboard, flash.NoticeSuccess(labels.added))
}

func (h handlers) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.RedirectWithNotice(w, r, routepath.Dashboard, flash.NoticeError("toast.holding_delete_failed"))
		return
	}
	kind, ok := backend.ParseKind(r.PostForm.Get("kind"))
	if !ok {
		h.RedirectWithNotice(w, r, routepath.Dashboard, flash.NoticeError("toast.holding_delete_failed"))
		return
	}
	if err := h.service.remove(r.Context(), kind, r.PostForm.Get("id"), sessioncookie.Outbound(r)); err != nil {
		if h.RedirectIfExpired(w, r, err) {
			return
		}
		log.Printf("holding delete failed kind=%s request_id=%s err=%v", kind, httpx.RequestIDFrom(r), err)
		h.RedirectWithNotice(w, r, routepath.Dashboard, weberror.Notice(err, "toast.holding_delete_failed"))
		return
	}
	h.RedirectWithNotice(w, r, routepath.Dashboard, flash.NoticeSuccess("toast.holding_deleted"))
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.WriteNotFound(w, r)
}

func emptyPortfolio() Portfolio {
	portfolio := Portfolio{}
	for _, kind := range backend.Kinds() {
		portfolio.Sections = append(portfolio.Sections, Section{Kind: kind})
	}
	return portfolio
}

func dashboardView(identity session.Identity, portfolio Portfolio) webtemplates.DashboardView {
	overview := portfolio.Overview
	view := webtemplates.DashboardView{
		UserName: identity.DisplayName(),
		Total:    overview.TotalValue,
	}
	for _, section := range portfolio.Sections {
		labels := copyByKind[section.Kind]
		out := webtemplates.HoldingSection{
			Kind:          string(section.Kind),
			TitleKey:      labels.title,
			Scraped:       section.Kind == backend.KindCoins,
			SymbolHintKey: labels.symbolHint,
			Rows:          make([]webtemplates.HoldingRow, 0, len(section.Holdings)),
		}
		switch section.Kind {
		case backend.KindCrypto:
			out.Value, out.Count = overview.CryptoValue, overview.CryptoCount
		case backend.KindStocks:
			out.Value, out.Count = overview.StocksValue, overview.StocksCount
		case backend.KindCoins:
			out.Value, out.Count = overview.CoinsValue, overview.CoinsCount
		}
		for _, entry := range section.Holdings {
			row := webtemplates.HoldingRow{
				ID:            entry.Holding.ID,
				Name:          entry.Holding.Name,
				Symbol:        entry.Holding.Symbol,
				URL:           entry.Holding.URL,
				Quantity:      entry.Holding.Quantity,
				PurchasePrice: entry.Holding.PurchasePrice,
			}
			if entry.Priced {
				row.CurrentPrice.Decimal, row.CurrentPrice.Valid = entry.Price.CurrentPrice, true
				row.Value.Decimal, row.Value.Valid = entry.Price.TotalValue, true
			}
			out.Rows = append(out.Rows, row)
		}
		view.Sections = append(view.Sections, out)
	}
	return view
}
