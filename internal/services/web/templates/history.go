package templates

import (
	"context"
	"time"

	"github.com/a-h/templ"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/routepath"
	"github.com/shopspring/decimal"
)

// SnapshotRow is one stored valuation, newest first.
type SnapshotRow struct {
	Taken  time.Time
	Total  decimal.Decimal
	Crypto decimal.Decimal
	Stocks decimal.Decimal
	Coins  decimal.Decimal
}

// HistoryPage renders the snapshot list.
func HistoryPage(page PageContext, rows []SnapshotRow) templ.Component {
	return component(func(_ context.Context, m *markup) {
		m.open("section", "class", "history-head")
		m.element("h1", T(page.Loc, "history.heading"))
		m.raw("<a class=\"button\"")
		m.href("href", routepath.Dashboard)
		m.raw(">")
		m.text(T(page.Loc, "nav.dashboard"))
		m.close("a")
		m.close("section")

		if len(rows) == 0 {
			m.open("div", "class", "empty")
			m.element("p", T(page.Loc, "history.empty"))
			m.element("p", T(page.Loc, "history.empty_hint"), "class", "hint")
			m.close("div")
			return
		}

		m.element("h2", T(page.Loc, "history.details"))
		m.raw("<table class=\"snapshots\"><thead><tr>")
		m.element("th", T(page.Loc, "history.date"))
		m.element("th", T(page.Loc, "history.total"))
		m.element("th", T(page.Loc, "dashboard.crypto"))
		m.element("th", T(page.Loc, "dashboard.stocks"))
		m.element("th", T(page.Loc, "dashboard.coins"))
		m.raw("</tr></thead><tbody>")
		for _, row := range rows {
			m.raw("<tr>")
			m.element("td", FormatDateTime(page.Lang, row.Taken))
			m.element("td", FormatEUR(page.Lang, row.Total), "class", "total")
			m.element("td", FormatEUR(page.Lang, row.Crypto))
			m.element("td", FormatEUR(page.Lang, row.Stocks))
			m.element("td", FormatEUR(page.Lang, row.Coins))
			m.raw("</tr>")
		}
		m.raw("</tbody></table>")
	})
}
