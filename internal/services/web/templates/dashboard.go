package templates

import (
	"context"

	"github.com/a-h/templ"
	"github.com/louisbranch/portfolio-tracker/internal/services/web/routepath"
	"github.com/shopspring/decimal"
)

// DashboardView is the portfolio overview with one section per holding kind.
type DashboardView struct {
	UserName string
	Total    decimal.Decimal
	Sections []HoldingSection
}

// HoldingSection lists the holdings of one kind.
type HoldingSection struct {
	Kind     string
	TitleKey string
	Value    decimal.Decimal
	Count    int
	// Scraped sections identify holdings by page URL and selector instead of
	// a ticker symbol.
	Scraped bool
	// SymbolHintKey is the placeholder of the symbol field.
	SymbolHintKey string
	Rows          []HoldingRow
}

// HoldingRow is one holding with its live valuation, when available.
type HoldingRow struct {
	ID            string
	Name          string
	Symbol        string
	URL           string
	Quantity      decimal.Decimal
	PurchasePrice decimal.NullDecimal
	CurrentPrice  decimal.NullDecimal
	Value         decimal.NullDecimal
}

// DashboardPage renders the totals, holdings tables and add forms.
func DashboardPage(page PageContext, view DashboardView) templ.Component {
	return component(func(_ context.Context, m *markup) {
		m.open("section", "class", "dashboard-head")
		m.element("h1", T(page.Loc, "dashboard.greeting", view.UserName))
		m.postForm(routepath.HistorySnapshot, "snapshot")
		m.element("button", T(page.Loc, "dashboard.snapshot"), "type", "submit")
		m.close("form")
		m.close("section")

		m.open("section", "class", "totals")
		totalCard(m, T(page.Loc, "dashboard.total"), FormatEUR(page.Lang, view.Total), "")
		for _, section := range view.Sections {
			totalCard(m, T(page.Loc, section.TitleKey), FormatEUR(page.Lang, section.Value), T(page.Loc, "dashboard.count", section.Count))
		}
		m.close("section")

		for _, section := range view.Sections {
			holdingSection(m, page, section)
		}
	})
}

func totalCard(m *markup, label, amount, detail string) {
	m.open("div", "class", "card total")
	m.element("span", label, "class", "label")
	m.element("strong", amount, "class", "amount")
	if detail != "" {
		m.element("span", detail, "class", "detail")
	}
	m.close("div")
}

func holdingSection(m *markup, page PageContext, section HoldingSection) {
	m.open("section", "class", "holdings", "id", "holdings-"+section.Kind)
	m.element("h2", T(page.Loc, section.TitleKey))

	if len(section.Rows) == 0 {
		m.element("p", T(page.Loc, "dashboard.empty"), "class", "empty")
	} else {
		m.raw("<table><thead><tr>")
		m.element("th", T(page.Loc, "holding.name"))
		if section.Scraped {
			m.element("th", T(page.Loc, "holding.url"))
		} else {
			m.element("th", T(page.Loc, "holding.symbol"))
		}
		m.element("th", T(page.Loc, "holding.quantity"))
		if !section.Scraped {
			m.element("th", T(page.Loc, "holding.purchase_price"))
		}
		m.element("th", T(page.Loc, "holding.current_price"))
		m.element("th", T(page.Loc, "holding.value"))
		m.raw("<th></th></tr></thead><tbody>")
		for _, row := range section.Rows {
			holdingRow(m, page, section, row)
		}
		m.raw("</tbody></table>")
	}
	addHoldingForm(m, page, section)
	m.close("section")
}

func holdingRow(m *markup, page PageContext, section HoldingSection, row HoldingRow) {
	m.raw("<tr>")
	m.element("td", row.Name)
	if section.Scraped {
		m.raw("<td><a rel=\"noopener noreferrer\" target=\"_blank\"")
		m.href("href", row.URL)
		m.raw(">")
		m.text(row.URL)
		m.raw("</a></td>")
	} else {
		m.element("td", row.Symbol, "class", "symbol")
	}
	m.element("td", FormatQuantity(page.Lang, row.Quantity))
	if !section.Scraped {
		m.element("td", optionalEUR(page, row.PurchasePrice, "-"))
	}
	unavailable := T(page.Loc, "holding.price_unavailable")
	m.element("td", optionalEUR(page, row.CurrentPrice, unavailable))
	m.element("td", optionalEUR(page, row.Value, unavailable))
	m.raw("<td>")
	m.postForm(routepath.DashboardHoldingsDelete, "delete")
	m.hidden("kind", section.Kind)
	m.hidden("id", row.ID)
	m.element("button", T(page.Loc, "holding.delete"), "type", "submit", "class", "danger")
	m.close("form")
	m.raw("</td></tr>")
}

func addHoldingForm(m *markup, page PageContext, section HoldingSection) {
	m.postForm(routepath.DashboardHoldings, "add-holding")
	m.hidden("kind", section.Kind)
	m.input("text", "name", T(page.Loc, "holding.name"), "", true)
	if section.Scraped {
		m.input("url", "url", T(page.Loc, "holding.url"), "", true)
		m.input("text", "css_selector", T(page.Loc, "holding.css_selector"), "", true)
		m.input("text", "quantity", T(page.Loc, "holding.quantity"), "", true, "inputmode", "decimal")
	} else {
		m.input("text", "symbol", T(page.Loc, "holding.symbol"), "", true, "placeholder", T(page.Loc, section.SymbolHintKey))
		m.input("text", "quantity", T(page.Loc, "holding.quantity"), "", true, "inputmode", "decimal")
		m.input("text", "purchase_price", T(page.Loc, "holding.purchase_price"), "", true, "inputmode", "decimal")
	}
	m.element("button", T(page.Loc, "holding.add"), "type", "submit", "class", "primary")
	m.close("form")
}

func optionalEUR(page PageContext, amount decimal.NullDecimal, fallback string) string {
	if !amount.Valid {
		return fallback
	}
	return FormatEUR(page.Lang, amount.Decimal)
}
