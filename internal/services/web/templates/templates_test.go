package templates

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"
	webi18n "github.com/louisbranch/portfolio-tracker/internal/services/web/i18n"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
)

func frenchLocalizer(t *testing.T) Localizer {
	t.Helper()
	return webi18n.Printer(language.French)
}

func render(t *testing.T, page PageContext, titleKey string, body templ.Component) string {
	t.Helper()

	var buf bytes.Buffer
	ctx := templ.WithChildren(context.Background(), body)
	if err := Layout(page, titleKey).Render(ctx, &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return buf.String()
}

func TestLayoutLoadsBootstrapBeforeBody(t *testing.T) {
	t.Parallel()

	page := PageContext{Lang: "fr", Loc: frenchLocalizer(t), CurrentPath: "/login"}
	out := render(t, page, "title.login", templ.Raw("<p>child</p>"))

	script := strings.Index(out, `<script src="/static/bootstrap.js"></script>`)
	body := strings.Index(out, "<body>")
	if script < 0 || body < 0 || script > body {
		t.Fatalf("bootstrap script must be in head before body:\n%s", out)
	}
	if strings.Contains(out[:body], "defer") {
		t.Fatalf("bootstrap script must run synchronously:\n%s", out)
	}
	if !strings.Contains(out, "<title>Connexion | Portfolio Tracker</title>") {
		t.Fatalf("missing localized title:\n%s", out)
	}
	if !strings.Contains(out, "<p>child</p>") {
		t.Fatalf("missing children:\n%s", out)
	}
	if strings.Contains(out, `action="/logout"`) {
		t.Fatalf("anonymous page must not render logout:\n%s", out)
	}
}

func TestLayoutAuthenticatedNavigationAndToast(t *testing.T) {
	t.Parallel()

	page := PageContext{
		Lang:        "fr",
		Loc:         frenchLocalizer(t),
		CurrentPath: "/dashboard",
		UserName:    "<Alice>",
		Toast:       &Toast{Kind: "success", Message: "Connexion réussie !"},
	}
	out := render(t, page, "title.dashboard", templ.NopComponent)

	for _, want := range []string{
		`action="/logout"`,
		`class="nav-link active" href="/dashboard"`,
		`href="/history"`,
		"&lt;Alice&gt;",
		`class="toast toast-success"`,
		"Connexion réussie !",
		`href="/dashboard?lang=en"`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "<Alice>") {
		t.Fatalf("user name not escaped:\n%s", out)
	}
}

func TestLanguageURLKeepsQuery(t *testing.T) {
	t.Parallel()

	page := PageContext{CurrentPath: "/history", CurrentQuery: "lang=fr&x=1"}
	if got := LanguageURL(page, "en"); got != "/history?lang=en&x=1" {
		t.Fatalf("LanguageURL() = %q", got)
	}
	if got := LanguageURL(PageContext{}, "fr"); got != "/?lang=fr" {
		t.Fatalf("LanguageURL() empty = %q", got)
	}
}

func TestLoginPageStrategies(t *testing.T) {
	t.Parallel()

	page := PageContext{Lang: "fr", Loc: frenchLocalizer(t)}

	oauth := renderComponent(t, LoginPage(page, LoginView{
		Strategy: StrategyOAuth,
		OAuthURL: "https://auth.emergentagent.com/?redirect=https%3A%2F%2Fpt.example.com%2Fdashboard",
	}))
	if !strings.Contains(oauth, `href="https://auth.emergentagent.com/?redirect=https%3A%2F%2Fpt.example.com%2Fdashboard"`) {
		t.Fatalf("oauth link missing:\n%s", oauth)
	}
	if strings.Contains(oauth, `name="password"`) {
		t.Fatalf("oauth strategy must not render the password form:\n%s", oauth)
	}

	password := renderComponent(t, LoginPage(page, LoginView{Strategy: StrategyPassword, Email: "a@example.com", Error: "Invalid credentials"}))
	for _, want := range []string{`action="/login"`, `name="password"`, `value="a@example.com"`, "Invalid credentials", `href="/signup"`} {
		if !strings.Contains(password, want) {
			t.Fatalf("password form missing %q:\n%s", want, password)
		}
	}
}

func TestCallbackPageCarriesLoadID(t *testing.T) {
	t.Parallel()

	page := PageContext{Lang: "fr", Loc: frenchLocalizer(t)}
	out := renderComponent(t, CallbackPage(page, "load-1"))
	for _, want := range []string{`data-load-id="load-1"`, `data-endpoint="/auth/callback"`, "Authentification en cours...", `src="/static/callback.js"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("callback page missing %q:\n%s", want, out)
		}
	}
}

func TestDashboardPageRendersHoldings(t *testing.T) {
	t.Parallel()

	page := PageContext{Lang: "en", Loc: webi18n.Printer(language.English)}
	view := DashboardView{
		UserName: "Alice",
		Total:    decimal.RequireFromString("1234.5"),
		Sections: []HoldingSection{
			{
				Kind:          "crypto",
				TitleKey:      "dashboard.crypto",
				Count:         1,
				SymbolHintKey: "holding.symbol_crypto_hint",
				Rows: []HoldingRow{{
					ID:            "h1",
					Name:          "Bitcoin",
					Symbol:        "BTC",
					Quantity:      decimal.RequireFromString("0.5"),
					PurchasePrice: decimal.NewNullDecimal(decimal.NewFromInt(30000)),
				}},
			},
			{Kind: "coins", TitleKey: "dashboard.coins", Scraped: true},
		},
	}
	out := renderComponent(t, DashboardPage(page, view))
	for _, want := range []string{
		"€1,234.50",
		"Bitcoin",
		"BTC",
		"€30,000.00",
		"Unavailable",
		`name="id" value="h1"`,
		`action="/dashboard/holdings/delete"`,
		`name="css_selector"`,
		"Nothing here yet",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("dashboard missing %q:\n%s", want, out)
		}
	}
}

func TestHistoryPageEmptyAndRows(t *testing.T) {
	t.Parallel()

	page := PageContext{Lang: "fr", Loc: frenchLocalizer(t)}
	empty := renderComponent(t, HistoryPage(page, nil))
	if !strings.Contains(empty, "Aucun instantané disponible") {
		t.Fatalf("empty history missing message:\n%s", empty)
	}

	rows := []SnapshotRow{{
		Taken: time.Date(2026, 3, 4, 9, 30, 0, 0, time.UTC),
		Total: decimal.RequireFromString("1500"),
	}}
	out := renderComponent(t, HistoryPage(page, rows))
	if !strings.Contains(out, "04/03/2026 09:30") {
		t.Fatalf("history missing date:\n%s", out)
	}
	if !strings.Contains(out, "1\u00a0500,00\u00a0€") {
		t.Fatalf("history missing french amount:\n%s", out)
	}
}

func TestErrorPage(t *testing.T) {
	t.Parallel()

	page := PageContext{Lang: "fr", Loc: frenchLocalizer(t)}
	if out := renderComponent(t, ErrorPage(page, http.StatusNotFound)); !strings.Contains(out, "Page introuvable") {
		t.Fatalf("not found page:\n%s", out)
	}
}

func TestFormatEUR(t *testing.T) {
	t.Parallel()

	amount := decimal.RequireFromString("1234.567")
	if got := FormatEUR("en", amount); got != "€1,234.57" {
		t.Fatalf("FormatEUR(en) = %q", got)
	}
	if got := FormatEUR("fr", amount); got != "1\u00a0234,57\u00a0€" {
		t.Fatalf("FormatEUR(fr) = %q", got)
	}
	if got := FormatEUR("fr", decimal.Zero); got != "0,00\u00a0€" {
		t.Fatalf("FormatEUR(fr, 0) = %q", got)
	}
}

func TestFormatQuantity(t *testing.T) {
	t.Parallel()

	if got := FormatQuantity("fr", decimal.RequireFromString("0.2500")); got != "0,25" {
		t.Fatalf("FormatQuantity(fr) = %q", got)
	}
	if got := FormatQuantity("en", decimal.RequireFromString("12")); got != "12" {
		t.Fatalf("FormatQuantity(en) = %q", got)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, io.ErrClosedPipe }

func TestComponentReturnsWriteError(t *testing.T) {
	t.Parallel()

	err := ErrorPage(PageContext{}, http.StatusInternalServerError).Render(context.Background(), failingWriter{})
	if err != io.ErrClosedPipe {
		t.Fatalf("Render() error = %v, want %v", err, io.ErrClosedPipe)
	}
}

func renderComponent(t *testing.T, c templ.Component) string {
	t.Helper()

	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return buf.String()
}
