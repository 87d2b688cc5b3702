package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

// Kind names a holdings collection on the backend.
type Kind string

const (
	KindCrypto Kind = "crypto"
	KindStocks Kind = "stocks"
	KindCoins  Kind = "coins"
)

// Kinds lists every holdings collection in display order.
func Kinds() []Kind {
	return []Kind{KindCrypto, KindStocks, KindCoins}
}

// ParseKind validates a kind received from a form.
func ParseKind(raw string) (Kind, bool) {
	switch kind := Kind(strings.ToLower(strings.TrimSpace(raw))); kind {
	case KindCrypto, KindStocks, KindCoins:
		return kind, true
	default:
		return "", false
	}
}

// Holding is one position. Crypto and stock holdings carry a symbol and a
// purchase price; coins carry the page and CSS selector their price is
// scraped from.
type Holding struct {
	ID            string              `json:"id"`
	Name          string              `json:"name"`
	Symbol        string              `json:"symbol,omitempty"`
	URL           string              `json:"url,omitempty"`
	CSSSelector   string              `json:"css_selector,omitempty"`
	Quantity      decimal.Decimal     `json:"quantity"`
	PurchasePrice decimal.NullDecimal `json:"purchase_price"`
	CreatedAt     string              `json:"created_at,omitempty"`
}

// NewHolding is the input for creating a holding of a given kind.
type NewHolding struct {
	Name          string
	Symbol        string
	URL           string
	CSSSelector   string
	Quantity      decimal.Decimal
	PurchasePrice decimal.Decimal
}

// Price is the live valuation of one holding.
type Price struct {
	Symbol       string          `json:"symbol,omitempty"`
	Name         string          `json:"name,omitempty"`
	CurrentPrice decimal.Decimal `json:"current_price_eur"`
	TotalValue   decimal.Decimal `json:"total_value_eur"`
}

// Holdings lists the user's holdings of kind.
func (c *Client) Holdings(ctx context.Context, kind Kind, cookies []*http.Cookie) ([]Holding, error) {
	var holdings []Holding
	_, err := c.do(ctx, call{
		op:      string(kind) + ".list",
		method:  http.MethodGet,
		path:    "/" + string(kind),
		cookies: cookies,
		out:     &holdings,
	})
	if err != nil {
		return nil, err
	}
	return holdings, nil
}

// CreateHolding adds a holding of kind.
func (c *Client) CreateHolding(ctx context.Context, kind Kind, in NewHolding, cookies []*http.Cookie) (Holding, error) {
	var created Holding
	_, err := c.do(ctx, call{
		op:      string(kind) + ".create",
		method:  http.MethodPost,
		path:    "/" + string(kind),
		cookies: cookies,
		body:    createPayload(kind, in),
		out:     &created,
	})
	if err != nil {
		return Holding{}, err
	}
	return created, nil
}

// DeleteHolding removes a holding of kind.
func (c *Client) DeleteHolding(ctx context.Context, kind Kind, id string, cookies []*http.Cookie) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("backend %s.delete: holding id is required", kind)
	}
	_, err := c.do(ctx, call{
		op:      string(kind) + ".delete",
		method:  http.MethodDelete,
		path:    "/" + string(kind) + "/" + url.PathEscape(id),
		cookies: cookies,
	})
	return err
}

// HoldingPrice fetches the live price of one holding.
func (c *Client) HoldingPrice(ctx context.Context, kind Kind, id string, cookies []*http.Cookie) (Price, error) {
	var price Price
	_, err := c.do(ctx, call{
		op:      string(kind) + ".price",
		method:  http.MethodGet,
		path:    "/" + string(kind) + "/" + url.PathEscape(id) + "/price",
		cookies: cookies,
		out:     &price,
	})
	if err != nil {
		return Price{}, err
	}
	return price, nil
}

// createPayload shapes the body the backend expects for kind. Amounts are
// sent as JSON numbers.
func createPayload(kind Kind, in NewHolding) map[string]any {
	payload := map[string]any{
		"name":     strings.TrimSpace(in.Name),
		"quantity": in.Quantity.InexactFloat64(),
	}
	if kind == KindCoins {
		payload["url"] = strings.TrimSpace(in.URL)
		payload["css_selector"] = strings.TrimSpace(in.CSSSelector)
		return payload
	}
	payload["symbol"] = strings.ToUpper(strings.TrimSpace(in.Symbol))
	payload["purchase_price"] = in.PurchasePrice.InexactFloat64()
	return payload
}
