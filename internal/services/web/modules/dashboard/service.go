package dashboard

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/louisbranch/portfolio-tracker/internal/services/web/backend"
	apperrors "github.com/louisbranch/portfolio-tracker/internal/services/web/platform/errors"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// priceFanOut bounds concurrent live-price lookups per page load.
const priceFanOut = 8

// Gateway is the backend surface the dashboard reads and mutates.
type Gateway interface {
	Overview(ctx context.Context, cookies []*http.Cookie) (backend.Overview, error)
	Holdings(ctx context.Context, kind backend.Kind, cookies []*http.Cookie) ([]backend.Holding, error)
	HoldingPrice(ctx context.Context, kind backend.Kind, id string, cookies []*http.Cookie) (backend.Price, error)
	CreateHolding(ctx context.Context, kind backend.Kind, in backend.NewHolding, cookies []*http.Cookie) (backend.Holding, error)
	DeleteHolding(ctx context.Context, kind backend.Kind, id string, cookies []*http.Cookie) error
}

// PricedHolding is a holding with its live price when the lookup succeeded.
type PricedHolding struct {
	Holding backend.Holding
	Price   backend.Price
	Priced  bool
}

// Section groups the holdings of one kind.
type Section struct {
	Kind     backend.Kind
	Holdings []PricedHolding
}

// Portfolio is everything the dashboard page shows.
type Portfolio struct {
	Overview backend.Overview
	Sections []Section
}

type service struct {
	gateway Gateway
}

func newService(gateway Gateway) service {
	if gateway == nil {
		gateway = unavailableGateway{}
	}
	return service{gateway: gateway}
}

// load fetches the overview and every holdings list concurrently, then the
// live price of each holding. A failed price leaves that holding unpriced.
func (s service) load(ctx context.Context, cookies []*http.Cookie) (Portfolio, error) {
	kinds := backend.Kinds()
	lists := make([][]backend.Holding, len(kinds))
	var overview backend.Overview

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		o, err := s.gateway.Overview(gctx, cookies)
		if err != nil {
			return fmt.Errorf("load overview: %w", err)
		}
		overview = o
		return nil
	})
	for i, kind := range kinds {
		g.Go(func() error {
			holdings, err := s.gateway.Holdings(gctx, kind, cookies)
			if err != nil {
				return fmt.Errorf("load %s holdings: %w", kind, err)
			}
			lists[i] = holdings
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Portfolio{}, err
	}

	portfolio := Portfolio{Overview: overview, Sections: make([]Section, len(kinds))}
	for i, kind := range kinds {
		section := Section{Kind: kind, Holdings: make([]PricedHolding, 0, len(lists[i]))}
		for _, holding := range lists[i] {
			section.Holdings = append(section.Holdings, PricedHolding{Holding: holding})
		}
		portfolio.Sections[i] = section
	}
	s.loadPrices(ctx, cookies, portfolio.Sections)
	return portfolio, nil
}

func (s service) loadPrices(ctx context.Context, cookies []*http.Cookie, sections []Section) {
	var g errgroup.Group
	g.SetLimit(priceFanOut)
	for si := range sections {
		kind := sections[si].Kind
		for hi := range sections[si].Holdings {
			entry := &sections[si].Holdings[hi]
			g.Go(func() error {
				price, err := s.gateway.HoldingPrice(ctx, kind, entry.Holding.ID, cookies)
				if err != nil {
					log.Printf("price unavailable kind=%s id=%s err=%v", kind, entry.Holding.ID, err)
					return nil
				}
				entry.Price = price
				entry.Priced = true
				return nil
			})
		}
	}
	_ = g.Wait()
}

func (s service) create(ctx context.Context, kind backend.Kind, in backend.NewHolding, cookies []*http.Cookie) error {
	if _, err := s.gateway.CreateHolding(ctx, kind, in, cookies); err != nil {
		return fmt.Errorf("create %s holding: %w", kind, err)
	}
	return nil
}

func (s service) remove(ctx context.Context, kind backend.Kind, id string, cookies []*http.Cookie) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperrors.EK(apperrors.KindInvalidInput, "toast.invalid_holding", "holding id is required")
	}
	if err := s.gateway.DeleteHolding(ctx, kind, id, cookies); err != nil {
		return fmt.Errorf("delete %s holding: %w", kind, err)
	}
	return nil
}

// parseNewHolding validates the add-holding form for kind. Decimal fields
// accept a comma as decimal separator.
func parseNewHolding(kind backend.Kind, form url.Values) (backend.NewHolding, error) {
	in := backend.NewHolding{
		Name:        strings.TrimSpace(form.Get("name")),
		Symbol:      strings.ToUpper(strings.TrimSpace(form.Get("symbol"))),
		URL:         strings.TrimSpace(form.Get("url")),
		CSSSelector: strings.TrimSpace(form.Get("css_selector")),
	}
	if in.Name == "" {
		return backend.NewHolding{}, invalidHolding("name is required")
	}
	quantity, ok := parseAmount(form.Get("quantity"))
	if !ok || !quantity.IsPositive() {
		return backend.NewHolding{}, invalidHolding("quantity must be a positive number")
	}
	in.Quantity = quantity

	switch kind {
	case backend.KindCoins:
		parsed, err := url.Parse(in.URL)
		if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
			return backend.NewHolding{}, invalidHolding("url must be an absolute http(s) address")
		}
		if in.CSSSelector == "" {
			return backend.NewHolding{}, invalidHolding("css selector is required")
		}
	default:
		if in.Symbol == "" {
			return backend.NewHolding{}, invalidHolding("symbol is required")
		}
		price, ok := parseAmount(form.Get("purchase_price"))
		if !ok || price.IsNegative() {
			return backend.NewHolding{}, invalidHolding("purchase price must be a number")
		}
		in.PurchasePrice = price
	}
	return in, nil
}

func parseAmount(raw string) (decimal.Decimal, bool) {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), " ", "")
	raw = strings.Replace(raw, ",", ".", 1)
	if raw == "" {
		return decimal.Decimal{}, false
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return value, true
}

func invalidHolding(message string) error {
	return apperrors.EK(apperrors.KindInvalidInput, "toast.invalid_holding", message)
}
