package backend

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Overview is the portfolio valuation summary.
type Overview struct {
	TotalValue  decimal.Decimal `json:"total_value_eur"`
	CryptoValue decimal.Decimal `json:"crypto_value_eur"`
	StocksValue decimal.Decimal `json:"stocks_value_eur"`
	CoinsValue  decimal.Decimal `json:"coins_value_eur"`
	CryptoCount int             `json:"crypto_count"`
	StocksCount int             `json:"stocks_count"`
	CoinsCount  int             `json:"coins_count"`
}

// Snapshot is a stored valuation of the portfolio at one point in time.
type Snapshot struct {
	ID          string          `json:"id"`
	Timestamp   string          `json:"timestamp"`
	TotalValue  decimal.Decimal `json:"total_value_eur"`
	CryptoValue decimal.Decimal `json:"crypto_value_eur"`
	StocksValue decimal.Decimal `json:"stocks_value_eur"`
	CoinsValue  decimal.Decimal `json:"coins_value_eur"`
}

// Time parses the snapshot timestamp. Naive timestamps are taken as UTC.
func (s Snapshot) Time() (time.Time, bool) {
	return ParseTimestamp(s.Timestamp)
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// ParseTimestamp parses backend datetimes, with or without a zone offset.
func ParseTimestamp(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed.UTC(), true
		}
	}
	return time.Time{}, false
}

// Overview fetches the portfolio valuation summary.
func (c *Client) Overview(ctx context.Context, cookies []*http.Cookie) (Overview, error) {
	var overview Overview
	_, err := c.do(ctx, call{
		op:      "portfolio.overview",
		method:  http.MethodGet,
		path:    "/portfolio/overview",
		cookies: cookies,
		out:     &overview,
	})
	if err != nil {
		return Overview{}, err
	}
	return overview, nil
}

// CreateSnapshot records the current valuation.
func (c *Client) CreateSnapshot(ctx context.Context, cookies []*http.Cookie) (Snapshot, error) {
	var snapshot Snapshot
	_, err := c.do(ctx, call{
		op:      "history.snapshot",
		method:  http.MethodPost,
		path:    "/history/snapshot",
		cookies: cookies,
		out:     &snapshot,
	})
	if err != nil {
		return Snapshot{}, err
	}
	return snapshot, nil
}

// Snapshots lists stored valuations, newest first.
func (c *Client) Snapshots(ctx context.Context, cookies []*http.Cookie) ([]Snapshot, error) {
	var snapshots []Snapshot
	_, err := c.do(ctx, call{
		op:      "history.list",
		method:  http.MethodGet,
		path:    "/history/snapshots",
		cookies: cookies,
		out:     &snapshots,
	})
	if err != nil {
		return nil, err
	}
	return snapshots, nil
}
