package history

import (
	"context"
	"fmt"
	"net/http"
	"slices"

	"github.com/louisbranch/portfolio-tracker/internal/services/web/backend"
	apperrors "github.com/louisbranch/portfolio-tracker/internal/services/web/platform/errors"
	webtemplates "github.com/louisbranch/portfolio-tracker/internal/services/web/templates"
)

// Gateway is the backend surface of the history page.
type Gateway interface {
	Snapshots(ctx context.Context, cookies []*http.Cookie) ([]backend.Snapshot, error)
	CreateSnapshot(ctx context.Context, cookies []*http.Cookie) (backend.Snapshot, error)
}

type service struct {
	gateway Gateway
}

func newService(gateway Gateway) service {
	return service{gateway: gateway}
}

// list returns the stored snapshots newest first. Snapshots with an
// unreadable timestamp sort last.
func (s service) list(ctx context.Context, cookies []*http.Cookie) ([]webtemplates.SnapshotRow, error) {
	if s.gateway == nil {
		return nil, errUnavailable
	}
	snapshots, err := s.gateway.Snapshots(ctx, cookies)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	rows := make([]webtemplates.SnapshotRow, 0, len(snapshots))
	for _, snapshot := range snapshots {
		taken, _ := snapshot.Time()
		rows = append(rows, webtemplates.SnapshotRow{
			Taken:  taken,
			Total:  snapshot.TotalValue,
			Crypto: snapshot.CryptoValue,
			Stocks: snapshot.StocksValue,
			Coins:  snapshot.CoinsValue,
		})
	}
	slices.SortStableFunc(rows, func(a, b webtemplates.SnapshotRow) int {
		return b.Taken.Compare(a.Taken)
	})
	return rows, nil
}

func (s service) take(ctx context.Context, cookies []*http.Cookie) error {
	if s.gateway == nil {
		return errUnavailable
	}
	if _, err := s.gateway.CreateSnapshot(ctx, cookies); err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	return nil
}

var errUnavailable = apperrors.E(apperrors.KindUnavailable, "history backend is not configured")
