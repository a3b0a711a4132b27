package collector

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"BalanceSentinel/internal/model"
)

// MockFetcher returns a controllable fixed balance for development and testing.
type MockFetcher struct {
	Balance model.Balance
	Err     error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) Fetch(_ context.Context) (model.Balance, error) {
	if m.Err != nil {
		return model.Balance{}, m.Err
	}
	return m.Balance, nil
}

// Collector turns a fetched balance into the snapshot for today's date.
type Collector struct {
	Fetcher  Fetcher
	Location *time.Location
	Logger   *zap.Logger
}

// NewCollector creates a new Collector dating snapshots in loc.
func NewCollector(fetcher Fetcher, loc *time.Location, logger *zap.Logger) *Collector {
	if loc == nil {
		loc = time.Local
	}
	return &Collector{Fetcher: fetcher, Location: loc, Logger: logger}
}

// Collect fetches the balance and returns the date key and snapshot for it.
// The date is the calendar day of now in the collector's location.
func (c *Collector) Collect(ctx context.Context, now time.Time) (string, model.Snapshot, error) {
	bal, err := c.Fetcher.Fetch(ctx)
	if err != nil {
		return "", model.Snapshot{}, fmt.Errorf("%s: %w", c.Fetcher.Name(), err)
	}

	if !bal.RemainingAmount.Valid {
		c.Logger.Warn("balance response has no remaining_amount, it will count as 0")
	}
	if !bal.UsedAmount.Valid {
		c.Logger.Warn("balance response has no used_amount")
	}

	fetchedAt := bal.FetchedAt
	if fetchedAt.IsZero() {
		fetchedAt = now
	}
	date := now.In(c.Location).Format(model.DateLayout)
	return date, model.Snapshot{
		RemainingAmount: bal.RemainingAmount,
		UsedAmount:      bal.UsedAmount,
		FetchedAt:       fetchedAt.In(c.Location),
	}, nil
}
