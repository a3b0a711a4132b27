package collector

import (
	"context"

	"BalanceSentinel/internal/model"
)

// Fetcher defines the interface for fetching the account balance.
type Fetcher interface {
	Fetch(ctx context.Context) (model.Balance, error)
	Name() string
}
