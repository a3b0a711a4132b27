package report

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"BalanceSentinel/internal/ledger"
	"BalanceSentinel/internal/model"
)

// buildLedger turns date -> remaining pairs into a ledger. The first date reports used=0.
func buildLedger(t *testing.T, remaining map[string]string) []model.DayRecord {
	t.Helper()
	h := model.History{}
	for date, v := range remaining {
		h[date] = model.Snapshot{
			RemainingAmount: decimal.NewNullDecimal(decimal.RequireFromString(v)),
			UsedAmount:      decimal.NewNullDecimal(decimal.Zero),
			FetchedAt:       time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC),
		}
	}
	records, err := ledger.Build(h)
	if err != nil {
		t.Fatalf("build ledger: %v", err)
	}
	return records
}

func dailyLedger(t *testing.T, values ...string) []model.DayRecord {
	t.Helper()
	m := map[string]string{}
	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	for i, v := range values {
		m[start.AddDate(0, 0, i).Format(model.DateLayout)] = v
	}
	return buildLedger(t, m)
}
