package report

import (
	"fmt"
	"strings"

	"BalanceSentinel/internal/model"
)

// TableColumn selects the third column of the history table.
type TableColumn string

const (
	ColumnCumulative TableColumn = "cumulative"
	ColumnRemaining  TableColumn = "remaining"
)

const fetchedLayout = "2006-01-02 15:04:05"

// writeTable renders the full history most-recent-first. Amounts are rounded for display only.
func writeTable(b *strings.Builder, records []model.DayRecord, column TableColumn) {
	third := "Cumulative usage"
	if column == ColumnRemaining {
		third = "Remaining"
	}
	b.WriteString(fmt.Sprintf("|Date|Daily usage|%s|Fetched at|\n", third))
	b.WriteString("|---|---:|---:|---|\n")

	for i := len(records) - 1; i >= 0; i-- {
		r := records[i]
		daily := r.DailyConsumption.StringFixed(2)
		if r.IsRechargeDay {
			daily += " (recharge)"
		}
		value := r.CumulativeConsumption
		if column == ColumnRemaining {
			value = r.RemainingAmount
		}
		fetched := "-"
		if !r.FetchedAt.IsZero() {
			fetched = r.FetchedAt.Format(fetchedLayout)
		}
		b.WriteString(fmt.Sprintf("|%s|%s|%s|%s|\n",
			r.Date.Format(model.DateLayout), daily, value.StringFixed(2), fetched))
	}
}
