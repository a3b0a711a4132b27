package ledger

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"BalanceSentinel/internal/model"
)

// ParseDate parses a snapshot store key into a calendar date at midnight UTC.
func ParseDate(key string) (time.Time, error) {
	t, err := time.Parse(model.KeyLayout, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", key, err)
	}
	return t, nil
}

type datedSnapshot struct {
	key  string
	date time.Time
	snap model.Snapshot
}

// Build derives the per-day usage ledger from a snapshot history, ordered by calendar date.
//
// The first record's consumption is its cumulative used_amount (0 when missing). Every later record
// consumes the drop in remaining balance since the previous observation; any increase marks a recharge
// day with zero consumption and resets the cumulative total. A missing remaining_amount counts as 0.
// The history is not modified and the result is freshly allocated on every call.
func Build(history model.History) ([]model.DayRecord, error) {
	entries, err := sortedEntries(history)
	if err != nil {
		return nil, err
	}

	records := make([]model.DayRecord, len(entries))
	cumulative := decimal.Zero
	prevRemaining := decimal.Zero

	for i, e := range entries {
		rec := model.DayRecord{Date: e.date, FetchedAt: e.snap.FetchedAt}

		remaining := decimal.Zero
		if e.snap.RemainingAmount.Valid {
			remaining = e.snap.RemainingAmount.Decimal
		} else {
			rec.Missing = append(rec.Missing, model.FieldRemainingAmount)
		}
		if !e.snap.UsedAmount.Valid {
			rec.Missing = append(rec.Missing, model.FieldUsedAmount)
		}
		rec.RemainingAmount = remaining

		switch {
		case i == 0:
			rec.DailyConsumption = decimal.Zero
			if e.snap.UsedAmount.Valid {
				rec.DailyConsumption = e.snap.UsedAmount.Decimal
			}
		case remaining.GreaterThan(prevRemaining):
			rec.IsRechargeDay = true
			rec.DailyConsumption = decimal.Zero
		default:
			rec.DailyConsumption = prevRemaining.Sub(remaining)
		}

		if rec.IsRechargeDay {
			cumulative = decimal.Zero
		} else {
			cumulative = cumulative.Add(rec.DailyConsumption)
		}
		rec.CumulativeConsumption = cumulative

		records[i] = rec
		prevRemaining = remaining
	}
	return records, nil
}

func sortedEntries(history model.History) ([]datedSnapshot, error) {
	entries := make([]datedSnapshot, 0, len(history))
	seen := make(map[time.Time]string, len(history))

	for key, snap := range history {
		date, err := ParseDate(key)
		if err != nil {
			return nil, &model.HistoryError{Date: key, Err: err}
		}
		if other, ok := seen[date]; ok {
			return nil, &model.HistoryError{Date: key, Err: fmt.Errorf("same calendar date as %q", other)}
		}
		seen[date] = key
		if err := checkAmount(snap.RemainingAmount); err != nil {
			return nil, &model.HistoryError{Date: key, Field: model.FieldRemainingAmount, Err: err}
		}
		if err := checkAmount(snap.UsedAmount); err != nil {
			return nil, &model.HistoryError{Date: key, Field: model.FieldUsedAmount, Err: err}
		}
		entries = append(entries, datedSnapshot{key: key, date: date, snap: snap})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].date.Before(entries[j].date) })
	return entries, nil
}

var errNegativeAmount = errors.New("amount must not be negative")

func checkAmount(v decimal.NullDecimal) error {
	if v.Valid && v.Decimal.IsNegative() {
		return errNegativeAmount
	}
	return nil
}
