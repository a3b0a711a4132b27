package ledger

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"BalanceSentinel/internal/model"
)

func amount(v string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(v))
}

func snap(remaining, used string) model.Snapshot {
	s := model.Snapshot{FetchedAt: time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)}
	if remaining != "" {
		s.RemainingAmount = amount(remaining)
	}
	if used != "" {
		s.UsedAmount = amount(used)
	}
	return s
}

func mustBuild(t *testing.T, h model.History) []model.DayRecord {
	t.Helper()
	records, err := Build(h)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return records
}

func assertDecimal(t *testing.T, what string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(decimal.RequireFromString(want)) {
		t.Errorf("%s: expected %s, got %s", what, want, got)
	}
}

func TestBuild_RechargeExample(t *testing.T) {
	records := mustBuild(t, model.History{
		"2024-01-03": snap("120", ""),
		"2024-01-01": snap("100", "0"),
		"2024-01-02": snap("80", ""),
	})
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}

	wantDates := []string{"2024-01-01", "2024-01-02", "2024-01-03"}
	for i, want := range wantDates {
		if got := records[i].Date.Format(model.DateLayout); got != want {
			t.Errorf("record %d: expected date %s, got %s", i, want, got)
		}
	}

	assertDecimal(t, "day1 consumption", records[0].DailyConsumption, "0")
	if records[0].IsRechargeDay {
		t.Error("first record must never be a recharge day")
	}
	assertDecimal(t, "day2 consumption", records[1].DailyConsumption, "20")
	assertDecimal(t, "day2 cumulative", records[1].CumulativeConsumption, "20")
	if !records[2].IsRechargeDay {
		t.Error("day3 should be a recharge day")
	}
	assertDecimal(t, "day3 consumption", records[2].DailyConsumption, "0")
	assertDecimal(t, "day3 cumulative", records[2].CumulativeConsumption, "0")
}

func TestBuild_EqualBalancesIsNoSpend(t *testing.T) {
	records := mustBuild(t, model.History{
		"2024-01-01": snap("50", ""),
		"2024-01-02": snap("50", ""),
	})
	assertDecimal(t, "day2 consumption", records[1].DailyConsumption, "0")
	if records[1].IsRechargeDay {
		t.Error("equal balances must not be a recharge")
	}
}

func TestBuild_FirstDayUsesCumulativeUsed(t *testing.T) {
	records := mustBuild(t, model.History{
		"2024-03-01": snap("70.5", "29.5"),
		"2024-03-02": snap("60", "40"),
	})
	assertDecimal(t, "day1 consumption", records[0].DailyConsumption, "29.5")
	assertDecimal(t, "day1 cumulative", records[0].CumulativeConsumption, "29.5")
	assertDecimal(t, "day2 consumption", records[1].DailyConsumption, "10.5")
	assertDecimal(t, "day2 cumulative", records[1].CumulativeConsumption, "40")
}

func TestBuild_GapIsSinceLastObservation(t *testing.T) {
	records := mustBuild(t, model.History{
		"2024-01-01": snap("100", ""),
		"2024-01-10": snap("40", ""),
	})
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	assertDecimal(t, "gap consumption", records[1].DailyConsumption, "60")
}

func TestBuild_NonPaddedKeysSortByCalendar(t *testing.T) {
	records := mustBuild(t, model.History{
		"2024-1-10": snap("10", ""),
		"2024-1-9":  snap("20", ""),
		"2024-01-2": snap("30", ""),
	})
	want := []string{"2024-01-02", "2024-01-09", "2024-01-10"}
	for i, w := range want {
		if got := records[i].Date.Format(model.DateLayout); got != w {
			t.Errorf("record %d: expected %s, got %s", i, w, got)
		}
	}
}

func TestBuild_MissingRemainingDefaultsToZero(t *testing.T) {
	records := mustBuild(t, model.History{
		"2024-01-01": snap("100", "0"),
		"2024-01-02": snap("", ""),
		"2024-01-03": snap("90", ""),
	})
	if len(records[1].Missing) != 2 {
		t.Fatalf("expected both fields reported missing, got %v", records[1].Missing)
	}
	if records[1].Missing[0] != model.FieldRemainingAmount {
		t.Errorf("expected %q first, got %q", model.FieldRemainingAmount, records[1].Missing[0])
	}
	assertDecimal(t, "missing day consumption", records[1].DailyConsumption, "100")
	if !records[2].IsRechargeDay {
		t.Error("balance reappearing after a missing field reads as a recharge")
	}
}

func TestBuild_MalformedDate(t *testing.T) {
	for _, key := range []string{"2024-02-30", "yesterday", "24-01-01", ""} {
		_, err := Build(model.History{
			"2024-01-01": snap("1", ""),
			key:          snap("2", ""),
		})
		if !errors.Is(err, model.ErrMalformedHistory) {
			t.Errorf("key %q: expected ErrMalformedHistory, got %v", key, err)
			continue
		}
		var he *model.HistoryError
		if !errors.As(err, &he) || he.Date != key {
			t.Errorf("key %q: expected HistoryError naming the date, got %v", key, err)
		}
	}
}

func TestBuild_DuplicateCalendarDate(t *testing.T) {
	_, err := Build(model.History{
		"2024-01-05": snap("1", ""),
		"2024-1-5":   snap("2", ""),
	})
	if !errors.Is(err, model.ErrMalformedHistory) {
		t.Fatalf("expected ErrMalformedHistory, got %v", err)
	}
}

func TestBuild_NegativeAmount(t *testing.T) {
	_, err := Build(model.History{"2024-01-05": snap("-1", "")})
	var he *model.HistoryError
	if !errors.As(err, &he) {
		t.Fatalf("expected HistoryError, got %v", err)
	}
	if he.Field != model.FieldRemainingAmount {
		t.Errorf("expected field %q, got %q", model.FieldRemainingAmount, he.Field)
	}
}

func TestBuild_Empty(t *testing.T) {
	records := mustBuild(t, model.History{})
	if len(records) != 0 {
		t.Errorf("expected no records, got %d", len(records))
	}
}

// randomHistory produces a daily series that mostly spends and occasionally recharges.
func randomHistory(r *rand.Rand, days int) model.History {
	h := model.History{}
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	remaining := decimal.NewFromInt(500)
	for i := 0; i < days; i++ {
		if r.Intn(6) == 0 {
			remaining = remaining.Add(decimal.NewFromInt(int64(r.Intn(300) + 1)))
		} else {
			spend := decimal.New(int64(r.Intn(5000)), -2)
			if spend.GreaterThan(remaining) {
				spend = remaining
			}
			remaining = remaining.Sub(spend)
		}
		// skip some days to create gaps
		if r.Intn(5) == 0 {
			continue
		}
		h[start.AddDate(0, 0, i).Format(model.DateLayout)] = model.Snapshot{
			RemainingAmount: decimal.NewNullDecimal(remaining),
			UsedAmount:      decimal.NewNullDecimal(decimal.NewFromInt(int64(i))),
		}
	}
	return h
}

func TestBuild_Properties(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for run := 0; run < 50; run++ {
		h := randomHistory(r, 40)
		records := mustBuild(t, h)

		for i := 1; i < len(records); i++ {
			prev, cur := records[i-1], records[i]
			if cur.DailyConsumption.IsNegative() {
				t.Fatalf("run %d: negative consumption at %s", run, cur.Date.Format(model.DateLayout))
			}
			if cur.RemainingAmount.GreaterThan(prev.RemainingAmount) {
				if !cur.IsRechargeDay || !cur.DailyConsumption.IsZero() {
					t.Fatalf("run %d: increase at %s not flagged as recharge", run, cur.Date.Format(model.DateLayout))
				}
				if !cur.CumulativeConsumption.Equal(cur.DailyConsumption) {
					t.Fatalf("run %d: cumulative did not reset at %s", run, cur.Date.Format(model.DateLayout))
				}
				continue
			}
			if cur.CumulativeConsumption.LessThan(prev.CumulativeConsumption) {
				t.Fatalf("run %d: cumulative decreased within a period at %s", run, cur.Date.Format(model.DateLayout))
			}
		}

		// Between consecutive recharges the consumption sums to the balance drop.
		anchor := 0
		sum := decimal.Zero
		for i := 1; i < len(records); i++ {
			if records[i].IsRechargeDay {
				anchor, sum = i, decimal.Zero
				continue
			}
			sum = sum.Add(records[i].DailyConsumption)
			drop := records[anchor].RemainingAmount.Sub(records[i].RemainingAmount)
			if sum.Sub(drop).Abs().GreaterThan(decimal.New(1, -9)) {
				t.Fatalf("run %d: consumption %s != drop %s at %s", run, sum, drop, records[i].Date.Format(model.DateLayout))
			}
		}
	}
}

func TestBuild_Idempotent(t *testing.T) {
	h := randomHistory(rand.New(rand.NewSource(7)), 30)
	first := mustBuild(t, h)
	second := mustBuild(t, h)
	if len(first) != len(second) {
		t.Fatalf("length differs: %d vs %d", len(first), len(second))
	}
	for i := range first {
		a, b := first[i], second[i]
		got := fmt.Sprintf("%s %s %s %s %v", a.Date, a.RemainingAmount, a.DailyConsumption, a.CumulativeConsumption, a.IsRechargeDay)
		want := fmt.Sprintf("%s %s %s %s %v", b.Date, b.RemainingAmount, b.DailyConsumption, b.CumulativeConsumption, b.IsRechargeDay)
		if got != want {
			t.Errorf("record %d differs: %q vs %q", i, got, want)
		}
	}
}
