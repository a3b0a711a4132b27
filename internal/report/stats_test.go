package report

import (
	"testing"

	"BalanceSentinel/internal/model"
)

func TestSummarize_RechargeExample(t *testing.T) {
	records := buildLedger(t, map[string]string{
		"2024-01-01": "100",
		"2024-01-02": "80",
		"2024-01-03": "120",
	})
	st := Summarize(records)
	if !st.TotalConsumption.IsZero() {
		t.Errorf("expected total 0 after recharge, got %s", st.TotalConsumption)
	}
	if st.ValidDays != 1 {
		t.Errorf("expected 1 valid day, got %d", st.ValidDays)
	}
	if !st.EstimatedDaysRemaining.IsZero() {
		t.Errorf("expected 0 days remaining when average is 0, got %s", st.EstimatedDaysRemaining)
	}
	if got := st.PeriodStart.Format(model.DateLayout); got != "2024-01-03" {
		t.Errorf("expected period to start on the recharge day, got %s", got)
	}
}

func TestSummarize_SpendingPeriod(t *testing.T) {
	records := dailyLedger(t, "100", "90", "200", "190", "170", "160")
	st := Summarize(records)

	// period: recharge day (0) + 10 + 20 + 10
	if got := st.TotalConsumption.String(); got != "40" {
		t.Errorf("expected total 40, got %s", got)
	}
	if st.ValidDays != 4 {
		t.Errorf("expected 4 valid days, got %d", st.ValidDays)
	}
	if got := st.AverageDailyConsumption.String(); got != "10" {
		t.Errorf("expected average 10, got %s", got)
	}
	if got := st.EstimatedDaysRemaining.String(); got != "16" {
		t.Errorf("expected 16 days remaining, got %s", got)
	}
	if got := st.LatestRemaining.String(); got != "160" {
		t.Errorf("expected latest remaining 160, got %s", got)
	}
}

func TestSummarize_SingleRecord(t *testing.T) {
	st := Summarize(dailyLedger(t, "42"))
	if st.ValidDays != 1 {
		t.Fatalf("expected 1 valid day, got %d", st.ValidDays)
	}
	if !st.AverageDailyConsumption.IsZero() {
		t.Errorf("expected average 0, got %s", st.AverageDailyConsumption)
	}
	if !st.EstimatedDaysRemaining.IsZero() {
		t.Errorf("expected estimate 0, got %s", st.EstimatedDaysRemaining)
	}
}

func TestSummarize_Empty(t *testing.T) {
	st := Summarize(nil)
	if st.ValidDays != 0 || !st.TotalConsumption.IsZero() || !st.AverageDailyConsumption.IsZero() {
		t.Errorf("expected zero stats, got %+v", st)
	}
}
