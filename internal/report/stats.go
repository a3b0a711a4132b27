package report

import (
	"github.com/shopspring/decimal"

	"BalanceSentinel/internal/ledger"
	"BalanceSentinel/internal/model"
)

// Summarize computes the statistics of the current spending period, i.e. the records from the
// latest recharge day through the most recent record. Averages and estimates fall back to 0
// instead of dividing by zero.
func Summarize(records []model.DayRecord) model.Stats {
	st := model.Stats{
		TotalConsumption:        decimal.Zero,
		AverageDailyConsumption: decimal.Zero,
		EstimatedDaysRemaining:  decimal.Zero,
		LatestRemaining:         decimal.Zero,
	}
	if len(records) == 0 {
		return st
	}

	latest := records[len(records)-1]
	st.LatestDate = latest.Date
	st.LatestRemaining = latest.RemainingAmount

	period := ledger.CurrentPeriod(records)
	st.PeriodStart = period[0].Date
	for _, r := range period {
		st.TotalConsumption = st.TotalConsumption.Add(r.DailyConsumption)
	}
	st.ValidDays = len(period)

	st.AverageDailyConsumption = st.TotalConsumption.Div(decimal.NewFromInt(int64(st.ValidDays)))
	if !st.AverageDailyConsumption.IsZero() {
		st.EstimatedDaysRemaining = st.LatestRemaining.Div(st.AverageDailyConsumption)
	}
	return st
}
