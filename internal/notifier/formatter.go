package notifier

import (
	"fmt"
	"html"
	"strings"

	"BalanceSentinel/internal/model"
)

// FormatSummary formats the run statistics into a Telegram message.
func FormatSummary(title string, st model.Stats, currency string) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("💰 <b>%s</b> | %s\n\n", html.EscapeString(title), st.LatestDate.Format(model.DateLayout)))
	b.WriteString(fmt.Sprintf("Remaining: %s\n", money(st.LatestRemaining.StringFixed(2), currency)))
	b.WriteString(fmt.Sprintf("Usage since %s: %s (%d days)\n",
		st.PeriodStart.Format(model.DateLayout), money(st.TotalConsumption.StringFixed(2), currency), st.ValidDays))
	b.WriteString(fmt.Sprintf("Daily average: %s\n", money(st.AverageDailyConsumption.StringFixed(2), currency)))
	if st.EstimatedDaysRemaining.IsZero() {
		b.WriteString("Days remaining: n/a\n")
	} else {
		b.WriteString(fmt.Sprintf("Days remaining: ~%s\n", st.EstimatedDaysRemaining.StringFixed(1)))
	}
	return b.String()
}

// FormatFetchFailure formats a failed balance fetch.
func FormatFetchFailure(err error) string {
	return fmt.Sprintf("❌ <b>Balance fetch failed</b>\n\n%s", html.EscapeString(err.Error()))
}

// FormatHelp lists the supported commands.
func FormatHelp() string {
	return "Commands:\n• /balance: latest balance summary\n• /refresh: fetch now and rebuild the report"
}

func money(v, currency string) string {
	if currency == "" {
		return v
	}
	return v + " " + currency
}
