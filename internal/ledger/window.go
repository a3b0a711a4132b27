package ledger

import "BalanceSentinel/internal/model"

// Window returns the most recent n records, or all of them when the ledger is shorter.
func Window(records []model.DayRecord, n int) []model.DayRecord {
	if n <= 0 {
		return nil
	}
	start := len(records) - n
	if start < 0 {
		start = 0
	}
	return records[start:]
}

// CurrentPeriod returns the spending period: the records from the most recent recharge day
// (inclusive) through the latest record. Without a recharge it is the whole ledger.
func CurrentPeriod(records []model.DayRecord) []model.DayRecord {
	for i := len(records) - 1; i >= 0; i-- {
		if records[i].IsRechargeDay {
			return records[i:]
		}
	}
	return records
}
