package ledger

import (
	"testing"

	"BalanceSentinel/internal/model"
)

func TestWindow(t *testing.T) {
	records := make([]model.DayRecord, 20)
	tests := []struct {
		n    int
		want int
	}{
		{14, 14},
		{20, 20},
		{30, 20},
		{1, 1},
		{0, 0},
	}
	for _, tt := range tests {
		if got := len(Window(records, tt.n)); got != tt.want {
			t.Errorf("Window(20, %d): expected %d records, got %d", tt.n, tt.want, got)
		}
	}
}

func TestCurrentPeriod(t *testing.T) {
	records := []model.DayRecord{{}, {IsRechargeDay: true}, {}, {IsRechargeDay: true}, {}, {}}
	if got := len(CurrentPeriod(records)); got != 3 {
		t.Errorf("expected period of 3 records, got %d", got)
	}
	if got := len(CurrentPeriod(records[:1])); got != 1 {
		t.Errorf("expected whole ledger without recharge, got %d", got)
	}
	if got := len(CurrentPeriod(records[:4])); got != 1 {
		t.Errorf("expected only the recharge day, got %d", got)
	}
}
