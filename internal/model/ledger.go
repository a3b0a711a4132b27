package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Field names used when a snapshot value had to be defaulted.
const (
	FieldRemainingAmount = "remaining_amount"
	FieldUsedAmount      = "used_amount"
)

// DayRecord is the usage derived for one snapshot date.
type DayRecord struct {
	Date                  time.Time
	RemainingAmount       decimal.Decimal
	DailyConsumption      decimal.Decimal
	CumulativeConsumption decimal.Decimal
	IsRechargeDay         bool
	FetchedAt             time.Time
	Missing               []string // defaulted fields, see Field* constants
}

// Stats summarizes the current spending period.
type Stats struct {
	PeriodStart             time.Time
	LatestDate              time.Time
	LatestRemaining         decimal.Decimal
	TotalConsumption        decimal.Decimal
	ValidDays               int
	AverageDailyConsumption decimal.Decimal
	EstimatedDaysRemaining  decimal.Decimal
}
