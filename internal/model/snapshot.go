package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// DateLayout is the key format written to the snapshot store.
	DateLayout = "2006-01-02"
	// KeyLayout parses stored keys; month and day may be unpadded.
	KeyLayout = "2006-1-2"
	// legacyTimestampLayout is the local-time "timestamp" field of older history files.
	legacyTimestampLayout = "2006-01-02 15:04:05"
)

// Balance is a single observation returned by the remote account API.
type Balance struct {
	RemainingAmount decimal.NullDecimal
	UsedAmount      decimal.NullDecimal
	FetchedAt       time.Time
}

// Snapshot is the stored observation for one calendar date.
// A field with Valid=false was missing at fetch time.
type Snapshot struct {
	RemainingAmount decimal.NullDecimal `json:"remaining_amount"`
	UsedAmount      decimal.NullDecimal `json:"used_amount"`
	FetchedAt       time.Time           `json:"fetched_at"`
}

// UnmarshalJSON decodes a snapshot, taking the fetch time from the legacy "timestamp"
// field when "fetched_at" is absent.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	type plain Snapshot
	var aux struct {
		plain
		Timestamp string `json:"timestamp"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*s = Snapshot(aux.plain)
	if s.FetchedAt.IsZero() && aux.Timestamp != "" {
		ts, err := time.ParseInLocation(legacyTimestampLayout, aux.Timestamp, time.Local)
		if err != nil {
			return fmt.Errorf("parse timestamp %q: %w", aux.Timestamp, err)
		}
		s.FetchedAt = ts
	}
	return nil
}

// History maps a date key (YYYY-MM-DD) to its snapshot. At most one snapshot per date.
type History map[string]Snapshot

// Upsert stores the snapshot under its padded date key, replacing an earlier fetch of the
// same day even when that one was stored under an unpadded key.
func (h History) Upsert(date string, s Snapshot) {
	if day, err := time.Parse(KeyLayout, date); err == nil {
		for key := range h {
			if other, err := time.Parse(KeyLayout, key); err == nil && other.Equal(day) {
				delete(h, key)
			}
		}
		date = day.Format(DateLayout)
	}
	h[date] = s
}
