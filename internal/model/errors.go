package model

import (
	"errors"
	"fmt"
)

// ErrMalformedHistory marks a snapshot history that cannot be turned into a ledger.
var ErrMalformedHistory = errors.New("malformed history")

// HistoryError reports which date (and field, if any) made the history malformed.
type HistoryError struct {
	Date  string
	Field string
	Err   error
}

func (e *HistoryError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("malformed history at %s (%s): %v", e.Date, e.Field, e.Err)
	}
	return fmt.Sprintf("malformed history at %s: %v", e.Date, e.Err)
}

func (e *HistoryError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrMalformedHistory) match any HistoryError.
func (e *HistoryError) Is(target error) bool { return target == ErrMalformedHistory }
