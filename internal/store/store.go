package store

import (
	"encoding/json"
	"fmt"
	"os"

	"BalanceSentinel/internal/model"
)

// Load reads the snapshot history from a JSON file. Returns an empty history if the file doesn't exist.
// A record that cannot be decoded makes the whole history malformed.
func Load(filePath string) (model.History, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return model.History{}, nil
		}
		return nil, fmt.Errorf("read history: %w", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", model.ErrMalformedHistory, filePath, err)
	}

	history := make(model.History, len(raw))
	for date, msg := range raw {
		var snap model.Snapshot
		if err := json.Unmarshal(msg, &snap); err != nil {
			return nil, &model.HistoryError{Date: date, Err: err}
		}
		history[date] = snap
	}
	return history, nil
}

// Save writes the whole history back, pretty-printed, replacing the previous file atomically.
func Save(filePath string, history model.History) error {
	data, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}
	tmpPath := filePath + ".tmp"
	if err := os.WriteFile(tmpPath, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write temp history file: %w", err)
	}
	if err := os.Rename(tmpPath, filePath); err != nil {
		return fmt.Errorf("replace history file: %w", err)
	}
	return nil
}

// WriteFile replaces a generated artifact (report, chart) atomically.
func WriteFile(filePath string, data []byte) error {
	tmpPath := filePath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, filePath); err != nil {
		return fmt.Errorf("replace %s: %w", filePath, err)
	}
	return nil
}
