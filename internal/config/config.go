package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	DataSource struct {
		BaseURL       string `yaml:"base_url"`
		AppID         string `yaml:"app_id"`
		Authorization string `yaml:"authorization"`
	} `yaml:"data_source"`
	Timezone string `yaml:"timezone"`
	Storage  struct {
		HistoryFile string `yaml:"history_file"`
		ReportFile  string `yaml:"report_file"`
		ChartFile   string `yaml:"chart_file"`
		SQLitePath  string `yaml:"sqlite_path"`
	} `yaml:"storage"`
	Report struct {
		Title       string `yaml:"title"`
		Trend       string `yaml:"trend"`        // none, ascii, svg
		TableColumn string `yaml:"table_column"` // cumulative, remaining
		Currency    string `yaml:"currency"`
	} `yaml:"report"`
	Schedule struct {
		Cron       string `yaml:"cron"` // empty: run once and exit
		RunOnStart bool   `yaml:"run_on_start"`
	} `yaml:"schedule"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Metrics struct {
		Textfile string `yaml:"textfile"`
	} `yaml:"metrics"`
	Logging struct {
		Format string `yaml:"format"` // console, json
		Level  string `yaml:"level"`
	} `yaml:"logging"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides and defaults.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnv()
	cfg.ApplyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() {
	overrides := []struct {
		env    string
		target *string
	}{
		{"AUTHORIZATION", &c.DataSource.Authorization},
		{"APP_ID", &c.DataSource.AppID},
		{"ACEDATA_BASE_URL", &c.DataSource.BaseURL},
		{"TZ_NAME", &c.Timezone},
		{"HISTORY_FILE", &c.Storage.HistoryFile},
		{"REPORT_FILE", &c.Storage.ReportFile},
		{"CHART_FILE", &c.Storage.ChartFile},
		{"SQLITE_PATH", &c.Storage.SQLitePath},
		{"TREND_MODE", &c.Report.Trend},
		{"CRON_SCHEDULE", &c.Schedule.Cron},
		{"TELEGRAM_BOT_TOKEN", &c.Telegram.BotToken},
		{"TELEGRAM_CHAT_ID", &c.Telegram.ChatID},
		{"METRICS_TEXTFILE", &c.Metrics.Textfile},
		{"LOG_LEVEL", &c.Logging.Level},
		{"HTTPS_PROXY", &c.Proxy},
	}
	for _, o := range overrides {
		if v := os.Getenv(o.env); v != "" {
			*o.target = v
		}
	}
	if v := os.Getenv("RUN_ON_START"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Schedule.RunOnStart = b
		}
	}
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.DataSource.BaseURL == "" {
		c.DataSource.BaseURL = "https://platform.acedata.cloud"
	}
	if c.Timezone == "" {
		c.Timezone = "Local"
	}
	if c.Storage.HistoryFile == "" {
		c.Storage.HistoryFile = "balance_history.json"
	}
	if c.Storage.ReportFile == "" {
		c.Storage.ReportFile = "README.md"
	}
	if c.Storage.ChartFile == "" {
		c.Storage.ChartFile = "usage_trend.svg"
	}
	if c.Report.Title == "" {
		c.Report.Title = "AceData API Balance Monitor"
	}
	if c.Report.Trend == "" {
		c.Report.Trend = "ascii"
	}
	if c.Report.TableColumn == "" {
		c.Report.TableColumn = "cumulative"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

// Validate checks that all required fields are set and enumerations are known.
func (c *Config) Validate() error {
	if c.DataSource.Authorization == "" {
		return fmt.Errorf("data_source.authorization is required")
	}
	if c.DataSource.AppID == "" {
		return fmt.Errorf("data_source.app_id is required")
	}
	switch c.Report.Trend {
	case "none", "ascii", "svg":
	default:
		return fmt.Errorf(`report.trend must be "none", "ascii" or "svg", got %q`, c.Report.Trend)
	}
	switch c.Report.TableColumn {
	case "cumulative", "remaining":
	default:
		return fmt.Errorf(`report.table_column must be "cumulative" or "remaining", got %q`, c.Report.TableColumn)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf(`logging.format must be "console" or "json", got %q`, c.Logging.Format)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.Schedule.Cron != "" {
		if _, err := cron.ParseStandard(c.Schedule.Cron); err != nil {
			return fmt.Errorf("schedule.cron: %w", err)
		}
	}
	return nil
}

// Location resolves the configured timezone used to date snapshots.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
