package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"kharcha/internal/core"
	"kharcha/internal/schedule"
)

type Config struct {
	// Telegram
	TelegramToken string
	OwnerChatID   int64

	// Ledger backend selection
	LedgerBackend string

	// Google Sheets
	GoogleSpreadsheetID string
	GoogleSheetName     string

	// SQLite
	SQLiteDBPath string

	// AMQP (optional event mirroring)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Reports
	SummaryDays   int
	ReportDaily   string
	ReportWeekly  string
	ReportMonthly string

	// Budgets catalog, JSON array of {"category": ..., "limit": ...};
	// empty means the built-in catalog.
	BudgetsJSON string
}

func Load() *Config {
	return &Config{
		TelegramToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		OwnerChatID:   getEnvInt64("TELEGRAM_OWNER_CHAT_ID", 0),

		LedgerBackend: getEnv("LEDGER_BACKEND", "memory"),

		GoogleSpreadsheetID: getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleSheetName:     getEnv("GOOGLE_SHEET_NAME", "Transactions"),

		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/kharcha.db"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "kharcha"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "ledger_events"),

		SummaryDays:   getEnvInt("SUMMARY_DAYS", 7),
		ReportDaily:   getEnv("REPORT_DAILY", ""),
		ReportWeekly:  getEnv("REPORT_WEEKLY", ""),
		ReportMonthly: getEnv("REPORT_MONTHLY", ""),

		BudgetsJSON: getEnv("BUDGETS_JSON", ""),
	}
}

// Validate checks the configuration and reports every problem at once.
func (c *Config) Validate() error {
	var errors []string

	if c.TelegramToken == "" {
		errors = append(errors, "TELEGRAM_BOT_TOKEN is required")
	}
	if c.OwnerChatID == 0 {
		errors = append(errors, "TELEGRAM_OWNER_CHAT_ID is required")
	}

	validBackends := []string{"memory", "sheets", "sqlite"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.LedgerBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid ledger backend '%s': must be one of %v", c.LedgerBackend, validBackends))
	}

	if c.LedgerBackend == "sheets" && c.GoogleSpreadsheetID == "" {
		errors = append(errors, "GOOGLE_SPREADSHEET_ID is required when using sheets backend")
	}
	if c.LedgerBackend == "sqlite" && c.SQLiteDBPath == "" {
		errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if c.SummaryDays < 1 {
		errors = append(errors, fmt.Sprintf("invalid summary window %d: must be at least 1 day", c.SummaryDays))
	}

	for _, s := range []struct {
		every schedule.Frequency
		value string
	}{
		{schedule.Daily, c.ReportDaily},
		{schedule.Weekly, c.ReportWeekly},
		{schedule.Monthly, c.ReportMonthly},
	} {
		if s.value == "" {
			continue
		}
		if _, err := schedule.Parse(s.every, s.value); err != nil {
			errors = append(errors, err.Error())
		}
	}

	if _, err := c.Catalog(); err != nil {
		errors = append(errors, err.Error())
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}

// Schedules returns the configured report specs, in daily/weekly/monthly
// order, skipping the ones left empty. Call Validate first.
func (c *Config) Schedules() []schedule.Spec {
	var out []schedule.Spec
	for _, s := range []struct {
		every schedule.Frequency
		value string
	}{
		{schedule.Daily, c.ReportDaily},
		{schedule.Weekly, c.ReportWeekly},
		{schedule.Monthly, c.ReportMonthly},
	} {
		if s.value == "" {
			continue
		}
		spec, err := schedule.Parse(s.every, s.value)
		if err != nil {
			continue
		}
		out = append(out, spec)
	}
	return out
}

type budgetEntry struct {
	Category string      `json:"category"`
	Limit    json.Number `json:"limit"`
}

// Catalog builds the budget catalog from BUDGETS_JSON, falling back to the
// built-in one. The JSON form is an array so that catalog order survives.
func (c *Config) Catalog() (core.Catalog, error) {
	if strings.TrimSpace(c.BudgetsJSON) == "" {
		return core.DefaultCatalog(), nil
	}
	var entries []budgetEntry
	if err := json.Unmarshal([]byte(c.BudgetsJSON), &entries); err != nil {
		return nil, fmt.Errorf("invalid BUDGETS_JSON: %v", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("invalid BUDGETS_JSON: catalog cannot be empty")
	}
	out := make(core.Catalog, 0, len(entries))
	for _, e := range entries {
		if strings.TrimSpace(e.Category) == "" {
			return nil, fmt.Errorf("invalid BUDGETS_JSON: entry with empty category")
		}
		limit, err := decimal.NewFromString(e.Limit.String())
		if err != nil || limit.IsNegative() {
			return nil, fmt.Errorf("invalid BUDGETS_JSON: bad limit for %q", e.Category)
		}
		out = append(out, core.CategoryBudget{Category: e.Category, MonthlyLimit: limit})
	}
	return out, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.ParseInt(value, 10, 64); err == nil {
			return i
		}
	}
	return defaultValue
}
