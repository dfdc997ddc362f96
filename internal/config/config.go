package config

import (
	"fmt"
	"net/url"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Config struct {
	// Telegram
	TelegramToken string

	// Static mapping of allowed Telegram user ID -> spreadsheet ID. Users
	// outside this map are ignored entirely.
	UserSpreadsheets map[int64]string

	// Google Sheets credentials (one of the two)
	GoogleServiceAccountJSON string
	GoogleServiceAccountFile string

	// AMQP (optional; summaries run inline when unset)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Scheduler
	WeeklySummaryDay   time.Weekday
	WeeklySummaryHour  int
	MonthlySummaryHour int
	SchedulerInterval  time.Duration

	// Catalogs
	CatalogTTL time.Duration

	// Fixed conversion rate applied to investment accounts (home currency
	// per investment currency unit).
	InvestmentFXRate decimal.Decimal

	// Backend selection: "sheets" or "memory"
	DataBackend string
}

func Load() *Config {
	cfg := &Config{
		TelegramToken: getEnv("TELEGRAM_BOT_TOKEN", ""),

		UserSpreadsheets: parseUserSpreadsheets(getEnv("USER_SPREADSHEETS", "")),

		GoogleServiceAccountJSON: getEnv("GOOGLE_SERVICE_ACCOUNT_JSON", ""),
		GoogleServiceAccountFile: getEnv("GOOGLE_SERVICE_ACCOUNT_FILE", ""),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "finanzas"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "resumen_jobs"),

		WeeklySummaryDay:   time.Weekday(getEnvInt("WEEKLY_SUMMARY_DAY", int(time.Sunday))),
		WeeklySummaryHour:  getEnvInt("WEEKLY_SUMMARY_HOUR", 20),
		MonthlySummaryHour: getEnvInt("MONTHLY_SUMMARY_HOUR", 21),
		SchedulerInterval:  getEnvDuration("SCHEDULER_INTERVAL", 5*time.Minute),

		CatalogTTL: getEnvDuration("CATALOG_TTL", 10*time.Minute),

		InvestmentFXRate: getEnvDecimal("INVESTMENT_FX_RATE", decimal.RequireFromString("7.80")),

		DataBackend: getEnv("DATA_BACKEND", "memory"),
	}
	return cfg
}

// Validate checks the configuration and returns the combined list of
// problems, if any.
func (c *Config) Validate() error {
	var errs []string

	if c.TelegramToken == "" {
		errs = append(errs, "TELEGRAM_BOT_TOKEN is required")
	}
	if len(c.UserSpreadsheets) == 0 {
		errs = append(errs, "USER_SPREADSHEETS must map at least one user (format: userID:spreadsheetID,...)")
	}

	switch c.DataBackend {
	case "memory":
	case "sheets":
		if c.GoogleServiceAccountJSON == "" && c.GoogleServiceAccountFile == "" {
			errs = append(errs, "either GOOGLE_SERVICE_ACCOUNT_JSON or GOOGLE_SERVICE_ACCOUNT_FILE is required for the sheets backend")
		}
		if c.GoogleServiceAccountFile != "" {
			if _, err := os.Stat(c.GoogleServiceAccountFile); os.IsNotExist(err) {
				errs = append(errs, fmt.Sprintf("service account file does not exist: %s", c.GoogleServiceAccountFile))
			}
		}
	default:
		errs = append(errs, fmt.Sprintf("invalid data backend '%s': must be 'sheets' or 'memory'", c.DataBackend))
	}

	if c.AMQPURL != "" {
		if parsed, err := url.Parse(c.AMQPURL); err != nil {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsed.Scheme != "amqp" && parsed.Scheme != "amqps" {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsed.Scheme))
		}
		if c.AMQPExchange == "" {
			errs = append(errs, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errs = append(errs, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if c.WeeklySummaryDay < time.Sunday || c.WeeklySummaryDay > time.Saturday {
		errs = append(errs, fmt.Sprintf("invalid weekly summary day %d: must be 0 (Sunday) through 6 (Saturday)", c.WeeklySummaryDay))
	}
	if c.WeeklySummaryHour < 0 || c.WeeklySummaryHour > 23 {
		errs = append(errs, fmt.Sprintf("invalid weekly summary hour %d", c.WeeklySummaryHour))
	}
	if c.MonthlySummaryHour < 0 || c.MonthlySummaryHour > 23 {
		errs = append(errs, fmt.Sprintf("invalid monthly summary hour %d", c.MonthlySummaryHour))
	}
	if c.SchedulerInterval < time.Second || c.SchedulerInterval > 24*time.Hour {
		errs = append(errs, fmt.Sprintf("invalid scheduler interval %v: must be between 1s and 24h", c.SchedulerInterval))
	}
	if c.CatalogTTL < time.Second {
		errs = append(errs, fmt.Sprintf("invalid catalog TTL %v: must be at least 1 second", c.CatalogTTL))
	}
	if !c.InvestmentFXRate.IsPositive() {
		errs = append(errs, fmt.Sprintf("invalid investment FX rate %s: must be positive", c.InvestmentFXRate))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

// SpreadsheetFor returns the spreadsheet configured for a user, with ok
// false when the user is unknown.
func (c *Config) SpreadsheetFor(userID int64) (string, bool) {
	id, ok := c.UserSpreadsheets[userID]
	return id, ok
}

// UserIDs returns the configured users in stable ascending order.
func (c *Config) UserIDs() []int64 {
	ids := make([]int64, 0, len(c.UserSpreadsheets))
	for id := range c.UserSpreadsheets {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func parseUserSpreadsheets(raw string) map[int64]string {
	out := map[int64]string{}
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		parts := strings.SplitN(pair, ":", 2)
		if len(parts) != 2 {
			continue
		}
		id, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
		if err != nil {
			continue
		}
		sheet := strings.TrimSpace(parts[1])
		if sheet == "" {
			continue
		}
		out[id] = sheet
	}
	return out
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

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvDecimal(key string, defaultValue decimal.Decimal) decimal.Decimal {
	if value := os.Getenv(key); value != "" {
		if d, err := decimal.NewFromString(value); err == nil {
			return d
		}
	}
	return defaultValue
}
