package config

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func validConfig() Config {
	return Config{
		TelegramToken:      "123:abc",
		UserSpreadsheets:   map[int64]string{123456789: "sheet-id"},
		WeeklySummaryDay:   time.Sunday,
		WeeklySummaryHour:  20,
		MonthlySummaryHour: 21,
		SchedulerInterval:  5 * time.Minute,
		CatalogTTL:         10 * time.Minute,
		InvestmentFXRate:   decimal.RequireFromString("7.80"),
		DataBackend:        "memory",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid memory config", mutate: func(c *Config) {}},
		{
			name:    "missing token",
			mutate:  func(c *Config) { c.TelegramToken = "" },
			wantErr: "TELEGRAM_BOT_TOKEN",
		},
		{
			name:    "no users",
			mutate:  func(c *Config) { c.UserSpreadsheets = nil },
			wantErr: "USER_SPREADSHEETS",
		},
		{
			name:    "sheets backend without credentials",
			mutate:  func(c *Config) { c.DataBackend = "sheets" },
			wantErr: "GOOGLE_SERVICE_ACCOUNT",
		},
		{
			name:    "unknown backend",
			mutate:  func(c *Config) { c.DataBackend = "postgres" },
			wantErr: "invalid data backend",
		},
		{
			name:    "bad AMQP scheme",
			mutate:  func(c *Config) { c.AMQPURL = "http://localhost" },
			wantErr: "invalid AMQP URL scheme",
		},
		{
			name:    "weekly hour out of range",
			mutate:  func(c *Config) { c.WeeklySummaryHour = 24 },
			wantErr: "weekly summary hour",
		},
		{
			name:    "non-positive fx rate",
			mutate:  func(c *Config) { c.InvestmentFXRate = decimal.Zero },
			wantErr: "FX rate",
		},
		{
			name:    "scheduler interval too small",
			mutate:  func(c *Config) { c.SchedulerInterval = time.Millisecond },
			wantErr: "scheduler interval",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestParseUserSpreadsheets(t *testing.T) {
	got := parseUserSpreadsheets(" 123:abc , 456:def ,bad,789:,x:y ")
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %v", got)
	}
	if got[123] != "abc" || got[456] != "def" {
		t.Fatalf("unexpected map: %v", got)
	}
}

func TestUserIDsSorted(t *testing.T) {
	cfg := Config{UserSpreadsheets: map[int64]string{30: "c", 10: "a", 20: "b"}}
	ids := cfg.UserIDs()
	if len(ids) != 3 || ids[0] != 10 || ids[1] != 20 || ids[2] != 30 {
		t.Fatalf("unexpected order: %v", ids)
	}
}
