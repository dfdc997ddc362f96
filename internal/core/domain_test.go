package core

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestIncomeValidate(t *testing.T) {
	valid := Income{
		Date:     NewDate(2026, 8, 28),
		Source:   "Trabajo",
		Category: "Salario",
		Amount:   dec("500"),
		Method:   "Efectivo",
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid income rejected: %v", err)
	}

	noBank := valid
	noBank.Method = MethodTransfer
	if err := noBank.Validate(); !errors.Is(err, ErrEmptyField) {
		t.Fatalf("transfer method without bank: got %v", err)
	}

	zero := valid
	zero.Amount = decimal.Zero
	if err := zero.Validate(); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("zero amount: got %v", err)
	}
}

func TestTransferValidate(t *testing.T) {
	valid := Transfer{
		Date:      NewDate(2026, 8, 28),
		From:      "Bi",
		To:        "Banrural",
		AmountOut: dec("100"),
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid transfer rejected: %v", err)
	}

	same := valid
	same.To = same.From
	if err := same.Validate(); !errors.Is(err, ErrSameAccount) {
		t.Fatalf("same-account transfer: got %v", err)
	}
}

func TestTransferCredited(t *testing.T) {
	tr := Transfer{AmountOut: dec("100")}
	if !tr.Credited().Equal(dec("100")) {
		t.Fatalf("zero AmountIn must mirror AmountOut, got %s", tr.Credited())
	}
	tr.AmountIn = dec("99.50")
	if !tr.Credited().Equal(dec("99.50")) {
		t.Fatalf("explicit AmountIn ignored, got %s", tr.Credited())
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-01-30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.String() != "2026-01-30" {
		t.Fatalf("round trip mismatch: %s", d)
	}

	for _, bad := range []string{"30-01-2026", "2026-13-01", "2026-02-30", "hoy"} {
		if _, err := ParseDate(bad); !errors.Is(err, ErrInvalidDate) {
			t.Fatalf("%q: expected ErrInvalidDate, got %v", bad, err)
		}
	}
}

func TestISOWeekBounds(t *testing.T) {
	// 2026-08-28 is a Friday.
	p := ISOWeek(time.Date(2026, 8, 28, 15, 0, 0, 0, time.UTC))
	if p.Start.String() != "2026-08-24" || p.End.String() != "2026-08-30" {
		t.Fatalf("unexpected week bounds: %s .. %s", p.Start, p.End)
	}
	// Sunday stays in the same week.
	p = ISOWeek(time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC))
	if p.Start.String() != "2026-08-24" {
		t.Fatalf("sunday rolled into next week: %s", p.Start)
	}
	if !p.Contains(NewDate(2026, 8, 24)) || !p.Contains(NewDate(2026, 8, 30)) {
		t.Fatal("period bounds must be inclusive")
	}
	if p.Contains(NewDate(2026, 8, 31)) {
		t.Fatal("period must exclude the following monday")
	}
}

func TestMonthToDate(t *testing.T) {
	p := MonthToDate(time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC))
	if p.Start.String() != "2026-08-01" || p.End.String() != "2026-08-28" {
		t.Fatalf("unexpected month-to-date bounds: %s .. %s", p.Start, p.End)
	}
}

func TestBalancesNetWorth(t *testing.T) {
	b := Balances{
		Liquid:      []AccountBalance{{Account: "Efectivo", Balance: dec("100")}},
		Savings:     []AccountBalance{{Account: "Nexa", Balance: dec("50")}},
		Investments: []AccountBalance{{Account: "Ugly", Balance: dec("10")}},
		FXRate:      dec("7.80"),
	}
	if !b.NetWorth().Equal(dec("228")) {
		t.Fatalf("net worth = %s, want 228", b.NetWorth())
	}
}
