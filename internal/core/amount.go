// Package core holds the transaction domain types and amount parsing.
//
// This file normalizes free-text monetary input. Users type amounts with
// either comma or dot as the decimal separator, sometimes with thousands
// separators or a currency symbol, so parsing has to decide which separator
// means what before handing the string to the decimal library.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts free-text input into a positive decimal amount.
//
// Everything except digits, '.', ',' and '-' is stripped first. When both
// separators appear, the one occurring last is the decimal separator and the
// other is removed as a thousands separator; a lone comma is a decimal
// separator. Returns ErrInvalidAmount for anything that does not end up as a
// positive number.
//
// Examples:
//
//	ParseAmount("125,50")     -> 125.5
//	ParseAmount("1.234,56")   -> 1234.56
//	ParseAmount("1,234.56")   -> 1234.56
//	ParseAmount("Q 75")       -> 75
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := parseSigned(s)
	if err != nil {
		return decimal.Zero, err
	}
	if !d.IsPositive() {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// ParseDestinationAmount parses the secondary amount of a transfer. Unlike
// ParseAmount it accepts an explicit zero, which callers interpret as "same
// as the source amount".
func ParseDestinationAmount(s string) (decimal.Decimal, error) {
	d, err := parseSigned(s)
	if err != nil {
		return decimal.Zero, err
	}
	if d.IsNegative() {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

func parseSigned(s string) (decimal.Decimal, error) {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' || r == '-' {
			b.WriteRune(r)
		}
	}
	t := b.String()
	if t == "" {
		return decimal.Zero, ErrInvalidAmount
	}

	lastDot := strings.LastIndex(t, ".")
	lastComma := strings.LastIndex(t, ",")
	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastComma > lastDot {
			t = strings.ReplaceAll(t, ".", "")
			t = strings.ReplaceAll(t, ",", ".")
		} else {
			t = strings.ReplaceAll(t, ",", "")
		}
	case lastComma >= 0:
		t = strings.ReplaceAll(t, ",", ".")
	}

	d, err := decimal.NewFromString(t)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}
