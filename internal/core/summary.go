package core

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// SavingsCategory is the expense category carved out of the expense total as
// savings rather than spending.
const SavingsCategory = "Ahorro"

// Period is an inclusive calendar date range.
type Period struct {
	Start Date
	End   Date
	Label string
}

// MonthToDate covers the first of the month through now's date.
func MonthToDate(now time.Time) Period {
	return Period{
		Start: NewDate(now.Year(), int(now.Month()), 1),
		End:   DateOf(now),
		Label: fmt.Sprintf("Mes %s", now.Format("2006-01")),
	}
}

// ISOWeek covers Monday through Sunday of the week containing now.
func ISOWeek(now time.Time) Period {
	d := DateOf(now)
	offset := (int(d.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	monday := Date{Time: d.AddDate(0, 0, -offset)}
	sunday := Date{Time: monday.AddDate(0, 0, 6)}
	return Period{
		Start: monday,
		End:   sunday,
		Label: fmt.Sprintf("Semana %s a %s", monday, sunday),
	}
}

// Contains reports whether the date falls inside the period, bounds included.
func (p Period) Contains(d Date) bool {
	return !d.Before(p.Start.Time) && !d.After(p.End.Time)
}

// CategoryAmount is an amount aggregated under a category name.
type CategoryAmount struct {
	Name   string
	Amount decimal.Decimal
}

// PeriodSummary aggregates one user's ledger over a period.
type PeriodSummary struct {
	Period        Period
	Income        decimal.Decimal
	Expense       decimal.Decimal
	Savings       decimal.Decimal // expense rows in SavingsCategory
	TopCategories []CategoryAmount
	SkippedRows   int // malformed rows tolerated during aggregation
}

// Balance is total income minus total expense for the period.
func (s PeriodSummary) Balance() decimal.Decimal {
	return s.Income.Sub(s.Expense)
}

// AccountBalance is the replayed balance of a single account.
type AccountBalance struct {
	Account string
	Balance decimal.Decimal
}

// Balances is the replayed state of all of a user's accounts, split by the
// catalog's account flags.
type Balances struct {
	Liquid      []AccountBalance
	Savings     []AccountBalance
	Investments []AccountBalance
	FXRate      decimal.Decimal // home currency per investment currency unit
}

// LiquidTotal sums the liquid accounts.
func (b Balances) LiquidTotal() decimal.Decimal {
	return sumBalances(b.Liquid)
}

// SavingsTotal sums the savings-flagged accounts.
func (b Balances) SavingsTotal() decimal.Decimal {
	return sumBalances(b.Savings)
}

// InvestmentTotal sums the investment-flagged accounts in their own currency.
func (b Balances) InvestmentTotal() decimal.Decimal {
	return sumBalances(b.Investments)
}

// NetWorth combines all account groups, converting investments into the home
// currency with the fixed rate.
func (b Balances) NetWorth() decimal.Decimal {
	return b.LiquidTotal().
		Add(b.SavingsTotal()).
		Add(b.InvestmentTotal().Mul(b.FXRate))
}

func sumBalances(in []AccountBalance) decimal.Decimal {
	total := decimal.Zero
	for _, ab := range in {
		total = total.Add(ab.Balance)
	}
	return total
}
