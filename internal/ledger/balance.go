package ledger

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"finanzas/internal/core"
)

// BalanceOptions carries the account classification from the user's catalog
// and the fixed conversion rate applied to investment accounts.
type BalanceOptions struct {
	SavingsAccounts    []string
	InvestmentAccounts []string
	FXRate             decimal.Decimal
}

// Balances replays every income, expense and transfer row for a user and
// derives the current balance of each touched account. Replay is a plain
// summation, so the result does not depend on row order.
func (a *Aggregator) Balances(ctx context.Context, userID int64, opts BalanceOptions) (core.Balances, error) {
	totals := map[string]decimal.Decimal{}
	credit := func(account string, amount decimal.Decimal) {
		if account == "" {
			return
		}
		totals[account] = totals[account].Add(amount)
	}

	incomeRows, err := a.store.ReadAllRows(ctx, userID, SheetIncome)
	if err != nil {
		return core.Balances{}, fmt.Errorf("read %s: %w", SheetIncome, err)
	}
	for _, row := range incomeRows {
		if in, ok := DecodeIncome(row); ok {
			credit(resolveAccount(in.Method, in.Bank), in.Amount)
		}
	}

	expenseRows, err := a.store.ReadAllRows(ctx, userID, SheetExpense)
	if err != nil {
		return core.Balances{}, fmt.Errorf("read %s: %w", SheetExpense, err)
	}
	for _, row := range expenseRows {
		if e, ok := DecodeExpense(row); ok {
			credit(resolveAccount(e.Method, e.Bank), e.Amount.Neg())
		}
	}

	transferRows, err := a.store.ReadAllRows(ctx, userID, SheetTransfer)
	if err != nil {
		return core.Balances{}, fmt.Errorf("read %s: %w", SheetTransfer, err)
	}
	for _, row := range transferRows {
		if tr, ok := DecodeTransfer(row); ok {
			credit(tr.From, tr.AmountOut.Neg())
			credit(tr.To, tr.Credited())
		}
	}

	savings := toSet(opts.SavingsAccounts)
	investments := toSet(opts.InvestmentAccounts)

	b := core.Balances{FXRate: opts.FXRate}
	for _, account := range sortedKeys(totals) {
		ab := core.AccountBalance{Account: account, Balance: totals[account]}
		switch {
		case investments[account]:
			b.Investments = append(b.Investments, ab)
		case savings[account]:
			b.Savings = append(b.Savings, ab)
		default:
			b.Liquid = append(b.Liquid, ab)
		}
	}
	return b, nil
}

// resolveAccount maps a payment method to the impacted account: the method
// itself, or the bank when the method routed through a bank transfer.
func resolveAccount(method, bank string) string {
	if method == core.MethodTransfer && bank != "" {
		return bank
	}
	return method
}

func toSet(in []string) map[string]bool {
	set := make(map[string]bool, len(in))
	for _, v := range in {
		set[v] = true
	}
	return set
}

func sortedKeys(m map[string]decimal.Decimal) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
