// Package ledger reads flat transaction rows back from a user's spreadsheet
// and reduces them into period summaries and replayed account balances.
package ledger

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"finanzas/internal/core"
	"finanzas/internal/log"
)

// TopCategories is how many expense categories a summary lists.
const TopCategories = 5

// Aggregator reduces ledger rows into summaries and balances.
type Aggregator struct {
	store  RowReader
	logger *log.Logger
}

func NewAggregator(store RowReader, logger *log.Logger) *Aggregator {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &Aggregator{store: store, logger: logger.WithComponent(log.ComponentLedger)}
}

// Summarize aggregates income and expense rows falling inside the period.
// Malformed rows are skipped and counted, never fatal.
func (a *Aggregator) Summarize(ctx context.Context, userID int64, p core.Period) (core.PeriodSummary, error) {
	s := core.PeriodSummary{Period: p, Income: decimal.Zero, Expense: decimal.Zero, Savings: decimal.Zero}

	incomeRows, err := a.store.ReadAllRows(ctx, userID, SheetIncome)
	if err != nil {
		return s, fmt.Errorf("read %s: %w", SheetIncome, err)
	}
	for i, row := range incomeRows {
		in, ok := DecodeIncome(row)
		if !ok {
			s.SkippedRows += countSkipped(i)
			continue
		}
		if p.Contains(in.Date) {
			s.Income = s.Income.Add(in.Amount)
		}
	}

	expenseRows, err := a.store.ReadAllRows(ctx, userID, SheetExpense)
	if err != nil {
		return s, fmt.Errorf("read %s: %w", SheetExpense, err)
	}
	byCategory := map[string]decimal.Decimal{}
	var order []string
	for i, row := range expenseRows {
		e, ok := DecodeExpense(row)
		if !ok {
			s.SkippedRows += countSkipped(i)
			continue
		}
		if !p.Contains(e.Date) {
			continue
		}
		s.Expense = s.Expense.Add(e.Amount)
		if e.Category == core.SavingsCategory {
			s.Savings = s.Savings.Add(e.Amount)
			continue
		}
		if _, seen := byCategory[e.Category]; !seen {
			order = append(order, e.Category)
		}
		byCategory[e.Category] = byCategory[e.Category].Add(e.Amount)
	}

	ranked := make([]core.CategoryAmount, 0, len(order))
	for _, name := range order {
		ranked = append(ranked, core.CategoryAmount{Name: name, Amount: byCategory[name]})
	}
	// Descending by amount; stable sort keeps encounter order on ties.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Amount.GreaterThan(ranked[j].Amount)
	})
	if len(ranked) > TopCategories {
		ranked = ranked[:TopCategories]
	}
	s.TopCategories = ranked

	if s.SkippedRows > 0 {
		a.logger.WarnContext(ctx, "Skipped malformed ledger rows during aggregation",
			log.FieldUserID, userID,
			log.FieldPeriod, p.Label,
			log.FieldSkipped, s.SkippedRows)
	}
	return s, nil
}

// countSkipped ignores the header row, everything else counts.
func countSkipped(rowIndex int) int {
	if rowIndex == 0 {
		return 0
	}
	return 1
}
