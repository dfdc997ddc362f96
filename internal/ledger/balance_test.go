package ledger_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finanzas/internal/core"
	"finanzas/internal/ledger"
	"finanzas/internal/sheets/memory"
)

func balanceFixture() (income, expense, transfer [][]string) {
	income = [][]string{
		{"2026-01-05", "Trabajo", "Salario", "1000", "Efectivo", "", ""},
		{"2026-01-20", "Freelance", "Proyecto", "300", core.MethodTransfer, "Bi", ""},
	}
	expense = [][]string{
		{"2026-01-07", "Mercado", "150", "Efectivo", "", ""},
		{"2026-01-12", "Internet", "50", core.MethodTransfer, "Bi", ""},
	}
	transfer = [][]string{
		{"2026-01-15", "Efectivo", "Nexa", "200", "", ""},
		{"2026-01-18", "Bi", "Ugly", "78", "10", ""},
	}
	return income, expense, transfer
}

func seededAggregator(income, expense, transfer [][]string) *ledger.Aggregator {
	store := memory.New()
	store.Seed(userID, ledger.SheetIncome, income...)
	store.Seed(userID, ledger.SheetExpense, expense...)
	store.Seed(userID, ledger.SheetTransfer, transfer...)
	return ledger.NewAggregator(store, nil)
}

func opts() ledger.BalanceOptions {
	return ledger.BalanceOptions{
		SavingsAccounts:    []string{"Nexa"},
		InvestmentAccounts: []string{"Ugly"},
		FXRate:             decimal.RequireFromString("7.80"),
	}
}

func TestBalancesReplay(t *testing.T) {
	income, expense, transfer := balanceFixture()
	agg := seededAggregator(income, expense, transfer)

	b, err := agg.Balances(context.Background(), userID, opts())
	require.NoError(t, err)

	byName := map[string]decimal.Decimal{}
	for _, group := range [][]core.AccountBalance{b.Liquid, b.Savings, b.Investments} {
		for _, ab := range group {
			byName[ab.Account] = ab.Balance
		}
	}

	// Efectivo: +1000 -150 -200 = 650
	assert.True(t, byName["Efectivo"].Equal(decimal.RequireFromString("650")), "Efectivo = %s", byName["Efectivo"])
	// Bi: +300 -50 -78 = 172 (bank resolved from transfer-method rows)
	assert.True(t, byName["Bi"].Equal(decimal.RequireFromString("172")), "Bi = %s", byName["Bi"])
	// Nexa: +200 via transfer with blank destination amount (mirrors out)
	assert.True(t, byName["Nexa"].Equal(decimal.RequireFromString("200")), "Nexa = %s", byName["Nexa"])
	// Ugly: +10 explicit destination amount
	assert.True(t, byName["Ugly"].Equal(decimal.RequireFromString("10")), "Ugly = %s", byName["Ugly"])

	// Flagged accounts are excluded from the liquid view.
	for _, ab := range b.Liquid {
		assert.NotContains(t, []string{"Nexa", "Ugly"}, ab.Account)
	}
	require.Len(t, b.Savings, 1)
	require.Len(t, b.Investments, 1)

	// Net worth applies the fixed conversion to investments only.
	want := decimal.RequireFromString("650").
		Add(decimal.RequireFromString("172")).
		Add(decimal.RequireFromString("200")).
		Add(decimal.RequireFromString("10").Mul(decimal.RequireFromString("7.80")))
	assert.True(t, b.NetWorth().Equal(want), "net worth = %s, want %s", b.NetWorth(), want)
}

func TestBalancesOrderIndependent(t *testing.T) {
	income, expense, transfer := balanceFixture()
	base, err := seededAggregator(income, expense, transfer).Balances(context.Background(), userID, opts())
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 5; trial++ {
		shuffled := func(rows [][]string) [][]string {
			out := append([][]string(nil), rows...)
			rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
			return out
		}
		got, err := seededAggregator(shuffled(income), shuffled(expense), shuffled(transfer)).
			Balances(context.Background(), userID, opts())
		require.NoError(t, err)
		assert.Equal(t, base, got, "replay must be order independent")
	}
}

func TestBalancesZeroDestinationMirrorsSource(t *testing.T) {
	store := memory.New()
	store.Seed(userID, ledger.SheetTransfer,
		[]string{"2026-02-01", "Efectivo", "Banrural", "125.50", "0", ""},
	)
	agg := ledger.NewAggregator(store, nil)

	b, err := agg.Balances(context.Background(), userID, ledger.BalanceOptions{FXRate: decimal.New(1, 0)})
	require.NoError(t, err)

	byName := map[string]decimal.Decimal{}
	for _, ab := range b.Liquid {
		byName[ab.Account] = ab.Balance
	}
	assert.True(t, byName["Banrural"].Equal(decimal.RequireFromString("125.5")))
	assert.True(t, byName["Efectivo"].Equal(decimal.RequireFromString("-125.5")))
}
