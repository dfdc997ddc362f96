package report

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"finanzas/internal/core"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestSummaryRendering(t *testing.T) {
	s := core.PeriodSummary{
		Period:  core.MonthToDate(time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)),
		Income:  dec("500"),
		Expense: dec("150"),
		Savings: dec("50"),
		TopCategories: []core.CategoryAmount{
			{Name: "Comida casa", Amount: dec("100")},
		},
	}
	out := Summary(s)

	assert.Contains(t, out, "Mes 2026-08")
	assert.Contains(t, out, "Q500.00")
	assert.Contains(t, out, "Q150.00")
	assert.Contains(t, out, "Q350.00")
	assert.Contains(t, out, "1. Comida casa")
	assert.NotContains(t, out, "omitidas")
}

func TestSummaryMentionsSkippedRows(t *testing.T) {
	s := core.PeriodSummary{
		Period:      core.ISOWeek(time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)),
		Income:      decimal.Zero,
		Expense:     decimal.Zero,
		Savings:     decimal.Zero,
		SkippedRows: 3,
	}
	assert.Contains(t, Summary(s), "3 filas")
}

func TestBalancesRendering(t *testing.T) {
	b := core.Balances{
		Liquid:      []core.AccountBalance{{Account: "Efectivo", Balance: dec("650")}},
		Savings:     []core.AccountBalance{{Account: "Nexa", Balance: dec("200")}},
		Investments: []core.AccountBalance{{Account: "Ugly", Balance: dec("10")}},
		FXRate:      dec("7.80"),
	}
	out := Balances(b)

	assert.Contains(t, out, "Efectivo")
	assert.Contains(t, out, "Total líquido")
	assert.Contains(t, out, "Total ahorro")
	assert.Contains(t, out, "$10.00")
	// 650 + 200 + 10*7.80
	assert.Contains(t, out, "Q928.00")
}
