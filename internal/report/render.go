// Package report renders summaries and balances as fixed-width text tables
// for delivery through the messaging channel.
package report

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"finanzas/internal/core"
)

func money(d decimal.Decimal) string {
	return "Q" + d.StringFixed(2)
}

// Summary renders a period summary.
func Summary(s core.PeriodSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Resumen %s\n\n", s.Period.Label)

	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Ingresos\t%s\n", money(s.Income))
	fmt.Fprintf(w, "Egresos\t%s\n", money(s.Expense))
	fmt.Fprintf(w, "  de ello Ahorro\t%s\n", money(s.Savings))
	fmt.Fprintf(w, "Balance\t%s\n", money(s.Balance()))
	w.Flush()

	if len(s.TopCategories) > 0 {
		b.WriteString("\nTop gastos:\n")
		w = tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
		for i, c := range s.TopCategories {
			fmt.Fprintf(w, "%d. %s\t%s\n", i+1, c.Name, money(c.Amount))
		}
		w.Flush()
	}

	if s.SkippedRows > 0 {
		fmt.Fprintf(&b, "\n(%d filas con datos ilegibles fueron omitidas)\n", s.SkippedRows)
	}
	return b.String()
}

// Balances renders the replayed account balances, liquid accounts first,
// then the savings and investment groups with their totals.
func Balances(b core.Balances) string {
	var sb strings.Builder
	sb.WriteString("Saldos\n\n")

	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	for _, ab := range b.Liquid {
		fmt.Fprintf(w, "%s\t%s\n", ab.Account, money(ab.Balance))
	}
	fmt.Fprintf(w, "Total líquido\t%s\n", money(b.LiquidTotal()))
	w.Flush()

	if len(b.Savings) > 0 {
		sb.WriteString("\nAhorro:\n")
		w = tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
		for _, ab := range b.Savings {
			fmt.Fprintf(w, "%s\t%s\n", ab.Account, money(ab.Balance))
		}
		fmt.Fprintf(w, "Total ahorro\t%s\n", money(b.SavingsTotal()))
		w.Flush()
	}

	if len(b.Investments) > 0 {
		sb.WriteString("\nInversión:\n")
		w = tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
		for _, ab := range b.Investments {
			fmt.Fprintf(w, "%s\t$%s\n", ab.Account, ab.Balance.StringFixed(2))
		}
		fmt.Fprintf(w, "Total inversión\t$%s\n", b.InvestmentTotal().StringFixed(2))
		w.Flush()
	}

	fmt.Fprintf(&sb, "\nPatrimonio neto: %s\n", money(b.NetWorth()))
	return sb.String()
}
