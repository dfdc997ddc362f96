package ledger

import (
	"strings"

	"github.com/shopspring/decimal"

	"finanzas/internal/core"
)

// Row layouts, one column per field:
//
//	Ingresos:  fecha | fuente | categoria | monto | metodo | banco | nota
//	Egresos:   fecha | categoria | monto | metodo | banco | nota
//	Traslados: fecha | origen | destino | monto_salida | monto_entrada | nota
//
// Decoding is tolerant: rows whose date or amount does not parse are
// reported as skipped, never as errors.

// EncodeIncome renders an income as a ledger row.
func EncodeIncome(in core.Income) []string {
	return []string{in.Date.String(), in.Source, in.Category, in.Amount.String(), in.Method, in.Bank, in.Note}
}

// EncodeExpense renders an expense as a ledger row.
func EncodeExpense(e core.Expense) []string {
	return []string{e.Date.String(), e.Category, e.Amount.String(), e.Method, e.Bank, e.Note}
}

// EncodeTransfer renders a transfer as a ledger row. A zero destination
// amount is written as an empty cell.
func EncodeTransfer(tr core.Transfer) []string {
	in := ""
	if !tr.AmountIn.IsZero() {
		in = tr.AmountIn.String()
	}
	return []string{tr.Date.String(), tr.From, tr.To, tr.AmountOut.String(), in, tr.Note}
}

// DecodeIncome parses a row from the Ingresos sheet. The second return is
// false for malformed rows.
func DecodeIncome(row []string) (core.Income, bool) {
	if len(row) < 4 {
		return core.Income{}, false
	}
	date, err := core.ParseDate(cell(row, 0))
	if err != nil {
		return core.Income{}, false
	}
	amount, ok := parseCellAmount(cell(row, 3))
	if !ok {
		return core.Income{}, false
	}
	return core.Income{
		Date:     date,
		Source:   cell(row, 1),
		Category: cell(row, 2),
		Amount:   amount,
		Method:   cell(row, 4),
		Bank:     cell(row, 5),
		Note:     cell(row, 6),
	}, true
}

// DecodeExpense parses a row from the Egresos sheet.
func DecodeExpense(row []string) (core.Expense, bool) {
	if len(row) < 3 {
		return core.Expense{}, false
	}
	date, err := core.ParseDate(cell(row, 0))
	if err != nil {
		return core.Expense{}, false
	}
	amount, ok := parseCellAmount(cell(row, 2))
	if !ok {
		return core.Expense{}, false
	}
	return core.Expense{
		Date:     date,
		Category: cell(row, 1),
		Amount:   amount,
		Method:   cell(row, 3),
		Bank:     cell(row, 4),
		Note:     cell(row, 5),
	}, true
}

// DecodeTransfer parses a row from the Traslados sheet. A blank or
// unparseable destination amount becomes zero, meaning "same as source".
func DecodeTransfer(row []string) (core.Transfer, bool) {
	if len(row) < 4 {
		return core.Transfer{}, false
	}
	date, err := core.ParseDate(cell(row, 0))
	if err != nil {
		return core.Transfer{}, false
	}
	out, ok := parseCellAmount(cell(row, 3))
	if !ok {
		return core.Transfer{}, false
	}
	amountIn := decimal.Zero
	if in, ok := parseCellAmount(cell(row, 4)); ok {
		amountIn = in
	}
	return core.Transfer{
		Date:      date,
		From:      cell(row, 1),
		To:        cell(row, 2),
		AmountOut: out,
		AmountIn:  amountIn,
		Note:      cell(row, 5),
	}, true
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseCellAmount(s string) (decimal.Decimal, bool) {
	if s == "" {
		return decimal.Zero, false
	}
	// Historical cells may carry comma decimals or currency symbols.
	d, err := core.ParseDestinationAmount(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
