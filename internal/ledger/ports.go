package ledger

import "context"

// Logical sheet names inside each user's spreadsheet.
const (
	SheetIncome   = "Ingresos"
	SheetExpense  = "Egresos"
	SheetTransfer = "Traslados"
	SheetCatalog  = "Catalogo"
)

// Ports for outbound spreadsheet adapters. Implementations resolve the
// user's spreadsheet from the identifier and return core.ErrNoLedger when
// none is configured.
type (
	RowAppender interface {
		AppendRow(ctx context.Context, userID int64, sheet string, row []string) error
	}

	RowReader interface {
		ReadAllRows(ctx context.Context, userID int64, sheet string) ([][]string, error)
	}

	// Store is the full per-user ledger surface.
	Store interface {
		RowAppender
		RowReader
	}
)
