package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finanzas/internal/ledger"
	"finanzas/internal/sheets/memory"
)

func catalogRows() [][]string {
	return [][]string{
		{"Fuentes", "CategoriasIngreso", "CategoriasEgreso", "Metodos", "Bancos", "Cuentas", "Ahorro", "Inversion"},
		{"Trabajo", "Salario", "Agua", "Efectivo", "Bi", "Efectivo", "Nexa", "Ugly"},
		{"Freelance", "Proyecto", "Internet", "Transferencia", "Banrural", "Bi", "", ""},
		{"Negocios", "Otros", "Ahorro", "Osmo", "Nexa", "Nexa", "", ""},
		{"", "", "# comentario", "", "", "Ugly", "", ""},
		{"Trabajo", "", "Agua", "", "", "", "", ""}, // duplicates collapse
	}
}

func TestParse(t *testing.T) {
	cat, err := Parse(catalogRows())
	require.NoError(t, err)

	assert.Equal(t, []string{"Trabajo", "Freelance", "Negocios"}, cat.Sources)
	assert.Equal(t, []string{"Agua", "Internet", "Ahorro"}, cat.ExpenseCategories)
	assert.Equal(t, []string{"Efectivo", "Bi", "Nexa", "Ugly"}, cat.Accounts)
	assert.Equal(t, []string{"Nexa"}, cat.SavingsAccounts)
	assert.Equal(t, []string{"Ugly"}, cat.InvestmentAccounts)
}

func TestParseMissingColumnFailsFast(t *testing.T) {
	rows := catalogRows()
	rows[0] = []string{"Fuentes", "CategoriasIngreso", "CategoriasEgreso", "Metodos", "Bancos", "Cuentas", "Ahorro"}
	_, err := Parse(rows)
	require.ErrorIs(t, err, ErrMissingColumn)
	assert.Contains(t, err.Error(), ColInvestmentAccounts)
}

func TestParseEmptySheet(t *testing.T) {
	_, err := Parse(nil)
	require.ErrorIs(t, err, ErrMissingColumn)
}

func TestLoaderCachesUntilRefresh(t *testing.T) {
	store := memory.New()
	store.Seed(7, ledger.SheetCatalog, catalogRows()...)
	loader := NewLoader(store, time.Hour, nil)

	cat, err := loader.Load(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, []string{"Trabajo", "Freelance", "Negocios"}, cat.Sources)

	// Mutate the backing sheet; Load keeps serving the cached copy.
	rows := catalogRows()
	rows[1][0] = "Consultoria"
	store.Seed(7, ledger.SheetCatalog, rows...)

	cached, err := loader.Load(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, cat.Sources, cached.Sources)

	// Refresh bypasses the cache, as /nuevo does.
	fresh, err := loader.Refresh(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Consultoria", fresh.Sources[0])
}
