// Package catalog loads the per-user lists of selectable values (income
// sources, categories, payment methods, banks, accounts) from the Catalogo
// reference sheet.
//
// The sheet is column oriented: the first row carries canonical column
// names, the cells below are the values. Loading fails fast when a canonical
// column is missing instead of silently defaulting.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"finanzas/internal/ledger"
	"finanzas/internal/log"
)

// Canonical column names in the Catalogo sheet.
const (
	ColSources            = "Fuentes"
	ColIncomeCategories   = "CategoriasIngreso"
	ColExpenseCategories  = "CategoriasEgreso"
	ColMethods            = "Metodos"
	ColBanks              = "Bancos"
	ColAccounts           = "Cuentas"
	ColSavingsAccounts    = "Ahorro"
	ColInvestmentAccounts = "Inversion"
)

var ErrMissingColumn = errors.New("catalog column missing")

// Catalog holds one user's ordered lists of valid values.
type Catalog struct {
	Sources            []string
	IncomeCategories   []string
	ExpenseCategories  []string
	Methods            []string
	Banks              []string
	Accounts           []string
	SavingsAccounts    []string
	InvestmentAccounts []string
}

// Has reports whether v is a member of the given list.
func Has(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

// Loader reads catalogs from the reference sheet and caches them per user
// with a TTL. Refresh bypasses the cache, which is what /nuevo does.
type Loader struct {
	store  ledger.RowReader
	ttl    time.Duration
	logger *log.Logger

	mu    sync.Mutex
	cache map[int64]cacheEntry
}

type cacheEntry struct {
	catalog   *Catalog
	expiresAt time.Time
}

func NewLoader(store ledger.RowReader, ttl time.Duration, logger *log.Logger) *Loader {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &Loader{
		store:  store,
		ttl:    ttl,
		logger: logger.WithComponent(log.ComponentCatalog),
		cache:  map[int64]cacheEntry{},
	}
}

// Load returns the cached catalog for the user, reading the sheet when the
// cache is cold or expired.
func (l *Loader) Load(ctx context.Context, userID int64) (*Catalog, error) {
	l.mu.Lock()
	entry, ok := l.cache[userID]
	l.mu.Unlock()
	if ok && time.Now().Before(entry.expiresAt) {
		return entry.catalog, nil
	}
	return l.Refresh(ctx, userID)
}

// Refresh reads the sheet unconditionally and replaces the cached entry.
func (l *Loader) Refresh(ctx context.Context, userID int64) (*Catalog, error) {
	rows, err := l.store.ReadAllRows(ctx, userID, ledger.SheetCatalog)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", ledger.SheetCatalog, err)
	}
	cat, err := Parse(rows)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	l.cache[userID] = cacheEntry{catalog: cat, expiresAt: time.Now().Add(l.ttl)}
	l.mu.Unlock()

	l.logger.DebugContext(ctx, "Catalog refreshed",
		log.FieldUserID, userID,
		"sources", len(cat.Sources),
		"expense_categories", len(cat.ExpenseCategories),
		"accounts", len(cat.Accounts))
	return cat, nil
}

// Invalidate drops the cached entry for a user.
func (l *Loader) Invalidate(userID int64) {
	l.mu.Lock()
	delete(l.cache, userID)
	l.mu.Unlock()
}

// Parse builds a catalog from raw sheet rows. The first row must contain
// every canonical column name.
func Parse(rows [][]string) (*Catalog, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: empty sheet", ErrMissingColumn)
	}
	header := rows[0]
	index := map[string]int{}
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}

	column := func(name string) ([]string, error) {
		idx, ok := index[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
		var out []string
		seen := map[string]struct{}{}
		for _, row := range rows[1:] {
			if idx >= len(row) {
				continue
			}
			v := strings.TrimSpace(row[idx])
			if v == "" || strings.HasPrefix(v, "#") {
				continue
			}
			if _, dup := seen[v]; dup {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
		return out, nil
	}

	cat := &Catalog{}
	for _, bind := range []struct {
		name string
		dst  *[]string
	}{
		{ColSources, &cat.Sources},
		{ColIncomeCategories, &cat.IncomeCategories},
		{ColExpenseCategories, &cat.ExpenseCategories},
		{ColMethods, &cat.Methods},
		{ColBanks, &cat.Banks},
		{ColAccounts, &cat.Accounts},
		{ColSavingsAccounts, &cat.SavingsAccounts},
		{ColInvestmentAccounts, &cat.InvestmentAccounts},
	} {
		values, err := column(bind.name)
		if err != nil {
			return nil, err
		}
		*bind.dst = values
	}
	return cat, nil
}
