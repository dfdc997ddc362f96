package core

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Kind discriminates the transaction union.
type Kind string

const (
	KindIncome   Kind = "ingreso"
	KindExpense  Kind = "egreso"
	KindTransfer Kind = "traslado"
)

// MethodTransfer is the payment method that routes an income or expense
// through a bank account instead of the method itself.
const MethodTransfer = "Transferencia"

// DateLayout is the wire format for dates in ledger rows.
const DateLayout = "2006-01-02"

var (
	ErrUnauthorized  = errors.New("user not allowed")
	ErrNoLedger      = errors.New("no ledger configured for user")
	ErrInvalidInput  = errors.New("invalid input")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidDate   = errors.New("invalid date")
	ErrSameAccount   = errors.New("transfer accounts must differ")
	ErrEmptyField    = errors.New("required field is empty")
)

type (
	// Date is a calendar date without time of day.
	Date struct {
		time.Time
	}

	// Income is money entering an account.
	Income struct {
		Date     Date
		Source   string
		Category string
		Amount   decimal.Decimal
		Method   string
		Bank     string // set only when Method == MethodTransfer
		Note     string
	}

	// Expense is money leaving an account.
	Expense struct {
		Date     Date
		Category string
		Amount   decimal.Decimal
		Method   string
		Bank     string
		Note     string
	}

	// Transfer moves money between two accounts. AmountIn of zero means the
	// destination receives exactly AmountOut.
	Transfer struct {
		Date      Date
		From      string
		To        string
		AmountOut decimal.Decimal
		AmountIn  decimal.Decimal
		Note      string
	}
)

// NewDate creates a Date from year, month, day in UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a time to its calendar date.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

func (in Income) Validate() error {
	if err := in.Date.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(in.Source) == "" || strings.TrimSpace(in.Category) == "" {
		return ErrEmptyField
	}
	if !in.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(in.Method) == "" {
		return ErrEmptyField
	}
	if in.Method == MethodTransfer && strings.TrimSpace(in.Bank) == "" {
		return ErrEmptyField
	}
	return nil
}

func (e Expense) Validate() error {
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyField
	}
	if !e.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(e.Method) == "" {
		return ErrEmptyField
	}
	if e.Method == MethodTransfer && strings.TrimSpace(e.Bank) == "" {
		return ErrEmptyField
	}
	return nil
}

func (tr Transfer) Validate() error {
	if err := tr.Date.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(tr.From) == "" || strings.TrimSpace(tr.To) == "" {
		return ErrEmptyField
	}
	if tr.From == tr.To {
		return ErrSameAccount
	}
	if !tr.AmountOut.IsPositive() {
		return ErrInvalidAmount
	}
	if tr.AmountIn.IsNegative() {
		return ErrInvalidAmount
	}
	return nil
}

// Credited returns the destination amount, falling back to AmountOut when
// the destination amount was left as zero.
func (tr Transfer) Credited() decimal.Decimal {
	if tr.AmountIn.IsZero() {
		return tr.AmountOut
	}
	return tr.AmountIn
}
