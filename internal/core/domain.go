package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// DateLayout is the external date format used in messages and in the
	// ledger, e.g. "01-Sep-2025".
	DateLayout = "02-Jan-2006"

	// DateLayoutSpaced is the legacy three-token form, e.g. "1 Sep 2025".
	DateLayoutSpaced = "2 Jan 2006"
)

// Type tags derived from category membership.
const (
	TypeFixed    = "Fixed"
	TypeVariable = "Variable"
)

var (
	ErrTooFewTokens  = errors.New("not enough tokens")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidDate   = errors.New("invalid date")
	ErrEmptyCategory = errors.New("empty category")
)

// Transaction is one logged expense. Row is the 1-based position in the
// backing store; the header occupies row 1, so the first data row is 2.
type Transaction struct {
	Date     time.Time
	Amount   decimal.Decimal
	Category string
	Type     string
	Notes    string
	Row      int
}

// Draft is the parser output before categorization.
type Draft struct {
	Date   time.Time
	Amount decimal.Decimal
	Notes  string
}

func (t Transaction) Validate() error {
	if t.Date.IsZero() {
		return ErrInvalidDate
	}
	if t.Amount.IsNegative() {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	return nil
}

// Day truncates a timestamp to its calendar date in UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
