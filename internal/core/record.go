package core

import (
	"fmt"
	"strings"
	"time"
)

// Record is one raw ledger row exactly as stored, header excluded. Cells are
// kept as strings so that a malformed row never aborts a read; reports parse
// each record and skip the ones that fail.
type Record struct {
	Row      int
	Date     string
	Amount   string
	Category string
	Type     string
	Notes    string
}

// ParseRecord converts a raw row into a transaction. Both the compact and
// the legacy spaced date forms are accepted.
func ParseRecord(r Record) (Transaction, error) {
	ds := strings.TrimSpace(r.Date)
	date, err := time.Parse(DateLayout, ds)
	if err != nil {
		date, err = time.Parse(DateLayoutSpaced, ds)
		if err != nil {
			return Transaction{}, fmt.Errorf("%w: %q", ErrInvalidDate, r.Date)
		}
	}
	amount, err := ParseAmount(r.Amount)
	if err != nil {
		return Transaction{}, err
	}
	category := strings.TrimSpace(r.Category)
	if category == "" {
		category = CatchAll
	}
	return Transaction{
		Date:     Day(date),
		Amount:   amount,
		Category: category,
		Type:     strings.TrimSpace(r.Type),
		Notes:    r.Notes,
		Row:      r.Row,
	}, nil
}

// Cells returns the fixed-position column values written to the ledger:
// date, amount, category, type, notes.
func (t Transaction) Cells() []string {
	return []string{
		t.Date.Format(DateLayout),
		t.Amount.String(),
		t.Category,
		t.Type,
		t.Notes,
	}
}
