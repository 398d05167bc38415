// Package ledger defines the narrow contract the engine needs from the
// transaction store, plus shared row-addressing rules. Row numbers are
// 1-based positions in the backing sheet; row 1 is the header, so data rows
// start at 2. Deleting a row shifts every later row up by one.
package ledger

import (
	"context"
	"errors"

	"kharcha/internal/core"
)

var (
	ErrHeaderRow   = errors.New("row addresses the header or is out of range")
	ErrRowNotFound = errors.New("row not found")
)

// FirstDataRow is the position of the first transaction (row 1 is the header).
const FirstDataRow = 2

// Ledger is the outbound port for the transaction store.
type Ledger interface {
	// Append stores a transaction and returns the row it landed on.
	Append(ctx context.Context, t core.Transaction) (row int, err error)

	// ReadAll returns every stored row in order, header excluded, with
	// Row set. Malformed cells are returned as-is; callers decide what to
	// skip.
	ReadAll(ctx context.Context) ([]core.Record, error)

	// UpdateCategory overwrites the category and type cells of one row.
	UpdateCategory(ctx context.Context, row int, category, typ string) error

	// DeleteRow removes one row; later rows shift up by one. Rows <= 1
	// are rejected with ErrHeaderRow.
	DeleteRow(ctx context.Context, row int) error
}
