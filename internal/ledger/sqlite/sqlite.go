// Package sqlite backs the ledger with a local SQLite file. It keeps the
// same positional row semantics as the sheet backend: a row's position is
// its rank in insertion order plus the header offset, so deleting a row
// shifts every later position by construction.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"kharcha/internal/core"
	"kharcha/internal/ledger"
)

type Repository struct {
	db *sql.DB
}

var _ ledger.Ledger = (*Repository)(nil)

func New(dbPath string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *Repository) Append(ctx context.Context, t core.Transaction) (int, error) {
	if err := t.Validate(); err != nil {
		return 0, err
	}
	cells := t.Cells()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (tx_date, amount, category, tx_type, notes) VALUES (?, ?, ?, ?, ?)`,
		cells[0], cells[1], cells[2], cells[3], cells[4])
	if err != nil {
		return 0, fmt.Errorf("insert transaction: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}

	var rank int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM transactions WHERE id <= ?`, id).Scan(&rank); err != nil {
		return 0, fmt.Errorf("rank transaction: %w", err)
	}
	row := rank + 1 // header occupies row 1

	slog.InfoContext(ctx, "Transaction saved to SQLite",
		"id", id, "row", row, "category", t.Category, "amount", t.Amount.String())
	return row, nil
}

func (r *Repository) ReadAll(ctx context.Context) ([]core.Record, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT tx_date, amount, category, tx_type, notes FROM transactions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("select transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Record
	pos := ledger.FirstDataRow
	for rows.Next() {
		rec := core.Record{Row: pos}
		if err := rows.Scan(&rec.Date, &rec.Amount, &rec.Category, &rec.Type, &rec.Notes); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, rec)
		pos++
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return out, nil
}

func (r *Repository) UpdateCategory(ctx context.Context, row int, category, typ string) error {
	id, err := r.idAtRow(ctx, row)
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET category = ?, tx_type = ? WHERE id = ?`, category, typ, id); err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

func (r *Repository) DeleteRow(ctx context.Context, row int) error {
	id, err := r.idAtRow(ctx, row)
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM transactions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return nil
}

// idAtRow translates a sheet-style position into the stable database id.
func (r *Repository) idAtRow(ctx context.Context, row int) (int64, error) {
	if row < ledger.FirstDataRow {
		return 0, ledger.ErrHeaderRow
	}
	var id int64
	err := r.db.QueryRowContext(ctx,
		`SELECT id FROM transactions ORDER BY id LIMIT 1 OFFSET ?`, row-ledger.FirstDataRow).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ledger.ErrRowNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("resolve row %d: %w", row, err)
	}
	return id, nil
}
