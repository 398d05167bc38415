// Package memory is an in-process ledger used as the default backend and by
// tests. It mirrors the sheet's row semantics exactly, including the
// destructive shift on delete.
package memory

import (
	"context"
	"sync"

	"kharcha/internal/core"
	"kharcha/internal/ledger"
)

type Store struct {
	mu   sync.Mutex
	rows []core.Record
}

var _ ledger.Ledger = (*Store)(nil)

func New() *Store {
	return &Store{}
}

func (s *Store) Append(_ context.Context, t core.Transaction) (int, error) {
	if err := t.Validate(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cells := t.Cells()
	row := len(s.rows) + ledger.FirstDataRow
	s.rows = append(s.rows, core.Record{
		Row:      row,
		Date:     cells[0],
		Amount:   cells[1],
		Category: cells[2],
		Type:     cells[3],
		Notes:    cells[4],
	})
	return row, nil
}

func (s *Store) ReadAll(_ context.Context) ([]core.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Record, len(s.rows))
	copy(out, s.rows)
	return out, nil
}

func (s *Store) UpdateCategory(_ context.Context, row int, category, typ string) error {
	if row < ledger.FirstDataRow {
		return ledger.ErrHeaderRow
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := row - ledger.FirstDataRow
	if i >= len(s.rows) {
		return ledger.ErrRowNotFound
	}
	s.rows[i].Category = category
	s.rows[i].Type = typ
	return nil
}

func (s *Store) DeleteRow(_ context.Context, row int) error {
	if row < ledger.FirstDataRow {
		return ledger.ErrHeaderRow
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := row - ledger.FirstDataRow
	if i >= len(s.rows) {
		return ledger.ErrRowNotFound
	}
	s.rows = append(s.rows[:i], s.rows[i+1:]...)
	for j := i; j < len(s.rows); j++ {
		s.rows[j].Row = j + ledger.FirstDataRow
	}
	return nil
}
