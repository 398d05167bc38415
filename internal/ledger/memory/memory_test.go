package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"kharcha/internal/core"
	"kharcha/internal/ledger"
)

func tx(day int, amount int64, category string) core.Transaction {
	return core.Transaction{
		Date:     time.Date(2025, 9, day, 0, 0, 0, 0, time.UTC),
		Amount:   decimal.NewFromInt(amount),
		Category: category,
		Type:     core.TypeVariable,
	}
}

func TestAppendAssignsSequentialRows(t *testing.T) {
	s := New()
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		row, err := s.Append(ctx, tx(i+1, 100, "Groceries"))
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
		if row != ledger.FirstDataRow+i {
			t.Fatalf("append %d: row = %d, want %d", i, row, ledger.FirstDataRow+i)
		}
	}
}

func TestDeleteShiftsLaterRows(t *testing.T) {
	s := New()
	ctx := context.Background()
	for i := 1; i <= 10; i++ {
		if _, err := s.Append(ctx, tx(i%28+1, int64(i), "Other")); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	// Rows occupy 2..11; drop the one at position 5.
	if err := s.DeleteRow(ctx, 5); err != nil {
		t.Fatalf("delete: %v", err)
	}
	rows, err := s.ReadAll(ctx)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(rows) != 9 {
		t.Fatalf("len = %d, want 9", len(rows))
	}
	// Row formerly at 6 (amount 5) is now reachable at 5.
	if rows[3].Row != 5 || rows[3].Amount != "5" {
		t.Fatalf("row 5 = %+v", rows[3])
	}
	if rows[len(rows)-1].Row != 10 {
		t.Fatalf("last row = %d, want 10", rows[len(rows)-1].Row)
	}
}

func TestHeaderRowRejected(t *testing.T) {
	s := New()
	ctx := context.Background()
	for _, row := range []int{-1, 0, 1} {
		if err := s.DeleteRow(ctx, row); !errors.Is(err, ledger.ErrHeaderRow) {
			t.Fatalf("DeleteRow(%d) = %v, want ErrHeaderRow", row, err)
		}
		if err := s.UpdateCategory(ctx, row, "x", "y"); !errors.Is(err, ledger.ErrHeaderRow) {
			t.Fatalf("UpdateCategory(%d) = %v, want ErrHeaderRow", row, err)
		}
	}
}

func TestUpdateCategory(t *testing.T) {
	s := New()
	ctx := context.Background()
	row, err := s.Append(ctx, tx(1, 450, "Groceries"))
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := s.UpdateCategory(ctx, row, "Dining", core.TypeVariable); err != nil {
		t.Fatalf("update: %v", err)
	}
	rows, _ := s.ReadAll(ctx)
	if rows[0].Category != "Dining" {
		t.Fatalf("category = %q", rows[0].Category)
	}
	if err := s.UpdateCategory(ctx, row+1, "Dining", core.TypeVariable); !errors.Is(err, ledger.ErrRowNotFound) {
		t.Fatalf("expected ErrRowNotFound, got %v", err)
	}
}
