package bot

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"kharcha/internal/core"
	"kharcha/internal/report"
)

func TestFormatConfirmation(t *testing.T) {
	tx := core.Transaction{
		Date:     time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC),
		Amount:   decimal.NewFromInt(450),
		Category: "Groceries",
		Type:     "Variable",
		Notes:    "milk",
		Row:      2,
	}
	got := formatConfirmation(tx, "")
	if got != "✅ Logged: ₹450 in Groceries (Variable) on 15-Aug-2025 (milk) [row 2]" {
		t.Fatalf("confirmation = %q", got)
	}

	tx.Notes = ""
	got = formatConfirmation(tx, "⚠️ warn")
	if strings.Contains(got, "()") {
		t.Fatalf("empty notes should not render parens: %q", got)
	}
	if !strings.HasSuffix(got, "\n⚠️ warn") {
		t.Fatalf("advisory should trail on its own line: %q", got)
	}
}

func TestFormatAdvisory(t *testing.T) {
	warn := report.BudgetLine{
		Category: "Groceries",
		Spent:    decimal.NewFromInt(450),
		Limit:    decimal.NewFromInt(500),
		Percent:  decimal.NewFromInt(90),
		Status:   report.StatusWarning,
	}
	if got := formatAdvisory(warn); !strings.Contains(got, "90%") || !strings.HasPrefix(got, "⚠️") {
		t.Fatalf("warning advisory = %q", got)
	}

	warn.Status = report.StatusExceeded
	warn.Percent = decimal.NewFromInt(110)
	if got := formatAdvisory(warn); !strings.Contains(got, "exceeded") || !strings.HasPrefix(got, "🚨") {
		t.Fatalf("exceeded advisory = %q", got)
	}

	warn.Status = report.StatusOK
	if got := formatAdvisory(warn); got != "" {
		t.Fatalf("ok status should render nothing, got %q", got)
	}
}

func TestFormatTotalEmpty(t *testing.T) {
	if got := formatTotal(report.TotalReport{Empty: true}); !strings.Contains(got, "No transactions") {
		t.Fatalf("empty total = %q", got)
	}
}

func TestFormatSummaryEmpty(t *testing.T) {
	got := formatSummary(report.Summary{Days: 7, Empty: true})
	if !strings.Contains(got, "last 7 days") {
		t.Fatalf("empty summary = %q", got)
	}
}

func TestFormatRecentEmpty(t *testing.T) {
	if got := formatRecent(nil); !strings.Contains(got, "No transactions") {
		t.Fatalf("empty recent = %q", got)
	}
}
