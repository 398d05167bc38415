package bot

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"kharcha/internal/core"
	"kharcha/internal/report"
)

// money renders an amount for chat. Storage stays currency-agnostic; the
// glyph is purely presentation.
func money(d decimal.Decimal) string {
	return "₹" + d.String()
}

func greeting() string {
	return strings.Join([]string{
		"👋 Send an expense as free text and I will log it.",
		"",
		"Format: [dd-Mon-yyyy] amount notes",
		"Example: 15-Aug-2025 450 groceries milk",
		"Without a date the expense is logged for today.",
		"",
		"/summary [days] — spending over the last days (default 7)",
		"/total — lifetime total (or just send the word \"total\")",
		"/recent — last 10 entries",
		"/delete <row> — remove one entry",
		"/budget — budget status per category",
		"/categories — spend and remaining per category",
	}, "\n")
}

func formatConfirmation(t core.Transaction, advisory string) string {
	msg := fmt.Sprintf("✅ Logged: %s in %s (%s) on %s",
		money(t.Amount), t.Category, t.Type, t.Date.Format(core.DateLayout))
	if t.Notes != "" {
		msg += fmt.Sprintf(" (%s)", t.Notes)
	}
	msg += fmt.Sprintf(" [row %d]", t.Row)
	if advisory != "" {
		msg += "\n" + advisory
	}
	return msg
}

func formatAdvisory(line report.BudgetLine) string {
	percent := line.Percent.Round(0)
	switch line.Status {
	case report.StatusExceeded:
		return fmt.Sprintf("🚨 %s budget exceeded: %s%% used (%s of %s)",
			line.Category, percent, money(line.Spent), money(line.Limit))
	case report.StatusWarning:
		return fmt.Sprintf("⚠️ %s at %s%% of budget (%s of %s)",
			line.Category, percent, money(line.Spent), money(line.Limit))
	default:
		return ""
	}
}

func formatTotal(r report.TotalReport) string {
	if r.Empty {
		return "No transactions logged yet."
	}
	return fmt.Sprintf("💰 Lifetime total: %s across %d transactions", money(r.Total), r.Count)
}

func formatSummary(s report.Summary) string {
	if s.Empty {
		return fmt.Sprintf("No transactions in the last %d days.", s.Days)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "📊 Last %d days: %s across %d transactions\n", s.Days, money(s.Total), s.Count)
	fmt.Fprintf(&b, "Biggest: %s on %s", money(s.Biggest.Amount), s.Biggest.Date.Format(core.DateLayout))
	if s.Biggest.Notes != "" {
		fmt.Fprintf(&b, " (%s)", s.Biggest.Notes)
	}
	b.WriteString("\n")
	for _, ct := range s.ByCategory {
		fmt.Fprintf(&b, "• %s: %s\n", ct.Category, money(ct.Total))
	}
	return strings.TrimRight(b.String(), "\n")
}

func statusIcon(s report.Status) string {
	switch s {
	case report.StatusExceeded:
		return "🚨"
	case report.StatusWarning:
		return "⚠️"
	default:
		return "✅"
	}
}

func formatBudget(r report.BudgetReport) string {
	var b strings.Builder
	b.WriteString("📒 Budget status\n")
	for _, l := range r.Lines {
		fmt.Fprintf(&b, "%s %s: %s of %s (%s%%)\n",
			statusIcon(l.Status), l.Category, money(l.Spent), money(l.Limit), l.Percent.Round(0))
	}
	fmt.Fprintf(&b, "Overall: %s of %s", money(r.TotalSpent), money(r.TotalLimit))
	return b.String()
}

func formatDetail(r report.DetailReport) string {
	var b strings.Builder
	b.WriteString("🗂 Category detail\n")
	for _, l := range r.Lines {
		fmt.Fprintf(&b, "%s %s: spent %s, remaining %s\n",
			statusIcon(l.Status), l.Category, money(l.Spent), money(l.Remaining))
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatRecent(records []core.Record) string {
	if len(records) == 0 {
		return "No transactions logged yet."
	}
	var b strings.Builder
	b.WriteString("🧾 Recent entries\n")
	for _, r := range records {
		fmt.Fprintf(&b, "%d. %s %s %s", r.Row, r.Date, r.Amount, r.Category)
		if r.Notes != "" {
			fmt.Fprintf(&b, " — %s", r.Notes)
		}
		b.WriteString("\n")
	}
	b.WriteString("Use /delete <row> to remove one.")
	return b.String()
}
