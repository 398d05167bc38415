// Package report computes the aggregate views served by the bot: lifetime
// total, windowed summary, budget consumption and per-category detail.
// Every function is a pure computation over a snapshot of ledger records;
// rows whose date or amount fail to parse are skipped, never fatal.
package report

import (
	"time"

	"github.com/shopspring/decimal"

	"kharcha/internal/core"
)

// Status classifies budget consumption.
type Status string

const (
	StatusOK       Status = "ok"
	StatusWarning  Status = "warning"
	StatusExceeded Status = "exceeded"
)

var (
	warnThreshold  = decimal.NewFromInt(80)
	alertThreshold = decimal.NewFromInt(100)
	hundred        = decimal.NewFromInt(100)
)

type TotalReport struct {
	Empty bool
	Total decimal.Decimal
	Count int
}

type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
}

type Summary struct {
	Days       int
	Empty      bool
	Total      decimal.Decimal
	Count      int
	Biggest    core.Transaction
	ByCategory []CategoryTotal
}

type BudgetLine struct {
	Category string
	Spent    decimal.Decimal
	Limit    decimal.Decimal
	Percent  decimal.Decimal
	Status   Status
}

type BudgetReport struct {
	Lines      []BudgetLine
	TotalSpent decimal.Decimal
	TotalLimit decimal.Decimal
}

type DetailLine struct {
	BudgetLine
	Remaining decimal.Decimal
}

type DetailReport struct {
	Lines []DetailLine
}

// parseAll drops malformed rows and returns the rest in store order.
func parseAll(records []core.Record) []core.Transaction {
	out := make([]core.Transaction, 0, len(records))
	for _, r := range records {
		t, err := core.ParseRecord(r)
		if err != nil {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Total sums every valid row over the ledger's lifetime.
func Total(records []core.Record) TotalReport {
	txs := parseAll(records)
	if len(txs) == 0 {
		return TotalReport{Empty: true}
	}
	sum := decimal.Decimal{}
	for _, t := range txs {
		sum = sum.Add(t.Amount)
	}
	return TotalReport{Total: sum, Count: len(txs)}
}

// Summarize reports on the transactions dated within the last days days.
// The biggest transaction keeps the first-encountered row on ties, and the
// category breakdown preserves first-seen order.
func Summarize(records []core.Record, now time.Time, days int) Summary {
	windowStart := core.Day(now).AddDate(0, 0, -days)

	s := Summary{Days: days}
	totals := map[string]decimal.Decimal{}
	var order []string
	for _, t := range parseAll(records) {
		if t.Date.Before(windowStart) {
			continue
		}
		s.Total = s.Total.Add(t.Amount)
		s.Count++
		if s.Count == 1 || t.Amount.GreaterThan(s.Biggest.Amount) {
			s.Biggest = t
		}
		if _, seen := totals[t.Category]; !seen {
			order = append(order, t.Category)
		}
		totals[t.Category] = totals[t.Category].Add(t.Amount)
	}
	if s.Count == 0 {
		return Summary{Days: days, Empty: true}
	}
	s.ByCategory = make([]CategoryTotal, 0, len(order))
	for _, cat := range order {
		s.ByCategory = append(s.ByCategory, CategoryTotal{Category: cat, Total: totals[cat]})
	}
	return s
}

// Classify applies the budget step function: <80% ok, 80-99% warning,
// >=100% exceeded. A zero limit reads as exceeded once anything is spent.
func Classify(spent, limit decimal.Decimal) (decimal.Decimal, Status) {
	if !limit.IsPositive() {
		if spent.IsPositive() {
			return decimal.Decimal{}, StatusExceeded
		}
		return decimal.Decimal{}, StatusOK
	}
	percent := spent.Div(limit).Mul(hundred)
	switch {
	case percent.GreaterThanOrEqual(alertThreshold):
		return percent, StatusExceeded
	case percent.GreaterThanOrEqual(warnThreshold):
		return percent, StatusWarning
	default:
		return percent, StatusOK
	}
}

// spentByCategory sums lifetime spend per exact category label.
func spentByCategory(records []core.Record) map[string]decimal.Decimal {
	out := map[string]decimal.Decimal{}
	for _, t := range parseAll(records) {
		out[t.Category] = out[t.Category].Add(t.Amount)
	}
	return out
}

// Budget evaluates lifetime spend against every catalog ceiling, in catalog
// order, plus the overall spent/limit ratio.
func Budget(records []core.Record, catalog core.Catalog) BudgetReport {
	spent := spentByCategory(records)

	r := BudgetReport{Lines: make([]BudgetLine, 0, len(catalog))}
	for _, b := range catalog {
		s := spent[b.Category]
		percent, status := Classify(s, b.MonthlyLimit)
		r.Lines = append(r.Lines, BudgetLine{
			Category: b.Category,
			Spent:    s,
			Limit:    b.MonthlyLimit,
			Percent:  percent,
			Status:   status,
		})
		r.TotalSpent = r.TotalSpent.Add(s)
		r.TotalLimit = r.TotalLimit.Add(b.MonthlyLimit)
	}
	return r
}

// Detail is the budget view with the remaining headroom exposed; remaining
// goes negative once a ceiling is blown.
func Detail(records []core.Record, catalog core.Catalog) DetailReport {
	budget := Budget(records, catalog)
	d := DetailReport{Lines: make([]DetailLine, 0, len(budget.Lines))}
	for _, l := range budget.Lines {
		d.Lines = append(d.Lines, DetailLine{
			BudgetLine: l,
			Remaining:  l.Limit.Sub(l.Spent),
		})
	}
	return d
}

// Threshold is the inline append-path check: it returns the budget line for
// one category and whether it deserves an advisory (80% or more consumed).
func Threshold(records []core.Record, catalog core.Catalog, category string) (BudgetLine, bool) {
	limit, ok := catalog.Limit(category)
	if !ok {
		return BudgetLine{}, false
	}
	spent := spentByCategory(records)[category]
	percent, status := Classify(spent, limit)
	line := BudgetLine{Category: category, Spent: spent, Limit: limit, Percent: percent, Status: status}
	return line, status != StatusOK
}
