package core

import "github.com/shopspring/decimal"

// CategoryBudget is a configured monthly ceiling for one category.
type CategoryBudget struct {
	Category     string
	MonthlyLimit decimal.Decimal
}

// Catalog is the ordered set of recognised categories with their budgets.
// Order drives report rendering and the correction keyboard. The catalog is
// loaded once at startup and never mutated.
type Catalog []CategoryBudget

func (c Catalog) Categories() []string {
	out := make([]string, len(c))
	for i, b := range c {
		out[i] = b.Category
	}
	return out
}

func (c Catalog) Limit(category string) (decimal.Decimal, bool) {
	for _, b := range c {
		if b.Category == category {
			return b.MonthlyLimit, true
		}
	}
	return decimal.Decimal{}, false
}

// Contains reports whether category is a catalog key.
func (c Catalog) Contains(category string) bool {
	_, ok := c.Limit(category)
	return ok
}

// DefaultCatalog is the built-in budget configuration, overridable via
// BUDGETS_JSON.
func DefaultCatalog() Catalog {
	limits := []struct {
		category string
		limit    int64
	}{
		{"Groceries", 6000},
		{"Dining", 4000},
		{"Transport", 3000},
		{"Shopping", 5000},
		{"Entertainment", 2000},
		{"Health", 3000},
		{"Utilities", 2500},
		{"Rent", 15000},
		{"EMI", 12000},
		{"Insurance", 3000},
		{"Subscriptions", 1500},
		{CatchAll, 4000},
	}
	out := make(Catalog, len(limits))
	for i, l := range limits {
		out[i] = CategoryBudget{Category: l.category, MonthlyLimit: decimal.NewFromInt(l.limit)}
	}
	return out
}
