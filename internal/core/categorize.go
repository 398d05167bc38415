package core

import "strings"

// CatchAll is the category applied when no keyword matches.
const CatchAll = "Other"

// KeywordRule binds a lowercase keyword to a category. Rules live in a slice,
// not a map: the first rule whose keyword appears in the notes wins, so table
// order is part of the contract.
type KeywordRule struct {
	Keyword  string
	Category string
}

// Categorizer infers a category from free-text notes by ordered,
// case-insensitive substring match.
type Categorizer struct {
	rules    []KeywordRule
	catchAll string
}

func NewCategorizer(rules []KeywordRule, catchAll string) Categorizer {
	if catchAll == "" {
		catchAll = CatchAll
	}
	return Categorizer{rules: rules, catchAll: catchAll}
}

// Categorize returns the category of the first rule whose keyword is a
// substring of the lowercased notes, or the catch-all when nothing matches.
func (c Categorizer) Categorize(notes string) string {
	lowered := strings.ToLower(notes)
	for _, r := range c.rules {
		if strings.Contains(lowered, strings.ToLower(r.Keyword)) {
			return r.Category
		}
	}
	return c.catchAll
}

// TypeDeriver classifies categories as Fixed or Variable. A category is
// Fixed when its label contains any of the configured markers.
type TypeDeriver struct {
	markers []string
}

func NewTypeDeriver(markers []string) TypeDeriver {
	return TypeDeriver{markers: markers}
}

// DeriveType is a pure function of the category label.
func (d TypeDeriver) DeriveType(category string) string {
	for _, m := range d.markers {
		if strings.Contains(category, m) {
			return TypeFixed
		}
	}
	return TypeVariable
}

// DefaultRules is the built-in keyword table. Order matters; see Categorize.
func DefaultRules() []KeywordRule {
	return []KeywordRule{
		{"grocery", "Groceries"},
		{"groceries", "Groceries"},
		{"milk", "Groceries"},
		{"vegetable", "Groceries"},
		{"supermarket", "Groceries"},
		{"restaurant", "Dining"},
		{"dinner", "Dining"},
		{"lunch", "Dining"},
		{"breakfast", "Dining"},
		{"coffee", "Dining"},
		{"swiggy", "Dining"},
		{"zomato", "Dining"},
		{"uber", "Transport"},
		{"ola", "Transport"},
		{"fuel", "Transport"},
		{"petrol", "Transport"},
		{"metro", "Transport"},
		{"bus", "Transport"},
		{"train", "Transport"},
		{"amazon", "Shopping"},
		{"flipkart", "Shopping"},
		{"clothes", "Shopping"},
		{"movie", "Entertainment"},
		{"concert", "Entertainment"},
		{"game", "Entertainment"},
		{"doctor", "Health"},
		{"pharmacy", "Health"},
		{"medicine", "Health"},
		{"gym", "Health"},
		{"electricity", "Utilities"},
		{"water bill", "Utilities"},
		{"internet", "Utilities"},
		{"mobile", "Utilities"},
		{"rent", "Rent"},
		{"emi", "EMI"},
		{"loan", "EMI"},
		{"insurance", "Insurance"},
		{"netflix", "Subscriptions"},
		{"spotify", "Subscriptions"},
		{"subscription", "Subscriptions"},
	}
}

// DefaultFixedMarkers mirrors the categories treated as recurring
// obligations in the original sheet.
func DefaultFixedMarkers() []string {
	return []string{"EMI", "Loan", "Rent", "Insurance", "Subscriptions", "Utilities"}
}
