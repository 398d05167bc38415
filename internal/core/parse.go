// Package core holds the expense interpretation engine: free-text parsing,
// category inference and the transaction model shared by every surface.
package core

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// currencyGlyphs are stripped from the front of an amount token before
// numeric parsing. "Rs." must come before "Rs" so the longer prefix wins.
var currencyGlyphs = []string{"₹", "$", "€", "£", "Rs.", "Rs"}

// ParseAmount converts an amount token to a non-negative decimal. It accepts
// an optional leading currency glyph and thousands separators (commas).
//
// Examples:
//
//	ParseAmount("450")      -> 450
//	ParseAmount("₹1,250.50") -> 1250.50
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	for _, g := range currencyGlyphs {
		if strings.HasPrefix(s, g) {
			s = strings.TrimSpace(strings.TrimPrefix(s, g))
			break
		}
	}
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return decimal.Decimal{}, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if d.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("%w: negative", ErrInvalidAmount)
	}
	return d, nil
}

// ParseLine interprets one trimmed input line as an expense draft.
//
// The line is split on whitespace. A leading date is recognised either as a
// single "02-Jan-2006" token or as the legacy three-token "2 Jan 2006" form;
// when no date parses, the expense is dated to now's calendar day and the
// first token must be the amount. Everything after the amount is kept
// verbatim as notes.
func ParseLine(line string, now time.Time) (Draft, error) {
	tokens := strings.Fields(line)
	if len(tokens) < 2 {
		return Draft{}, ErrTooFewTokens
	}

	date := Day(now)
	rest := tokens
	if d, err := time.Parse(DateLayout, tokens[0]); err == nil {
		date = Day(d)
		rest = tokens[1:]
	} else if len(tokens) >= 3 {
		if d, err := time.Parse(DateLayoutSpaced, strings.Join(tokens[:3], " ")); err == nil {
			date = Day(d)
			rest = tokens[3:]
		}
	}
	if len(rest) < 1 {
		return Draft{}, ErrTooFewTokens
	}

	amount, err := ParseAmount(rest[0])
	if err != nil {
		return Draft{}, err
	}

	return Draft{
		Date:   date,
		Amount: amount,
		Notes:  strings.Join(rest[1:], " "),
	}, nil
}

// IsTotalRequest reports whether the input is the literal word "total",
// which bypasses expense parsing and is served as a lifetime total report.
func IsTotalRequest(line string) bool {
	return strings.EqualFold(strings.TrimSpace(line), "total")
}
