package core

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"450", "450", true},
		{"450.50", "450.5", true},
		{"₹450", "450", true},
		{"$1,250.75", "1250.75", true},
		{"Rs.99", "99", true},
		{"Rs 99", "99", true},
		{"1,00,000", "100000", true},
		{"0", "0", true},
		{"-5", "", false},
		{"abc", "", false},
		{"₹", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil {
				t.Fatalf("ParseAmount(%q) unexpected error: %v", tc.in, err)
			}
			if got.String() != tc.want {
				t.Fatalf("ParseAmount(%q) = %s, want %s", tc.in, got, tc.want)
			}
			continue
		}
		if !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("ParseAmount(%q) expected ErrInvalidAmount, got %v", tc.in, err)
		}
	}
}

func TestParseLineWithLeadingDate(t *testing.T) {
	now := time.Date(2025, 9, 20, 18, 30, 0, 0, time.UTC)

	d, err := ParseLine("15-Aug-2025 450 groceries milk", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC); !d.Date.Equal(want) {
		t.Fatalf("date = %v, want %v", d.Date, want)
	}
	if !d.Amount.Equal(decimal.NewFromInt(450)) {
		t.Fatalf("amount = %s, want 450", d.Amount)
	}
	if d.Notes != "groceries milk" {
		t.Fatalf("notes = %q", d.Notes)
	}
}

func TestParseLineSpacedDate(t *testing.T) {
	now := time.Date(2025, 9, 20, 18, 30, 0, 0, time.UTC)

	d, err := ParseLine("1 Sep 2025 250 dinner at kfc", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC); !d.Date.Equal(want) {
		t.Fatalf("date = %v, want %v", d.Date, want)
	}
	if d.Notes != "dinner at kfc" {
		t.Fatalf("notes = %q", d.Notes)
	}
}

func TestParseLineDefaultsToToday(t *testing.T) {
	now := time.Date(2025, 9, 20, 18, 30, 0, 0, time.UTC)

	d, err := ParseLine("120 coffee", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := time.Date(2025, 9, 20, 0, 0, 0, 0, time.UTC); !d.Date.Equal(want) {
		t.Fatalf("date = %v, want today %v", d.Date, want)
	}
	if d.Notes != "coffee" {
		t.Fatalf("notes = %q", d.Notes)
	}
}

func TestParseLineErrors(t *testing.T) {
	now := time.Now()
	cases := []struct {
		in   string
		want error
	}{
		{"", ErrTooFewTokens},
		{"450", ErrTooFewTokens},
		{"15-Aug-2025 450", nil}, // date + amount, empty notes is fine
		{"1 Sep 2025", ErrTooFewTokens},
		{"abc lunch", ErrInvalidAmount},
	}
	for _, tc := range cases {
		_, err := ParseLine(tc.in, now)
		if tc.want == nil {
			if err != nil {
				t.Fatalf("ParseLine(%q) unexpected error: %v", tc.in, err)
			}
			continue
		}
		if !errors.Is(err, tc.want) {
			t.Fatalf("ParseLine(%q) = %v, want %v", tc.in, err, tc.want)
		}
	}
}

func TestIsTotalRequest(t *testing.T) {
	for _, in := range []string{"total", "TOTAL", " Total "} {
		if !IsTotalRequest(in) {
			t.Fatalf("IsTotalRequest(%q) = false", in)
		}
	}
	for _, in := range []string{"total spend", "subtotal", "450 total"} {
		if IsTotalRequest(in) {
			t.Fatalf("IsTotalRequest(%q) = true", in)
		}
	}
}
