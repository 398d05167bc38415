package schedule

import (
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	cases := []struct {
		every   Frequency
		in      string
		want    Spec
		wantErr bool
	}{
		{Daily, "21:00", Spec{Every: Daily, Hour: 21}, false},
		{Weekly, "Sun 20:30", Spec{Every: Weekly, Weekday: time.Sunday, Hour: 20, Minute: 30}, false},
		{Weekly, "monday 08:00", Spec{Every: Weekly, Weekday: time.Monday, Hour: 8}, false},
		{Monthly, "1 09:00", Spec{Every: Monthly, Day: 1, Hour: 9}, false},
		{Monthly, "31 23:59", Spec{Every: Monthly, Day: 31, Hour: 23, Minute: 59}, false},
		{Daily, "25:00", Spec{}, true},
		{Daily, "Sun 20:00", Spec{}, true},
		{Weekly, "Someday 20:00", Spec{}, true},
		{Monthly, "0 09:00", Spec{}, true},
		{Monthly, "32 09:00", Spec{}, true},
	}
	for _, tc := range cases {
		got, err := Parse(tc.every, tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("Parse(%s, %q) expected error", tc.every, tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("Parse(%s, %q) unexpected error: %v", tc.every, tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("Parse(%s, %q) = %+v, want %+v", tc.every, tc.in, got, tc.want)
		}
	}
}

func TestNextDaily(t *testing.T) {
	spec := Spec{Every: Daily, Hour: 21}
	now := time.Date(2025, 9, 20, 15, 0, 0, 0, time.UTC)
	if got := spec.Next(now); got != time.Date(2025, 9, 20, 21, 0, 0, 0, time.UTC) {
		t.Fatalf("next = %v", got)
	}
	// Exactly at the instant: fire tomorrow, not now.
	atInstant := time.Date(2025, 9, 20, 21, 0, 0, 0, time.UTC)
	if got := spec.Next(atInstant); got != time.Date(2025, 9, 21, 21, 0, 0, 0, time.UTC) {
		t.Fatalf("next at instant = %v", got)
	}
}

func TestNextWeekly(t *testing.T) {
	spec := Spec{Every: Weekly, Weekday: time.Sunday, Hour: 20}
	// Saturday evening.
	now := time.Date(2025, 9, 20, 22, 0, 0, 0, time.UTC)
	if got := spec.Next(now); got != time.Date(2025, 9, 21, 20, 0, 0, 0, time.UTC) {
		t.Fatalf("next = %v", got)
	}
	// Sunday after the hour: a full week out.
	late := time.Date(2025, 9, 21, 21, 0, 0, 0, time.UTC)
	if got := spec.Next(late); got != time.Date(2025, 9, 28, 20, 0, 0, 0, time.UTC) {
		t.Fatalf("next late sunday = %v", got)
	}
}

func TestNextMonthlyClampsShortMonths(t *testing.T) {
	spec := Spec{Every: Monthly, Day: 31, Hour: 9}
	// Mid-February: day 31 clamps to the 28th.
	now := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)
	if got := spec.Next(now); got != time.Date(2025, 2, 28, 9, 0, 0, 0, time.UTC) {
		t.Fatalf("next = %v", got)
	}
	// After February's clamped instant: March has a real 31st.
	after := time.Date(2025, 2, 28, 10, 0, 0, 0, time.UTC)
	if got := spec.Next(after); got != time.Date(2025, 3, 31, 9, 0, 0, 0, time.UTC) {
		t.Fatalf("next after clamp = %v", got)
	}
}

func TestNextMonthlyYearRollover(t *testing.T) {
	spec := Spec{Every: Monthly, Day: 1, Hour: 9}
	now := time.Date(2025, 12, 15, 0, 0, 0, 0, time.UTC)
	if got := spec.Next(now); got != time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC) {
		t.Fatalf("next = %v", got)
	}
}

func TestWindowDays(t *testing.T) {
	if (Spec{Every: Daily}).WindowDays() != 1 ||
		(Spec{Every: Weekly}).WindowDays() != 7 ||
		(Spec{Every: Monthly}).WindowDays() != 30 {
		t.Fatal("window days mapping broken")
	}
}
