// Package schedule computes the instants at which report pushes fire.
// Three frequencies are supported: daily at a wall-clock time, weekly on a
// weekday, and monthly on a day of month (clamped to shorter months).
package schedule

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

type Frequency string

const (
	Daily   Frequency = "daily"
	Weekly  Frequency = "weekly"
	Monthly Frequency = "monthly"
)

type Spec struct {
	Every   Frequency
	Weekday time.Weekday // weekly only
	Day     int          // monthly only, 1-31
	Hour    int
	Minute  int
}

var weekdays = map[string]time.Weekday{
	"sun": time.Sunday, "mon": time.Monday, "tue": time.Tuesday,
	"wed": time.Wednesday, "thu": time.Thursday, "fri": time.Friday,
	"sat": time.Saturday,
}

// Parse reads a schedule string: "15:04" for daily, "Sun 15:04" for weekly,
// "1 15:04" for monthly.
func Parse(every Frequency, s string) (Spec, error) {
	fields := strings.Fields(s)
	spec := Spec{Every: every}

	var clock string
	switch every {
	case Daily:
		if len(fields) != 1 {
			return Spec{}, fmt.Errorf("daily schedule %q: want HH:MM", s)
		}
		clock = fields[0]
	case Weekly:
		if len(fields) != 2 {
			return Spec{}, fmt.Errorf("weekly schedule %q: want <weekday> HH:MM", s)
		}
		wd, ok := weekdays[strings.ToLower(fields[0])[:min(3, len(fields[0]))]]
		if !ok {
			return Spec{}, fmt.Errorf("weekly schedule %q: unknown weekday %q", s, fields[0])
		}
		spec.Weekday = wd
		clock = fields[1]
	case Monthly:
		if len(fields) != 2 {
			return Spec{}, fmt.Errorf("monthly schedule %q: want <day> HH:MM", s)
		}
		day, err := strconv.Atoi(fields[0])
		if err != nil || day < 1 || day > 31 {
			return Spec{}, fmt.Errorf("monthly schedule %q: bad day %q", s, fields[0])
		}
		spec.Day = day
		clock = fields[1]
	default:
		return Spec{}, fmt.Errorf("unknown frequency %q", every)
	}

	t, err := time.Parse("15:04", clock)
	if err != nil {
		return Spec{}, fmt.Errorf("schedule %q: bad time %q", s, clock)
	}
	spec.Hour, spec.Minute = t.Hour(), t.Minute()
	return spec, nil
}

// Next returns the first instant strictly after now at which the spec fires.
func (s Spec) Next(now time.Time) time.Time {
	switch s.Every {
	case Weekly:
		ahead := (int(s.Weekday) - int(now.Weekday()) + 7) % 7
		cand := at(now.AddDate(0, 0, ahead), s.Hour, s.Minute)
		if !cand.After(now) {
			cand = cand.AddDate(0, 0, 7)
		}
		return cand
	case Monthly:
		cand := monthlyAt(now.Year(), now.Month(), s.Day, s.Hour, s.Minute, now.Location())
		if !cand.After(now) {
			y, m := now.Year(), now.Month()+1
			cand = monthlyAt(y, m, s.Day, s.Hour, s.Minute, now.Location())
		}
		return cand
	default: // daily
		cand := at(now, s.Hour, s.Minute)
		if !cand.After(now) {
			cand = cand.AddDate(0, 0, 1)
		}
		return cand
	}
}

// WindowDays is the summary window pushed at this frequency.
func (s Spec) WindowDays() int {
	switch s.Every {
	case Weekly:
		return 7
	case Monthly:
		return 30
	default:
		return 1
	}
}

func at(day time.Time, hour, minute int) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, hour, minute, 0, 0, day.Location())
}

func monthlyAt(year int, month time.Month, day, hour, minute int, loc *time.Location) time.Time {
	// Normalise the month, then clamp the day to its length.
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	last := first.AddDate(0, 1, -1).Day()
	if day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, hour, minute, 0, 0, loc)
}

// Run invokes fn at every instant of the spec until ctx is cancelled.
func Run(ctx context.Context, s Spec, fn func(time.Time)) error {
	for {
		next := s.Next(time.Now())
		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case fired := <-timer.C:
			fn(fired)
		}
	}
}
