// Package period resolves calendar phrases like "june 2025",
// "first week of june" or "last month" into concrete date ranges.
// Phrases without a year are resolved against a reference date.
package period

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Range is an inclusive range of calendar days.
type Range struct {
	Start time.Time
	End   time.Time
}

// Month returns the range as YYYY-MM, using the start date.
func (r Range) Month() string {
	return r.Start.Format("2006-01")
}

// String returns "YYYY-MM-DD to YYYY-MM-DD".
func (r Range) String() string {
	return fmt.Sprintf("%s to %s",
		r.Start.Format(time.DateOnly), r.End.Format(time.DateOnly))
}

// MonthCondition returns a SQL predicate that matches the month of
// the range on the given timestamp column.
func (r Range) MonthCondition(col string) string {
	return fmt.Sprintf(
		"DATE_PART('month', %s) = %d AND DATE_PART('year', %s) = %d",
		col, int(r.Start.Month()), col, r.Start.Year(),
	)
}

// BetweenCondition returns a SQL predicate of the form
// col BETWEEN 'start' AND 'end'.
func (r Range) BetweenCondition(col string) string {
	return fmt.Sprintf("%s BETWEEN '%s' AND '%s'",
		col, r.Start.Format(time.DateOnly), r.End.Format(time.DateOnly))
}

var monthNames = []string{
	"january", "february", "march", "april", "may", "june", "july",
	"august", "september", "october", "november", "december",
}

var (
	monthAlt = strings.Join(monthNames, "|")

	// MonthYearRe matches "june 2025".
	MonthYearRe = regexp.MustCompile(`\b(` + monthAlt + `)\s+(\d{4})\b`)

	// FirstWeekRe matches "first week of june" with an optional year.
	FirstWeekRe = regexp.MustCompile(
		`\bfirst\s+week\s+of\s+(` + monthAlt + `)(?:\s+(\d{4}))?\b`)

	monthRe = regexp.MustCompile(`\b(` + monthAlt + `)\b`)
)

// Resolver turns phrases into date ranges.
type Resolver struct {
	now func() time.Time
}

// Option configures a Resolver.
type Option func(*Resolver)

// OptNow sets the clock used for phrases without an explicit year.
func OptNow(fn func() time.Time) Option {
	return func(r *Resolver) {
		if fn != nil {
			r.now = fn
		}
	}
}

// OptReference fixes the reference date. A zero time is ignored.
func OptReference(t time.Time) Option {
	return func(r *Resolver) {
		if !t.IsZero() {
			r.now = func() time.Time { return t }
		}
	}
}

// New creates a Resolver that uses the current time unless
// options say otherwise.
func New(opts ...Option) Resolver {
	res := Resolver{now: time.Now}
	for _, opt := range opts {
		opt(&res)
	}
	return res
}

// Now returns the reference date the resolver uses.
func (r Resolver) Now() time.Time {
	return r.now()
}

// MonthYear resolves the first "<month> <year>" phrase in the text.
func (r Resolver) MonthYear(text string) (Range, bool) {
	m := MonthYearRe.FindStringSubmatch(strings.ToLower(text))
	if m == nil {
		return Range{}, false
	}
	year, err := strconv.Atoi(m[2])
	if err != nil {
		return Range{}, false
	}
	return monthRange(year, parseMonth(m[1])), true
}

// Month resolves a bare month name to its latest occurrence
// that is not in the future.
func (r Resolver) Month(text string) (Range, bool) {
	m := monthRe.FindStringSubmatch(strings.ToLower(text))
	if m == nil {
		return Range{}, false
	}
	return monthRange(r.yearFor(parseMonth(m[1])), parseMonth(m[1])), true
}

// FirstWeek resolves "first week of <month> [year]" to the first
// seven days of the month.
func (r Resolver) FirstWeek(text string) (Range, bool) {
	m := FirstWeekRe.FindStringSubmatch(strings.ToLower(text))
	if m == nil {
		return Range{}, false
	}
	month := parseMonth(m[1])
	year := r.yearFor(month)
	if m[2] != "" {
		if y, err := strconv.Atoi(m[2]); err == nil {
			year = y
		}
	} else if y, ok := r.yearNearby(text); ok {
		year = y
	}
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return Range{Start: start, End: start.AddDate(0, 0, 6)}, true
}

// LastMonth returns the calendar month before the reference date.
func (r Resolver) LastMonth() Range {
	now := r.now()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	prev := first.AddDate(0, -1, 0)
	return monthRange(prev.Year(), prev.Month())
}

// ThisMonth returns the calendar month of the reference date.
func (r Resolver) ThisMonth() Range {
	now := r.now()
	return monthRange(now.Year(), now.Month())
}

// yearFor picks the latest year in which the month has already started.
func (r Resolver) yearFor(month time.Month) int {
	now := r.now()
	if month > now.Month() {
		return now.Year() - 1
	}
	return now.Year()
}

// yearNearby finds a year that follows a month name, so that
// "first week of june" in "... first week of june 2025" gets 2025.
func (r Resolver) yearNearby(text string) (int, bool) {
	m := MonthYearRe.FindStringSubmatch(strings.ToLower(text))
	if m == nil {
		return 0, false
	}
	y, err := strconv.Atoi(m[2])
	return y, err == nil
}

func monthRange(year int, month time.Month) Range {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return Range{Start: start, End: start.AddDate(0, 1, -1)}
}

func parseMonth(s string) time.Month {
	for i, v := range monthNames {
		if v == s {
			return time.Month(i + 1)
		}
	}
	return time.January
}
