// Package dateutil provides date parsing and calendar-week utilities.
package dateutil

import (
	"errors"
	"time"
)

// Validation errors.
var (
	ErrInvalidDateFormat  = errors.New("date must be in YYYY-MM-DD format")
	ErrEndDateBeforeStart = errors.New("end date must be on or after start date")
)

// DateRange represents a validated date range.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange creates a new DateRange with validation.
// startDate can be empty (defaults to today) or in YYYY-MM-DD format.
// endDate can be empty (defaults to startDate) or in YYYY-MM-DD format.
// Returns an error if endDate is before startDate.
func NewDateRange(startDate, endDate string) (*DateRange, error) {
	start, err := ParseDate(startDate)
	if err != nil {
		return nil, err
	}

	var end time.Time
	if endDate == "" {
		end = start
	} else {
		end, err = ParseDate(endDate)
		if err != nil {
			return nil, err
		}
	}

	if end.Before(start) {
		return nil, ErrEndDateBeforeStart
	}

	return &DateRange{Start: start, End: end}, nil
}

// ParseDate parses a date string in YYYY-MM-DD format.
// If the string is empty, returns today's date.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return TruncateToDay(time.Now()), nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return t, nil
}

// TruncateToDay returns t with time set to midnight.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether two times fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// StartOfWeek returns the first day of the week containing t.
// weekStartsOn selects the convention: time.Monday for ISO weeks,
// time.Sunday for US-style weeks.
func StartOfWeek(t time.Time, weekStartsOn time.Weekday) time.Time {
	t = TruncateToDay(t)
	diff := int(t.Weekday()) - int(weekStartsOn)
	if diff < 0 {
		diff += 7
	}
	return t.AddDate(0, 0, -diff)
}

// WeekRange returns the first and last day of the week containing t.
func WeekRange(t time.Time, weekStartsOn time.Weekday) (first, last time.Time) {
	first = StartOfWeek(t, weekStartsOn)
	last = first.AddDate(0, 0, 6)
	return first, last
}

// DaysBetween returns the number of whole days from a to b, truncated to
// day boundaries. Negative if b is before a. Rounding absorbs zone offsets
// and DST shifts when the two times carry different locations.
func DaysBetween(a, b time.Time) int {
	a = TruncateToDay(a)
	b = TruncateToDay(b)
	return int(b.Sub(a).Round(24*time.Hour).Hours() / 24)
}
