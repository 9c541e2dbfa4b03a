// Package grid implements the calendar grid engine for the time-audit week
// view: coordinate mapping between wall-clock time and grid offsets, the
// pointer gesture state machine, snap-to-neighbor placement, and the
// overlapping-event column layout.
//
// All algorithms are pure and synchronous. The only stateful piece is the
// gesture Tracker, whose state lives for the duration of one pointer gesture.
package grid

import (
	"time"

	"github.com/palisadeengineering/timeaudit/internal/dateutil"
)

const (
	// DefaultGranularity is the snapping granularity in minutes.
	DefaultGranularity = 15
	// DefaultSnapThreshold is the maximum distance in minutes within which a
	// dropped block is pulled to a neighboring block's edge.
	DefaultSnapThreshold = 30
	// DefaultEdgeTolerance is how far outside the grid (in grid units) a
	// pointer may land and still resolve to the nearest valid column.
	DefaultEdgeTolerance = 10
)

// Config holds the grid geometry and visible-hour window.
// The visible window covers [StartHour:00, (EndHour+1):00).
type Config struct {
	StartHour          int     // first visible hour, e.g. 6
	EndHour            int     // last visible hour, e.g. 21
	GranularityMinutes int     // snapping granularity; 0 means DefaultGranularity
	HourHeight         float64 // vertical grid units per hour
	GutterWidth        float64 // leading time-gutter width in grid units
	NumDays            int     // visible day columns, 7 for a week view
	FirstDate          time.Time
	SnapThreshold      int     // minutes; 0 means DefaultSnapThreshold
	EdgeTolerance      float64 // grid units; 0 means DefaultEdgeTolerance
}

// Granularity returns the effective snapping granularity in minutes.
func (c Config) Granularity() int {
	if c.GranularityMinutes <= 0 {
		return DefaultGranularity
	}
	return c.GranularityMinutes
}

// WindowStart returns the first visible minute of the day.
func (c Config) WindowStart() int {
	return c.StartHour * 60
}

// WindowEnd returns the minute just past the visible window.
func (c Config) WindowEnd() int {
	return (c.EndHour + 1) * 60
}

// snapThreshold returns the effective snap threshold in minutes.
func (c Config) snapThreshold() int {
	if c.SnapThreshold <= 0 {
		return DefaultSnapThreshold
	}
	return c.SnapThreshold
}

// edgeTolerance returns the effective pointer edge tolerance.
func (c Config) edgeTolerance() float64 {
	if c.EdgeTolerance <= 0 {
		return DefaultEdgeTolerance
	}
	return c.EdgeTolerance
}

// DayIndexToDate converts a day column index to a calendar date.
func (c Config) DayIndexToDate(day int) time.Time {
	return dateutil.TruncateToDay(c.FirstDate).AddDate(0, 0, day)
}

// DateToDayIndex converts a date to a day column index.
// Returns -1 if the date falls outside the visible range.
func (c Config) DateToDayIndex(date time.Time) int {
	days := dateutil.DaysBetween(c.FirstDate, date)
	if days < 0 || days >= c.NumDays {
		return -1
	}
	return days
}
