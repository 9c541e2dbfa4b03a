// Package ics imports events from an external ICS calendar feed and
// converts them into time blocks.
package ics

import (
	"errors"
	"time"
)

var (
	ErrEmptyFeed     = errors.New("ICS feed is empty")
	ErrInvertedRange = errors.New("range end is before range start")
)

// Event is the normalized form of a VEVENT. Recurrences are not yet
// expanded; that happens in Expand.
type Event struct {
	UID     string
	Summary string
	Start   time.Time
	End     time.Time
	AllDay  bool

	// Raw RRULE value, empty for one-off events.
	RRule   string
	ExDates []time.Time
}

// Occurrence is a single concrete instance of an event within the
// requested range, after recurrence expansion.
type Occurrence struct {
	EventUID  string
	Summary   string
	Start     time.Time
	End       time.Time
	Recurring bool
}
