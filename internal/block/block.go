// Package block defines the core domain types for timeaudit.
package block

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/palisadeengineering/timeaudit/internal/dateutil"
)

// Validation errors.
var (
	ErrEmptyActivityName = errors.New("activity name cannot be empty")
	ErrInvalidQuadrant   = errors.New("quadrant must be one of q1, q2, q3, q4")
	ErrInvalidEnergy     = errors.New("energy rating must be 'gives', 'neutral' or 'drains'")
	ErrInvalidTimeFormat = errors.New("time must be in HH:MM format")
	ErrEndBeforeStart    = errors.New("end time must be after start time")
)

// Domain errors.
var (
	ErrTimeBlockOverlap = errors.New("time block overlaps with an existing block")
	ErrBlockNotFound    = errors.New("time block not found")
	ErrTagNotFound      = errors.New("tag not found")
)

// Quadrant categorizes a block on the urgent/important value matrix.
type Quadrant string

const (
	QuadrantQ1 Quadrant = "q1" // urgent and important
	QuadrantQ2 Quadrant = "q2" // not urgent, important
	QuadrantQ3 Quadrant = "q3" // urgent, not important
	QuadrantQ4 Quadrant = "q4" // neither
)

// Valid returns true if the quadrant is a valid value.
func (q Quadrant) Valid() bool {
	switch q {
	case QuadrantQ1, QuadrantQ2, QuadrantQ3, QuadrantQ4:
		return true
	default:
		return false
	}
}

// Energy rates how an activity affects the user's energy.
type Energy string

const (
	EnergyGives   Energy = "gives"
	EnergyNeutral Energy = "neutral"
	EnergyDrains  Energy = "drains"
)

// Valid returns true if the energy rating is a valid value.
func (e Energy) Valid() bool {
	switch e {
	case EnergyGives, EnergyNeutral, EnergyDrains:
		return true
	default:
		return false
	}
}

// Source discriminates between blocks the user created and blocks imported
// from an external calendar that have not been accepted yet.
type Source string

const (
	SourceLive     Source = "live"
	SourceExternal Source = "external"
)

// TimeBlock represents a scheduled activity occupying a contiguous time
// interval on a single calendar date. A block never spans midnight; the
// importer splits cross-midnight events into two blocks.
type TimeBlock struct {
	ID           string
	ActivityName string
	Quadrant     Quadrant
	Energy       Energy
	Date         time.Time
	Start        string // "HH:MM" format
	End          string // "HH:MM" format
	Source       Source

	// External calendar correlation. Empty for live blocks.
	ExternalEventID string

	// Recurrence metadata. Instances expanded from a recurring parent carry
	// the parent's ID and the expansion flag.
	IsRecurring          bool
	RecurrenceRule       string
	IsRecurrenceInstance bool
	ParentBlockID        string

	TagIDs []string

	CreatedAt time.Time
}

// Tag decorates blocks for rendering. Opaque to the grid algorithms.
type Tag struct {
	ID    string
	Name  string
	Color string // hex, e.g. "#a6e3a1"
}

// New creates a new TimeBlock with validation.
// date can be empty (defaults to today) or in YYYY-MM-DD format.
// quadrant must be q1..q4, energy must be gives/neutral/drains.
// start and end must be in HH:MM format, with end after start.
func New(activityName, quadrant, energy, date, start, end string) (*TimeBlock, error) {
	if activityName == "" {
		return nil, ErrEmptyActivityName
	}

	q, err := parseQuadrant(quadrant)
	if err != nil {
		return nil, err
	}

	en, err := parseEnergy(energy)
	if err != nil {
		return nil, err
	}

	day, err := dateutil.ParseDate(date)
	if err != nil {
		return nil, err
	}

	if err := validateTimeFormat(start); err != nil {
		return nil, fmt.Errorf("start time: %w", err)
	}

	if err := validateTimeFormat(end); err != nil {
		return nil, fmt.Errorf("end time: %w", err)
	}

	if end <= start {
		return nil, ErrEndBeforeStart
	}

	return &TimeBlock{
		ID:           uuid.NewString(),
		ActivityName: activityName,
		Quadrant:     q,
		Energy:       en,
		Date:         day,
		Start:        start,
		End:          end,
		Source:       SourceLive,
		CreatedAt:    time.Now(),
	}, nil
}

func parseQuadrant(s string) (Quadrant, error) {
	switch Quadrant(s) {
	case QuadrantQ1, QuadrantQ2, QuadrantQ3, QuadrantQ4:
		return Quadrant(s), nil
	default:
		return "", ErrInvalidQuadrant
	}
}

func parseEnergy(s string) (Energy, error) {
	e := Energy(s)
	if !e.Valid() {
		return "", ErrInvalidEnergy
	}
	return e, nil
}

func validateTimeFormat(s string) error {
	if len(s) != 5 {
		return ErrInvalidTimeFormat
	}
	// The exclusive day end; time.Parse rejects hour 24.
	if s == "24:00" {
		return nil
	}
	if _, err := time.Parse("15:04", s); err != nil {
		return ErrInvalidTimeFormat
	}
	return nil
}

// IsExternal returns true if the block was imported from an external calendar.
func (b *TimeBlock) IsExternal() bool {
	return b.Source == SourceExternal
}

// StartMinutes returns the start time as minutes since midnight.
func (b *TimeBlock) StartMinutes() int {
	return TimeToMinutes(b.Start)
}

// EndMinutes returns the end time as minutes since midnight.
func (b *TimeBlock) EndMinutes() int {
	return TimeToMinutes(b.End)
}

// Duration returns the block duration in minutes.
func (b *TimeBlock) Duration() int {
	return b.EndMinutes() - b.StartMinutes()
}

// OverlapsWith returns true if this block overlaps with another block.
// Blocks must be on the same day and have overlapping time ranges.
func (b *TimeBlock) OverlapsWith(other *TimeBlock) bool {
	if other == nil {
		return false
	}
	if !dateutil.SameDay(b.Date, other.Date) {
		return false
	}
	return TimesOverlap(b.Start, b.End, other.Start, other.End)
}

// DateKey returns the block's date formatted as YYYY-MM-DD.
func (b *TimeBlock) DateKey() string {
	return b.Date.Format("2006-01-02")
}
