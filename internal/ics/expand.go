package ics

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
)

// defaultMaxPerEvent caps recurrence expansion so a pathological RRULE
// cannot blow up an import.
const defaultMaxPerEvent = 1000

// ExpandConfig controls recurrence expansion.
type ExpandConfig struct {
	// Location is the timezone occurrences are converted into.
	// Defaults to time.Local.
	Location *time.Location

	// RangeStart and RangeEnd bound the occurrences returned (inclusive).
	RangeStart time.Time
	RangeEnd   time.Time

	// MaxPerEvent caps occurrences per event. Zero means defaultMaxPerEvent.
	MaxPerEvent int
}

// Expand turns parsed events into concrete occurrences within the range.
// One-off events yield at most one occurrence; RRULE events are expanded
// with EXDATE exceptions removed. All-day events are skipped since the
// time grid only renders timed blocks.
func Expand(events []Event, cfg ExpandConfig) ([]Occurrence, error) {
	if cfg.RangeEnd.Before(cfg.RangeStart) {
		return nil, ErrInvertedRange
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.MaxPerEvent <= 0 {
		cfg.MaxPerEvent = defaultMaxPerEvent
	}

	var out []Occurrence
	for _, ev := range events {
		if ev.AllDay {
			continue
		}

		if ev.RRule == "" {
			if ev.End.Before(cfg.RangeStart) || ev.Start.After(cfg.RangeEnd) {
				continue
			}
			out = append(out, makeOccurrence(ev, ev.Start, cfg.Location, false))
			continue
		}

		occs, err := expandRecurring(ev, cfg)
		if err != nil {
			return nil, fmt.Errorf("expanding %s: %w", ev.UID, err)
		}
		out = append(out, occs...)
	}

	return out, nil
}

func expandRecurring(ev Event, cfg ExpandConfig) ([]Occurrence, error) {
	r, err := rrule.StrToRRule(ev.RRule)
	if err != nil {
		return nil, fmt.Errorf("parsing RRULE %q: %w", ev.RRule, err)
	}
	r.DTStart(ev.Start)

	var set rrule.Set
	set.RRule(r)
	for _, ex := range ev.ExDates {
		set.ExDate(ex.In(ev.Start.Location()))
	}

	// Between works in the rule's own timezone.
	rangeStart := cfg.RangeStart.In(ev.Start.Location())
	rangeEnd := cfg.RangeEnd.In(ev.Start.Location())

	starts := set.Between(rangeStart, rangeEnd, true)
	if len(starts) > cfg.MaxPerEvent {
		starts = starts[:cfg.MaxPerEvent]
	}

	out := make([]Occurrence, 0, len(starts))
	for _, s := range starts {
		out = append(out, makeOccurrence(ev, s, cfg.Location, true))
	}
	return out, nil
}

// makeOccurrence builds an occurrence starting at start, preserving the
// event's duration and converting into the display location.
func makeOccurrence(ev Event, start time.Time, loc *time.Location, recurring bool) Occurrence {
	dur := ev.End.Sub(ev.Start)
	return Occurrence{
		EventUID:  ev.UID,
		Summary:   ev.Summary,
		Start:     start.In(loc),
		End:       start.Add(dur).In(loc),
		Recurring: recurring,
	}
}
