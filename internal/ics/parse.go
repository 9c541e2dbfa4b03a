package ics

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
)

// Parse reads an ICS payload into normalized events. Malformed VEVENTs
// (missing UID or start time) are skipped rather than failing the whole
// feed; calendar providers are not uniformly well-behaved.
func Parse(body []byte) ([]Event, error) {
	if len(body) == 0 {
		return nil, ErrEmptyFeed
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing calendar: %w", err)
	}

	var events []Event
	for _, ve := range cal.Events() {
		ev, ok := parseEvent(ve)
		if !ok {
			continue
		}
		events = append(events, ev)
	}

	return events, nil
}

func parseEvent(ve *ical.VEvent) (Event, bool) {
	var ev Event

	uid := ve.GetProperty(ical.ComponentPropertyUniqueId)
	if uid == nil || uid.Value == "" {
		return ev, false
	}
	ev.UID = uid.Value

	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		ev.Summary = p.Value
	}

	start, err := ve.GetStartAt()
	if err != nil || start.IsZero() {
		return ev, false
	}
	ev.Start = start

	end, err := ve.GetEndAt()
	if err != nil || end.IsZero() || !end.After(start) {
		// Feeds without DTEND get a one-hour default.
		end = start.Add(time.Hour)
	}
	ev.End = end

	ev.AllDay = isAllDay(ve)
	if ev.AllDay {
		day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
		ev.Start = day
		ev.End = day.Add(24 * time.Hour)
	}

	if p := ve.GetProperty(ical.ComponentPropertyRrule); p != nil {
		ev.RRule = p.Value
	}

	for _, p := range ve.GetProperties(ical.ComponentPropertyExdate) {
		for _, part := range strings.Split(p.Value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if t, err := parseICSTime(part, start.Location()); err == nil {
				ev.ExDates = append(ev.ExDates, t)
			}
		}
	}

	return ev, true
}

// isAllDay reports whether DTSTART carries VALUE=DATE or a date-only value.
func isAllDay(ve *ical.VEvent) bool {
	p := ve.GetProperty(ical.ComponentPropertyDtStart)
	if p == nil {
		return false
	}
	if params := p.ICalParameters; params != nil {
		if vs, ok := params["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
			return true
		}
	}
	return !strings.Contains(p.Value, "T")
}

// parseICSTime parses the basic ICS date and date-time forms used by
// EXDATE values. Forms without a trailing Z are interpreted in loc.
func parseICSTime(v string, loc *time.Location) (time.Time, error) {
	if strings.HasSuffix(v, "Z") {
		return time.Parse("20060102T150405Z", v)
	}
	if strings.Contains(v, "T") {
		return time.ParseInLocation("20060102T150405", v, loc)
	}
	return time.ParseInLocation("20060102", v, loc)
}
