package ics

import (
	"fmt"
	"time"

	"github.com/palisadeengineering/timeaudit/internal/block"
	"github.com/palisadeengineering/timeaudit/internal/dateutil"
)

// Blocks converts occurrences into external time blocks. An occurrence
// that crosses midnight is split into one block per calendar day, since
// a block never spans midnight.
func Blocks(occs []Occurrence) []*block.TimeBlock {
	var out []*block.TimeBlock
	for _, occ := range occs {
		out = append(out, splitAtMidnight(occ)...)
	}
	return out
}

func splitAtMidnight(occ Occurrence) []*block.TimeBlock {
	var out []*block.TimeBlock

	cur := occ.Start
	for segment := 0; cur.Before(occ.End); segment++ {
		day := dateutil.TruncateToDay(cur)
		nextMidnight := day.AddDate(0, 0, 1)

		segEnd := occ.End
		if nextMidnight.Before(segEnd) {
			segEnd = nextMidnight
		}

		start := cur.Format("15:04")
		end := segEnd.Format("15:04")
		if segEnd.Equal(nextMidnight) {
			// Lexicographically above every real time of day, so overlap
			// and ordering comparisons on the string form still hold.
			end = "24:00"
		}

		if end > start {
			out = append(out, &block.TimeBlock{
				ActivityName:         summaryOrDefault(occ.Summary),
				Date:                 day,
				Start:                start,
				End:                  end,
				Source:               block.SourceExternal,
				ExternalEventID:      occurrenceKey(occ, segment),
				IsRecurrenceInstance: occ.Recurring,
			})
		}

		cur = nextMidnight
	}

	return out
}

// occurrenceKey builds a stable identifier for one rendered segment of an
// occurrence, so that re-importing the same feed updates in place.
func occurrenceKey(occ Occurrence, segment int) string {
	return fmt.Sprintf("%s#%s#%d", occ.EventUID, occ.Start.UTC().Format(time.RFC3339), segment)
}

func summaryOrDefault(s string) string {
	if s == "" {
		return "(untitled event)"
	}
	return s
}
