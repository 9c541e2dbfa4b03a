// Package summary aggregates logged blocks into weekly audit statistics.
package summary

import (
	"context"
	"fmt"
	"time"

	"github.com/palisadeengineering/timeaudit/internal/block"
	"github.com/palisadeengineering/timeaudit/internal/dateutil"
)

// WeekStats holds the aggregate minutes for one week of blocks.
type WeekStats struct {
	TotalMinutes    int
	ExternalMinutes int

	// Live blocks only.
	QuadrantMinutes map[block.Quadrant]int
	EnergyMinutes   map[block.Energy]int

	BlockCount int
	// DayMinutes indexes logged minutes by day offset from the week start.
	DayMinutes [7]int
}

// WeekSummary holds aggregated week data.
type WeekSummary struct {
	Start  time.Time
	End    time.Time
	Blocks []*block.TimeBlock
	Stats  WeekStats
}

// SummarizeWeek builds week summary data from blocks. Blocks outside the
// week containing weekStart are ignored.
func SummarizeWeek(weekStart time.Time, weekStartsOn time.Weekday, blocks []*block.TimeBlock) *WeekSummary {
	start := dateutil.StartOfWeek(weekStart, weekStartsOn)
	end := start.AddDate(0, 0, 6)

	s := &WeekSummary{
		Start: start,
		End:   end,
		Stats: WeekStats{
			QuadrantMinutes: make(map[block.Quadrant]int),
			EnergyMinutes:   make(map[block.Energy]int),
		},
	}

	for _, b := range blocks {
		day := dateutil.DaysBetween(start, b.Date)
		if day < 0 || day > 6 {
			continue
		}

		s.Blocks = append(s.Blocks, b)
		d := b.Duration()
		s.Stats.TotalMinutes += d
		s.Stats.BlockCount++
		s.Stats.DayMinutes[day] += d

		if b.IsExternal() {
			s.Stats.ExternalMinutes += d
			continue
		}
		s.Stats.QuadrantMinutes[b.Quadrant] += d
		s.Stats.EnergyMinutes[b.Energy] += d
	}

	return s
}

// BuildWeekSummary loads the blocks for the week containing the reference
// date and summarizes them.
func BuildWeekSummary(ctx context.Context, repo block.Repository, ref time.Time, weekStartsOn time.Weekday) (*WeekSummary, error) {
	start := dateutil.StartOfWeek(ref, weekStartsOn)
	end := start.AddDate(0, 0, 6)

	blocks, err := repo.ListBlocksByDateRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("fetching blocks: %w", err)
	}

	return SummarizeWeek(start, weekStartsOn, blocks), nil
}

// EnergyBalance is the net energy effect of the week's live blocks:
// energizing minutes minus draining ones.
func (s *WeekSummary) EnergyBalance() int {
	return s.Stats.EnergyMinutes[block.EnergyGives] - s.Stats.EnergyMinutes[block.EnergyDrains]
}

// BusiestDay returns the day offset with the most logged minutes, or -1
// for an empty week.
func (s *WeekSummary) BusiestDay() int {
	best, bestMinutes := -1, 0
	for day, mins := range s.Stats.DayMinutes {
		if mins > bestMinutes {
			best, bestMinutes = day, mins
		}
	}
	return best
}
