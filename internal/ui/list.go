package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/palisadeengineering/timeaudit/internal/block"
	"github.com/palisadeengineering/timeaudit/internal/dateutil"
)

func (a *App) listCmd() *cobra.Command {
	var (
		startDate string
		endDate   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List blocks in a date range",
		Long: `List all time blocks within a date range.

If no dates are specified, lists today's blocks.
If only --start is specified, lists blocks for that single day.
If both --start and --end are specified, lists blocks in that range (inclusive).`,
		Example: `  timeaudit list
  timeaudit list --start=2026-03-16
  timeaudit list --start=2026-03-16 --end=2026-03-22`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			dateRange, err := dateutil.NewDateRange(startDate, endDate)
			if err != nil {
				return err
			}

			blocks, err := a.repo.ListBlocksByDateRange(context.Background(), dateRange.Start, dateRange.End)
			if err != nil {
				return fmt.Errorf("listing blocks: %w", err)
			}

			if len(blocks) == 0 {
				fmt.Println("No blocks found in the specified date range.")
				return nil
			}

			// Print blocks grouped by date
			var currentDate string
			for _, b := range blocks {
				date := b.Date.Format("2006-01-02")
				if date != currentDate {
					if currentDate != "" {
						fmt.Println()
					}
					fmt.Printf("=== %s ===\n", formatHeader(date))
					currentDate = date
				}
				fmt.Println("  " + blockLine(b))
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&startDate, "start", "", "Start date (YYYY-MM-DD, defaults to today)")
	cmd.Flags().StringVar(&endDate, "end", "", "End date (YYYY-MM-DD, defaults to start date)")

	return cmd
}

// blockLine formats one block for the list output.
func blockLine(b *block.TimeBlock) string {
	if b.IsExternal() {
		return fmt.Sprintf("%s-%s %s %s",
			b.Start, b.End,
			formatExternal(b.ActivityName),
			formatMuted("(calendar)"),
		)
	}
	return fmt.Sprintf("%s-%s %s [%s] %s %s",
		b.Start, b.End,
		b.ActivityName,
		formatQuadrant(string(b.Quadrant), string(b.Quadrant)),
		energySymbol(b.Energy),
		formatMuted(shortID(b.ID)),
	)
}

// energySymbol maps an energy rating to a one-character marker.
func energySymbol(e block.Energy) string {
	switch e {
	case block.EnergyGives:
		return "+"
	case block.EnergyDrains:
		return "-"
	default:
		return "="
	}
}

// shortID truncates a UUID to its first group for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
