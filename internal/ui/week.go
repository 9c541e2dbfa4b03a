package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/palisadeengineering/timeaudit/internal/block"
	"github.com/palisadeengineering/timeaudit/internal/dateutil"
	"github.com/palisadeengineering/timeaudit/internal/summary"
)

func (a *App) summaryCmd() *cobra.Command {
	var date string
	var noColor bool

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show weekly audit statistics",
		Long: `Summarize a week of logged blocks: total time per quadrant, energy
balance, and imported calendar time.

Without --date the current week is summarized.`,
		Example: `  timeaudit summary
  timeaudit summary --date=2026-03-16`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if noColor {
				DisableColor()
			}
			if err := a.ensureRepo(); err != nil {
				return err
			}

			ref := a.now()
			if date != "" {
				parsed, err := dateutil.ParseDate(date)
				if err != nil {
					return err
				}
				ref = parsed
			}

			s, err := summary.BuildWeekSummary(context.Background(), a.repo, ref, a.config.WeekStart())
			if err != nil {
				return fmt.Errorf("building week summary: %w", err)
			}

			header := fmt.Sprintf("WEEK: %s - %s",
				s.Start.Format("Mon Jan 2"), s.End.Format("Mon Jan 2, 2006"))
			fmt.Printf("\n  %s\n", formatHeader(header))
			fmt.Println(strings.Repeat("─", separatorWidth()))

			if s.Stats.BlockCount == 0 {
				fmt.Println("  No blocks logged this week.")
				return nil
			}

			printWeekStats(s)
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Any date inside the week to summarize (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")
	return cmd
}

func printWeekStats(s *summary.WeekSummary) {
	fmt.Printf("  Blocks logged: %d (%s total)\n", s.Stats.BlockCount, formatDuration(s.Stats.TotalMinutes))

	for _, q := range []block.Quadrant{block.QuadrantQ1, block.QuadrantQ2, block.QuadrantQ3, block.QuadrantQ4} {
		mins := s.Stats.QuadrantMinutes[q]
		if mins == 0 {
			continue
		}
		label := formatQuadrant(string(q), strings.ToUpper(string(q)))
		fmt.Printf("  %s %-12s %s  %s\n",
			label,
			quadrantName(q),
			formatDuration(mins),
			quadrantBar(mins, s.Stats.TotalMinutes, 20),
		)
	}

	if s.Stats.ExternalMinutes > 0 {
		fmt.Printf("  %s %s\n", formatExternal("Calendar:"), formatDuration(s.Stats.ExternalMinutes))
	}

	balance := s.EnergyBalance()
	switch {
	case balance > 0:
		fmt.Printf("  Energy balance: +%s\n", formatDuration(balance))
	case balance < 0:
		fmt.Printf("  Energy balance: -%s\n", formatDuration(-balance))
	default:
		fmt.Println("  Energy balance: even")
	}

	if day := s.BusiestDay(); day >= 0 {
		busiest := s.Start.AddDate(0, 0, day)
		fmt.Printf("  Busiest day: %s (%s)\n",
			busiest.Format("Monday"),
			formatDuration(s.Stats.DayMinutes[day]),
		)
	}
}

// separatorWidth fits the rule line to the terminal.
func separatorWidth() int {
	w := termWidth() - 2
	if w > 60 {
		w = 60
	}
	if w < 20 {
		w = 20
	}
	return w
}

func quadrantName(q block.Quadrant) string {
	switch q {
	case block.QuadrantQ1:
		return "urgent+impt"
	case block.QuadrantQ2:
		return "important"
	case block.QuadrantQ3:
		return "urgent"
	default:
		return "neither"
	}
}

// quadrantBar renders a proportional bar of width chars.
func quadrantBar(mins, total, width int) string {
	if total <= 0 {
		return ""
	}
	filled := mins * width / total
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// formatDuration renders minutes as "3h30m".
func formatDuration(mins int) string {
	h, m := mins/60, mins%60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh%02dm", h, m)
	}
}
