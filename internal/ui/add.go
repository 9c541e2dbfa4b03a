package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/palisadeengineering/timeaudit/internal/block"
)

func (a *App) addCmd() *cobra.Command {
	var (
		date     string
		start    string
		end      string
		quadrant string
		energy   string
	)

	cmd := &cobra.Command{
		Use:   "add [activity]",
		Short: "Log a new time block",
		Long: `Log a new activity block on the grid.

Example:
  timeaudit add "Code review" --date=2026-03-16 --start=09:00 --end=10:30 --quadrant=q2 --energy=neutral`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			b, err := block.New(args[0], quadrant, energy, date, start, end)
			if err != nil {
				return err
			}

			ctx := context.Background()
			if err := a.repo.CreateBlock(ctx, b); err != nil {
				return fmt.Errorf("creating block: %w", err)
			}

			fmt.Printf("Logged %q [%s, %s] %s %s-%s\n",
				b.ActivityName,
				b.Quadrant,
				b.Energy,
				b.Date.Format("2006-01-02"),
				b.Start,
				b.End,
			)

			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD, default: today)")
	cmd.Flags().StringVar(&start, "start", "", "Start time (HH:MM, required)")
	cmd.Flags().StringVar(&end, "end", "", "End time (HH:MM, required)")
	cmd.Flags().StringVar(&quadrant, "quadrant", "q2", "Quadrant: q1, q2, q3 or q4")
	cmd.Flags().StringVar(&energy, "energy", "neutral", "Energy rating: gives, neutral or drains")

	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}
