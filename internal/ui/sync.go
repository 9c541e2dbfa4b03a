package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/palisadeengineering/timeaudit/internal/dateutil"
	"github.com/palisadeengineering/timeaudit/internal/ics"
)

func (a *App) syncCmd() *cobra.Command {
	var (
		url       string
		startDate string
		endDate   string
	)

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Import events from an ICS calendar feed",
		Long: `Fetch an ICS calendar feed and import its events as external blocks.

Recurring events are expanded within the requested range, and events
crossing midnight are split at the day boundary. Re-syncing the same feed
updates previously imported events in place.

The feed URL defaults to ics_url from the config file. Without dates the
current week is imported.`,
		Example: `  timeaudit sync
  timeaudit sync --url=https://example.com/cal.ics
  timeaudit sync --start=2026-03-16 --end=2026-03-29`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			feedURL := url
			if feedURL == "" {
				feedURL = a.config.Sync.ICSURL
			}
			if feedURL == "" {
				return fmt.Errorf("no feed URL: pass --url or set ics_url in the config file")
			}

			rangeStart, rangeEnd, err := a.syncRange(startDate, endDate)
			if err != nil {
				return err
			}

			imp := ics.NewImporter(a.repo)
			count, err := imp.Sync(context.Background(), feedURL, rangeStart, rangeEnd)
			if err != nil {
				return fmt.Errorf("syncing calendar: %w", err)
			}

			fmt.Printf("Imported %d events for %s to %s\n",
				count,
				rangeStart.Format("2006-01-02"),
				rangeEnd.Format("2006-01-02"),
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "ICS feed URL (defaults to ics_url from config)")
	cmd.Flags().StringVar(&startDate, "start", "", "Range start (YYYY-MM-DD, defaults to this week)")
	cmd.Flags().StringVar(&endDate, "end", "", "Range end (YYYY-MM-DD, defaults to start's week end)")

	return cmd
}

// syncRange resolves the import window. Without flags it covers the
// current week per the configured week start.
func (a *App) syncRange(startDate, endDate string) (start, end time.Time, err error) {
	if startDate == "" && endDate == "" {
		start = dateutil.StartOfWeek(a.now(), a.config.WeekStart())
		return start, start.AddDate(0, 0, 6), nil
	}

	dateRange, err := dateutil.NewDateRange(startDate, endDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if endDate == "" {
		// A single start date still imports its whole week.
		start = dateutil.StartOfWeek(dateRange.Start, a.config.WeekStart())
		return start, start.AddDate(0, 0, 6), nil
	}
	return dateRange.Start, dateRange.End, nil
}
