// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/palisadeengineering/timeaudit/internal/block"
	"github.com/palisadeengineering/timeaudit/internal/ics"
)

// WeekLoadedMsg is sent when the visible week's blocks are loaded.
type WeekLoadedMsg struct {
	WeekStart time.Time
	Blocks    []*block.TimeBlock
}

// MutationDoneMsg is sent after a block mutation succeeds. The grid
// reloads the week in response.
type MutationDoneMsg struct {
	Status string
}

// SyncDoneMsg is sent when a calendar import finishes.
type SyncDoneMsg struct {
	Count int
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsg is sent for temporary status messages.
type StatusMsg struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// LoadWeek loads all blocks for the week starting at weekStart.
func LoadWeek(repo block.Repository, weekStart time.Time) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		end := weekStart.AddDate(0, 0, 6)

		blocks, err := repo.ListBlocksByDateRange(ctx, weekStart, end)
		if err != nil {
			return ErrMsg{Err: err}
		}

		return WeekLoadedMsg{WeekStart: weekStart, Blocks: blocks}
	}
}

// CreateBlock persists a new block.
func CreateBlock(repo block.Repository, b *block.TimeBlock) tea.Cmd {
	return func() tea.Msg {
		if err := repo.CreateBlock(context.Background(), b); err != nil {
			return ErrMsg{Err: err}
		}
		return MutationDoneMsg{Status: fmt.Sprintf("Created %s %s-%s", b.ActivityName, b.Start, b.End)}
	}
}

// MoveBlock reschedules a block to a new date and time window.
func MoveBlock(repo block.Repository, id string, date time.Time, start, end string) tea.Cmd {
	return func() tea.Msg {
		if err := repo.MoveBlock(context.Background(), id, date, start, end); err != nil {
			return ErrMsg{Err: err}
		}
		return MutationDoneMsg{Status: fmt.Sprintf("Moved to %s %s", date.Format("Mon 02"), start)}
	}
}

// ResizeBlock changes a block's end time.
func ResizeBlock(repo block.Repository, id, newEnd string) tea.Cmd {
	return func() tea.Msg {
		if err := repo.ResizeBlock(context.Background(), id, newEnd); err != nil {
			return ErrMsg{Err: err}
		}
		return MutationDoneMsg{Status: fmt.Sprintf("Resized to end at %s", newEnd)}
	}
}

// UpdateBlock changes a block's activity name, quadrant, and energy.
func UpdateBlock(repo block.Repository, id, name string, q block.Quadrant, e block.Energy) tea.Cmd {
	return func() tea.Msg {
		if err := repo.UpdateBlockDetails(context.Background(), id, name, q, e); err != nil {
			return ErrMsg{Err: err}
		}
		return MutationDoneMsg{Status: fmt.Sprintf("Updated %q", name)}
	}
}

// DeleteBlock removes a block.
func DeleteBlock(repo block.Repository, id string) tea.Cmd {
	return func() tea.Msg {
		if err := repo.DeleteBlock(context.Background(), id); err != nil {
			return ErrMsg{Err: err}
		}
		return MutationDoneMsg{Status: "Deleted block"}
	}
}

// SyncCalendar imports the external ICS feed for the visible week.
func SyncCalendar(repo block.Repository, url string, weekStart time.Time) tea.Cmd {
	return func() tea.Msg {
		if url == "" {
			return ErrMsg{Err: fmt.Errorf("no ics_url configured")}
		}

		imp := ics.NewImporter(repo)
		n, err := imp.Sync(context.Background(), url, weekStart, weekStart.AddDate(0, 0, 6))
		if err != nil {
			return ErrMsg{Err: err}
		}
		return SyncDoneMsg{Count: n}
	}
}
