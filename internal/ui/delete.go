package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/palisadeengineering/timeaudit/internal/block"
	"github.com/palisadeengineering/timeaudit/internal/dateutil"
)

func (a *App) deleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete [block_id]",
		Short: "Delete a block",
		Long: `Delete a time block permanently.

Accepts a full block ID or an unambiguous prefix of one, as printed by
"timeaudit list".`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			ctx := context.Background()
			id, err := a.resolveBlockID(ctx, args[0])
			if err != nil {
				return err
			}

			if err := a.repo.DeleteBlock(ctx, id); err != nil {
				if errors.Is(err, block.ErrBlockNotFound) {
					return fmt.Errorf("no block with ID %s", args[0])
				}
				return fmt.Errorf("deleting block: %w", err)
			}

			fmt.Printf("Deleted block %s\n", shortID(id))
			return nil
		},
	}

	return cmd
}

// resolveBlockID expands an ID prefix into a full block ID by scanning the
// surrounding weeks. Full-length IDs pass through untouched.
func (a *App) resolveBlockID(ctx context.Context, prefix string) (string, error) {
	if len(prefix) >= 36 {
		return prefix, nil
	}

	today := dateutil.TruncateToDay(a.now())
	blocks, err := a.repo.ListBlocksByDateRange(ctx, today.AddDate(0, 0, -28), today.AddDate(0, 0, 28))
	if err != nil {
		return "", fmt.Errorf("resolving block ID: %w", err)
	}

	var matches []string
	for _, b := range blocks {
		if strings.HasPrefix(b.ID, prefix) {
			matches = append(matches, b.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no block with ID prefix %q in the last or next four weeks", prefix)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("ID prefix %q is ambiguous (%d matches)", prefix, len(matches))
	}
}
