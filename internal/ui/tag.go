package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/palisadeengineering/timeaudit/internal/block"
)

func (a *App) tagCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tag",
		Short: "Manage tags",
	}

	cmd.AddCommand(a.tagAddCmd())
	cmd.AddCommand(a.tagListCmd())

	return cmd
}

func (a *App) tagAddCmd() *cobra.Command {
	var hexColor string

	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Create a new tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			t := &block.Tag{Name: args[0], Color: hexColor}
			if err := a.repo.CreateTag(context.Background(), t); err != nil {
				return fmt.Errorf("creating tag: %w", err)
			}

			fmt.Printf("Created tag %q (%s)\n", t.Name, shortID(t.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&hexColor, "color", "", "Display color as a hex value, e.g. #a6e3a1")

	return cmd
}

func (a *App) tagListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all tags",
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			tags, err := a.repo.ListTags(context.Background())
			if err != nil {
				return fmt.Errorf("listing tags: %w", err)
			}

			if len(tags) == 0 {
				fmt.Println("No tags yet.")
				return nil
			}

			for _, t := range tags {
				line := fmt.Sprintf("%s  %s", shortID(t.ID), t.Name)
				if t.Color != "" {
					line += "  " + formatMuted(t.Color)
				}
				fmt.Println(line)
			}
			return nil
		},
	}
}
