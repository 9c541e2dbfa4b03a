package ui

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/palisadeengineering/timeaudit/internal/config"
	"github.com/palisadeengineering/timeaudit/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

Example:
  timeaudit config`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runConfigInteractive()
		},
	}
}

func runConfigInteractive() error {
	configPath := config.DefaultConfigPath()
	fmt.Printf("Config file: %s\n\n", configPath)

	// Load existing config or create defaults
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Check if file exists
	_, fileErr := os.Stat(configPath)
	isNew := os.IsNotExist(fileErr)

	if isNew {
		fmt.Println("No config file found. Creating with default values...")
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Printf("Created %s\n\n", configPath)
	}

	// Display current config
	printConfig(cfg)

	// Ask if user wants to edit
	if !promptYesNo("\nWould you like to edit the configuration?") {
		return nil
	}

	// Interactive editing
	reader := bufio.NewReader(os.Stdin)

	cfg.Calendar.StartHour = promptInt(reader, "First visible hour (0-23)", cfg.Calendar.StartHour)
	cfg.Calendar.EndHour = promptInt(reader, "Last visible hour (0-23)", cfg.Calendar.EndHour)
	cfg.Calendar.GranularityMinutes = promptInt(reader, "Slot granularity in minutes", cfg.Calendar.GranularityMinutes)
	cfg.Calendar.WeekStartsOn = promptValue(reader, "Week starts on (monday/sunday)", cfg.Calendar.WeekStartsOn)
	cfg.Calendar.TimeFormat = promptValue(reader, "Time format (24h/12h)", cfg.Calendar.TimeFormat)
	cfg.Storage.DBPath = promptValue(reader, "Database path", cfg.Storage.DBPath)
	cfg.Sync.ICSURL = promptValue(reader, "ICS feed URL (empty to disable sync)", cfg.Sync.ICSURL)
	cfg.UI.Theme = promptTheme(reader, cfg.UI.Theme)

	// Validate before saving
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// Save
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println("\nConfiguration saved!")
	return nil
}

func printConfig(cfg *config.Config) {
	fmt.Println("Current configuration:")
	fmt.Println("──────────────────────")
	fmt.Println("[calendar]")
	fmt.Printf("  start_hour     = %d\n", cfg.Calendar.StartHour)
	fmt.Printf("  end_hour       = %d\n", cfg.Calendar.EndHour)
	fmt.Printf("  granularity    = %d\n", cfg.Calendar.GranularityMinutes)
	fmt.Printf("  week_starts_on = %s\n", cfg.Calendar.WeekStartsOn)
	fmt.Printf("  time_format    = %s\n", cfg.Calendar.TimeFormat)
	fmt.Println("\n[storage]")
	fmt.Printf("  db_path        = %s\n", cfg.Storage.DBPath)
	fmt.Println("\n[sync]")
	fmt.Printf("  ics_url        = %s\n", cfg.Sync.ICSURL)
	fmt.Println("\n[ui]")
	fmt.Printf("  theme          = %s\n", cfg.UI.Theme)
}

func promptYesNo(question string) bool {
	reader := bufio.NewReader(os.Stdin)
	fmt.Printf("%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func promptValue(reader *bufio.Reader, label, current string) string {
	if current == "" {
		fmt.Printf("  %s: ", label)
	} else {
		fmt.Printf("  %s [%s]: ", label, current)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func promptInt(reader *bufio.Reader, label string, current int) int {
	for {
		input := promptValue(reader, label, strconv.Itoa(current))
		n, err := strconv.Atoi(input)
		if err == nil {
			return n
		}
		fmt.Printf("  Not a number: %q\n", input)
	}
}

func promptTheme(reader *bufio.Reader, current string) string {
	options := strings.Join(theme.Available(), ", ")
	label := fmt.Sprintf("UI theme (%s)", options)
	for {
		value := strings.ToLower(promptValue(reader, label, current))
		if theme.IsAvailable(value) {
			return value
		}
		fmt.Printf("  Invalid theme %q. Available: %s\n", value, options)
	}
}
