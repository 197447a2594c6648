package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/huddlehq/huddle/internal/config"
	"github.com/huddlehq/huddle/internal/event"
	"github.com/huddlehq/huddle/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

The defaults follow the calendar's fixed rules: monthly events are searched
24 months ahead and each calendar day shows at most 3 events. Raising
monthly_lookahead or max_events_per_cell changes those rules, and the
printed config marks such values.

Example:
  huddle config`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if path == "" {
				path = config.DefaultConfigPath()
			}
			return runConfigInteractive(cmd.InOrStdin(), cmd.OutOrStdout(), path)
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "Config file to edit (default "+config.DefaultConfigPath()+")")
	return cmd
}

func runConfigInteractive(in io.Reader, out io.Writer, configPath string) error {
	fmt.Fprintf(out, "Config file: %s\n\n", configPath)

	// Load existing config or create defaults
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	_, fileErr := os.Stat(configPath)
	if os.IsNotExist(fileErr) {
		fmt.Fprintln(out, "No config file found. Creating with default values...")
		if err := cfg.SaveTo(configPath); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Fprintf(out, "Created %s\n\n", configPath)
	}

	printConfig(out, cfg)

	reader := bufio.NewReader(in)
	if !promptYesNo(reader, out, "\nWould you like to edit the configuration?") {
		return nil
	}

	cfg.Recurrence.OccurrenceCount = promptInt(reader, out, "Occurrences shown per recurring event", cfg.Recurrence.OccurrenceCount)
	cfg.Recurrence.MonthlyLookahead = promptInt(reader, out, "Months searched for a monthly match", cfg.Recurrence.MonthlyLookahead)
	cfg.Calendar.MaxEventsPerCell = promptInt(reader, out, "Events per calendar cell", cfg.Calendar.MaxEventsPerCell)
	cfg.Calendar.DefaultType = promptType(reader, out, cfg.Calendar.DefaultType)
	cfg.Storage.DBPath = promptValue(reader, out, "Database path", cfg.Storage.DBPath)
	cfg.UI.Theme = promptTheme(reader, out, cfg.UI.Theme)

	// Validate before saving
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if err := cfg.SaveTo(configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Fprintln(out, "\nConfiguration saved!")
	return nil
}

func printConfig(out io.Writer, cfg *config.Config) {
	def := config.Default()
	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintln(out, "──────────────────────")
	fmt.Fprintln(out, "[recurrence]")
	fmt.Fprintf(out, "  occurrence_count    = %d\n", cfg.Recurrence.OccurrenceCount)
	fmt.Fprintf(out, "  monthly_lookahead   = %d%s\n", cfg.Recurrence.MonthlyLookahead, defaultNote(cfg.Recurrence.MonthlyLookahead, def.Recurrence.MonthlyLookahead))
	fmt.Fprintln(out, "\n[calendar]")
	fmt.Fprintf(out, "  max_events_per_cell = %d%s\n", cfg.Calendar.MaxEventsPerCell, defaultNote(cfg.Calendar.MaxEventsPerCell, def.Calendar.MaxEventsPerCell))
	fmt.Fprintf(out, "  default_type        = %s\n", cfg.Calendar.DefaultType)
	fmt.Fprintf(out, "  show_hidden_count   = %t\n", cfg.Calendar.ShowHiddenCount)
	fmt.Fprintln(out, "\n[storage]")
	fmt.Fprintf(out, "  db_path             = %s\n", cfg.Storage.DBPath)
	fmt.Fprintln(out, "\n[ui]")
	fmt.Fprintf(out, "  theme               = %s\n", cfg.UI.Theme)
}

// defaultNote flags settings that override a fixed calendar rule.
func defaultNote(value, def int) string {
	if value == def {
		return ""
	}
	return fmt.Sprintf("   (overrides default %d)", def)
}

func promptYesNo(reader *bufio.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func promptValue(reader *bufio.Reader, out io.Writer, label, current string) string {
	if current == "" {
		fmt.Fprintf(out, "  %s: ", label)
	} else {
		fmt.Fprintf(out, "  %s [%s]: ", label, current)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func promptInt(reader *bufio.Reader, out io.Writer, label string, current int) int {
	for {
		value := promptValue(reader, out, label, strconv.Itoa(current))
		n, err := strconv.Atoi(value)
		if err == nil {
			return n
		}
		fmt.Fprintf(out, "  Invalid number %q\n", value)
		if _, err := reader.Peek(1); err != nil {
			return current
		}
	}
}

func promptType(reader *bufio.Reader, out io.Writer, current string) string {
	names := make([]string, len(event.Types))
	for i, t := range event.Types {
		names[i] = string(t)
	}
	options := strings.Join(names, ", ")
	label := fmt.Sprintf("Default event type (%s)", options)
	for {
		value := promptValue(reader, out, label, current)
		t, err := event.ParseType(value)
		if err == nil {
			return string(t)
		}
		fmt.Fprintf(out, "  Invalid type %q. Available: %s\n", value, options)
		if _, err := reader.Peek(1); err != nil {
			return current
		}
	}
}

func promptTheme(reader *bufio.Reader, out io.Writer, current string) string {
	options := strings.Join(theme.Available(), ", ")
	label := fmt.Sprintf("UI theme (%s)", options)
	for {
		value := strings.ToLower(promptValue(reader, out, label, current))
		if theme.IsAvailable(value) {
			return value
		}
		fmt.Fprintf(out, "  Invalid theme %q. Available: %s\n", value, options)
		if _, err := reader.Peek(1); err != nil {
			return current
		}
	}
}
