package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/huddlehq/huddle/internal/ical"
)

func (a *App) importCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import [file.ics]",
		Short: "Import events from an iCalendar file",
		Long: `Import every VEVENT of an iCalendar file as a new event.

Events whose recurrence cannot be represented (anything beyond a daily,
weekly or "nth weekday of the month" rule) are skipped and reported.
All other events are stored in one transaction.`,
		Example: `  huddle import meetups.ics
  huddle import meetups.ics --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolvePath(args[0])
			if err != nil {
				return err
			}
			f, err := os.Open(path)
			if err != nil {
				if os.IsNotExist(err) {
					return fmt.Errorf("file does not exist: %s", path)
				}
				return fmt.Errorf("opening %s: %w", path, err)
			}
			defer func() { _ = f.Close() }()

			now := a.now()
			res, err := ical.Import(f, ical.Options{
				DefaultType: a.config.DefaultType(),
				Location:    now.Location(),
				Now:         now,
				Engine:      a.config.Engine(),
			})
			if err != nil {
				return fmt.Errorf("importing %s: %w", path, err)
			}

			out := cmd.OutOrStdout()
			for _, s := range res.Skipped {
				fmt.Fprintf(out, "%s %s\n", formatMuted("skipped"), s.Error())
			}

			if dryRun {
				for _, e := range res.Events {
					printEventRow(out, e, maxTitleWidth)
				}
				fmt.Fprintf(out, "Would import %d events (%d skipped)\n", len(res.Events), len(res.Skipped))
				return nil
			}

			if len(res.Events) > 0 {
				if err := a.ensureRepo(); err != nil {
					return err
				}
				if err := a.repo.CreateEvents(context.Background(), res.Events); err != nil {
					return fmt.Errorf("storing events: %w", err)
				}
			}
			fmt.Fprintf(out, "Imported %d events from %s (%d skipped)\n", len(res.Events), path, len(res.Skipped))
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Parse and print the events without storing them")
	return cmd
}

func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("empty path")
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	return absPath, nil
}
