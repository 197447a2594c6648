package ui

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/huddlehq/huddle/internal/event"
	"github.com/huddlehq/huddle/internal/ical"
)

func (a *App) exportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export [id...]",
		Short: "Export events as iCalendar",
		Long: `Export events to an iCalendar (.ics) file.

Without IDs every stored event is exported. Recurring events carry an
RRULE so calendar apps expand them on their own.`,
		Example: `  huddle export > huddle.ics
  huddle export 3 7 -o meetups.ics`,
		RunE: func(cmd *cobra.Command, args []string) error {
			events, err := a.exportEvents(context.Background(), args)
			if err != nil {
				return err
			}
			if len(events) == 0 {
				return fmt.Errorf("nothing to export: %w", ical.ErrNoEvents)
			}

			var w io.Writer = cmd.OutOrStdout()
			if output != "" {
				path, err := resolvePath(output)
				if err != nil {
					return err
				}
				f, err := os.Create(path)
				if err != nil {
					return fmt.Errorf("creating %s: %w", path, err)
				}
				defer func() { _ = f.Close() }()
				w = f
			}

			if err := ical.Export(w, events, a.now()); err != nil {
				return err
			}
			if output != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d events to %s\n", len(events), output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to this file instead of stdout")
	return cmd
}

func (a *App) exportEvents(ctx context.Context, ids []string) ([]*event.Event, error) {
	if len(ids) == 0 {
		if err := a.ensureRepo(); err != nil {
			return nil, err
		}
		events, err := a.repo.ListAllEvents(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing events: %w", err)
		}
		return events, nil
	}

	events := make([]*event.Event, 0, len(ids))
	for _, id := range ids {
		e, err := a.lookup(id)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, nil
}
