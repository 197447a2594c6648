package ui

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/huddlehq/huddle/internal/dateutil"
	"github.com/huddlehq/huddle/internal/event"
	"github.com/huddlehq/huddle/internal/recurrence"
)

// maxTitleWidth bounds titles in list rows.
const maxTitleWidth = 40

func (a *App) eventCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "event",
		Short: "Create, list, show and delete events",
	}
	cmd.AddCommand(a.addCmd())
	cmd.AddCommand(a.listCmd())
	cmd.AddCommand(a.showCmd())
	cmd.AddCommand(a.deleteCmd())
	return cmd
}

// scheduleFlags are the raw schedule inputs shared by every creation flow.
type scheduleFlags struct {
	repeat  string
	weekday string
	week    string
	date    string
	start   string
	end     string
	startAt string
	endAt   string
}

// firstInput maps the flags onto a FirstInput. Only the fields the interval
// uses are validated here; ResolveFirst reports anything missing.
func (f scheduleFlags) firstInput() (recurrence.FirstInput, error) {
	interval, err := recurrence.ParseInterval(f.repeat)
	if err != nil {
		return recurrence.FirstInput{}, err
	}

	rule := recurrence.Rule{Interval: interval}
	if f.weekday != "" {
		wd, err := dateutil.ParseWeekday(f.weekday)
		if err != nil {
			return recurrence.FirstInput{}, fmt.Errorf("--weekday %q: %w", f.weekday, err)
		}
		rule.Weekday = &wd
	}
	if f.week != "" {
		week, err := recurrence.ParseWeekOfMonth(f.week)
		if err != nil {
			return recurrence.FirstInput{}, fmt.Errorf("--week: %w", err)
		}
		rule.WeekOfMonth = &week
	}

	return recurrence.FirstInput{
		Rule:    rule,
		Date:    f.date,
		Start:   f.start,
		End:     f.end,
		StartAt: f.startAt,
		EndAt:   f.endAt,
	}, nil
}

func (a *App) addCmd() *cobra.Command {
	var (
		draft    event.Draft
		schedule scheduleFlags
	)

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a new event",
		Long: `Add a one-off or recurring event.

One-off events take explicit date-times with --start-at and --end-at
(or --end for an end time on the same day). Recurring events take a
--repeat interval and an HH:MM --start:

  daily     needs --date (the first day)
  weekly    needs --weekday; the first occurrence is the next such day
  monthly   needs --week (1-4, 5 or last) and --weekday`,
		Example: `  huddle event add "Go 1.24 release party" --start-at="2025-02-11 18:30" --end=21:00 --type=special
  huddle event add "Standup" --repeat=daily --date=2025-01-06 --start=09:30 --end=09:45
  huddle event add "Gophers meetup" --group=gophers --repeat=monthly --week=last --weekday=thu --start=19:00`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			in, err := schedule.firstInput()
			if err != nil {
				return err
			}
			draft.Title = args[0]
			draft.Schedule = in

			e, err := event.New(draft, a.config.Engine(), a.now())
			if err != nil {
				return err
			}
			if err := a.repo.CreateEvent(context.Background(), e); err != nil {
				return fmt.Errorf("creating event: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Created event #%d: %s\n", e.ID, formatType(e.Type, e.Title))
			printEventRow(out, e, maxTitleWidth)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&draft.Description, "description", "", "Event description")
	f.StringVar(&draft.Type, "type", string(a.config.DefaultType()), "Event type: lightning, regular or special")
	f.StringVar(&draft.Category, "category", "", "Free-form category, e.g. Tech")
	f.StringVar(&draft.Group, "group", "", "Group the event belongs to")
	f.StringVar(&schedule.repeat, "repeat", "none", "Repeat interval: none, daily, weekly or monthly")
	f.StringVar(&schedule.weekday, "weekday", "", "Weekday for weekly and monthly events (mon, tuesday, 0-6)")
	f.StringVar(&schedule.week, "week", "", "Week of month for monthly events (1-4, 5 or last)")
	f.StringVar(&schedule.date, "date", "", "First date for daily events (YYYY-MM-DD)")
	f.StringVar(&schedule.start, "start", "", "Start time for recurring events (HH:MM)")
	f.StringVar(&schedule.end, "end", "", "End time (HH:MM) on the start's date")
	f.StringVar(&schedule.startAt, "start-at", "", "Start of a one-off event (YYYY-MM-DD HH:MM)")
	f.StringVar(&schedule.endAt, "end-at", "", "End of a one-off event (YYYY-MM-DD HH:MM)")

	return cmd
}

func (a *App) listCmd() *cobra.Command {
	var (
		from  string
		to    string
		group string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List events in a date range",
		Long: `List events whose first occurrence falls within a date range.

If no dates are specified, lists every event.
If only --from is specified, lists events for that single day.`,
		Example: `  huddle event list
  huddle event list --from=2025-01-15
  huddle event list --from=2025-01-01 --to=2025-01-31 --group=gophers`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			events, err := a.listEvents(context.Background(), from, to)
			if err != nil {
				return err
			}
			if group != "" {
				events = filterGroup(events, group)
			}

			out := cmd.OutOrStdout()
			if len(events) == 0 {
				fmt.Fprintln(out, "No events found.")
				return nil
			}

			var current string
			for _, e := range events {
				if day := e.Date(); day != current {
					if current != "" {
						fmt.Fprintln(out)
					}
					fmt.Fprintf(out, "=== %s ===\n", formatHeader(e.Start.Format("Monday, January 2, 2006")))
					current = day
				}
				printEventRow(out, e, maxTitleWidth)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "First date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "Last date (YYYY-MM-DD, default: --from)")
	cmd.Flags().StringVar(&group, "group", "", "Only list events of this group")

	return cmd
}

func (a *App) listEvents(ctx context.Context, from, to string) ([]*event.Event, error) {
	if from == "" && to == "" {
		events, err := a.repo.ListAllEvents(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing events: %w", err)
		}
		return events, nil
	}

	now := a.now()
	start, err := dateutil.ParseDate(from, now)
	if err != nil {
		return nil, fmt.Errorf("--from: %w", err)
	}
	end := start
	if to != "" {
		if end, err = dateutil.ParseDate(to, now); err != nil {
			return nil, fmt.Errorf("--to: %w", err)
		}
	}
	if end.Before(start) {
		return nil, errors.New("--to must not be before --from")
	}

	events, err := a.repo.ListEventsByDateRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	return events, nil
}

func filterGroup(events []*event.Event, group string) []*event.Event {
	out := events[:0:0]
	for _, e := range events {
		if e.Group == group {
			out = append(out, e)
		}
	}
	return out
}

func (a *App) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "show [id]",
		Short:   "Show an event and its upcoming occurrences",
		Example: `  huddle event show 12`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.lookup(args[0])
			if err != nil {
				return err
			}

			var occ []recurrence.Occurrence
			if e.IsRecurring() {
				occ = e.Occurrences(a.config.Engine(), a.now(), a.config.Recurrence.OccurrenceCount)
			}
			printEventDetail(cmd.OutOrStdout(), e, occ)
			return nil
		},
	}
}

func (a *App) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete [id]",
		Short:   "Delete an event",
		Example: `  huddle event delete 12`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.lookup(args[0])
			if err != nil {
				return err
			}
			if err := a.repo.DeleteEvent(context.Background(), e.ID); err != nil {
				return fmt.Errorf("deleting event: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted event #%d: %s\n", e.ID, e.Title)
			return nil
		},
	}
}

func (a *App) occurrencesCmd() *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "occurrences [id]",
		Short: "Project the next occurrences of an event",
		Long: `Project the next occurrences of a stored recurring event from today.`,
		Example: `  huddle occurrences 3
  huddle occurrences 3 --count=10`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return fmt.Errorf("--count must be positive, got %d", count)
			}
			e, err := a.lookup(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s  %s\n", formatType(e.Type, e.Title), formatMuted(e.Rule.Describe()))
			if !e.IsRecurring() {
				fmt.Fprintf(out, "  %s\n", e.Start.Format(detailLayout))
				return nil
			}
			occ := e.Occurrences(a.config.Engine(), a.now(), count)
			if len(occ) == 0 {
				fmt.Fprintln(out, "No upcoming occurrences.")
				return nil
			}
			printOccurrences(out, occ)
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", a.config.Recurrence.OccurrenceCount, "Number of occurrences")
	return cmd
}

// lookup opens the repository and fetches the event with the given ID argument.
func (a *App) lookup(arg string) (*event.Event, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid event ID %q", arg)
	}
	if err := a.ensureRepo(); err != nil {
		return nil, err
	}
	e, err := a.repo.GetEvent(context.Background(), id)
	if err != nil {
		if errors.Is(err, event.ErrEventNotFound) {
			return nil, fmt.Errorf("event #%d: %w", id, err)
		}
		return nil, fmt.Errorf("fetching event: %w", err)
	}
	return e, nil
}

