package ui

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/huddlehq/huddle/internal/calendar"
	"github.com/huddlehq/huddle/internal/dateutil"
)

// Output formats accepted by --output.
const (
	outputText = "text"
	outputYAML = "yaml"
	outputJSON = "json"
)

func (a *App) calendarCmd() *cobra.Command {
	var (
		anchor string
		jump   int
		output string
		agenda bool
		hidden bool
	)

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Print the 5-week calendar window",
		Long: `Print the 35-day calendar window that starts on a Sunday.

By default the window holding this month's 1st is shown. --jump picks one
of the six quick jumps (1 = this month, 2 = next month, ...); --anchor
shows the window starting on the Sunday on or before the given date.
Recurring events are not placed in the grid. Days keep their 3
highest-priority events and drop the rest; --show-hidden (or
show_hidden_count in the config) prints a "+N more" line instead.`,
		Example: `  huddle calendar
  huddle calendar --jump=2
  huddle calendar --anchor=2025-03-01 --output=json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if anchor != "" && jump != 0 {
				return fmt.Errorf("--anchor and --jump are mutually exclusive")
			}
			switch output {
			case outputText, outputYAML, outputJSON:
			default:
				return fmt.Errorf("unknown output format %q (want text, yaml or json)", output)
			}

			nav := calendar.NewNavigator(a.now())
			if jump != 0 {
				if err := nav.Jump(jump - 1); err != nil {
					return fmt.Errorf("--jump %d: %w", jump, err)
				}
			}
			if anchor != "" {
				t, err := dateutil.ParseDate(anchor, a.now())
				if err != nil {
					return fmt.Errorf("--anchor: %w", err)
				}
				nav.SetAnchor(t)
			}

			if err := a.ensureRepo(); err != nil {
				return err
			}
			g, err := a.buildGrid(context.Background(), nav, hidden || a.config.Calendar.ShowHiddenCount)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch {
			case output == outputYAML:
				return writeYAML(out, newCalendarDoc(g))
			case output == outputJSON:
				return writeJSON(out, newCalendarDoc(g))
			case agenda:
				fmt.Fprintln(out, strings.TrimRight(calendar.Agenda(g.Window, g.Cells), "\n"))
				return nil
			default:
				printCalendar(out, g, a.now(), termWidth())
				return nil
			}
		},
	}

	cmd.Flags().StringVar(&anchor, "anchor", "", "Show the window containing this date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&jump, "jump", 0, "Quick jump 1-6 (1 = this month)")
	cmd.Flags().StringVarP(&output, "output", "o", outputText, "Output format: text, yaml or json")
	cmd.Flags().BoolVar(&agenda, "agenda", false, "Print the window as a plain agenda instead of a grid")
	cmd.Flags().BoolVar(&hidden, "show-hidden", false, "Count events that did not fit in a day")

	return cmd
}

// buildGrid loads the navigator's window and places its events. Dropped
// events are only counted when countHidden is set.
func (a *App) buildGrid(ctx context.Context, nav *calendar.Navigator, countHidden bool) (gridView, error) {
	w := nav.Window()
	events, err := a.repo.ListEventsByDateRange(ctx, w.Start, w.End())
	if err != nil {
		return gridView{}, fmt.Errorf("loading events: %w", err)
	}

	summaries := calendar.SummarizeAll(events)
	cells := calendar.PlaceEventsLimit(w, summaries, a.config.Calendar.MaxEventsPerCell)

	active := -1
	for i, j := range nav.QuickJumps() {
		if j.Anchor.Equal(nav.Anchor()) {
			active = i
			break
		}
	}

	g := gridView{
		Window: w,
		Cells:  cells,
		Jumps:  nav.QuickJumps(),
		Active: active,
		Next:   nav.CanNext(),
	}
	if countHidden {
		g.Hidden = calendar.Overflow(w, summaries, cells)
	}
	return g, nil
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	return enc.Close()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	return nil
}
