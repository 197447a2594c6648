package ui

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/huddlehq/huddle/internal/calendar"
	"github.com/huddlehq/huddle/internal/dateutil"
	"github.com/huddlehq/huddle/internal/event"
	"github.com/huddlehq/huddle/internal/recurrence"
)

const (
	rowLayout    = "Mon Jan 2 15:04"
	detailLayout = "Monday, January 2, 2006 15:04"

	minCellWidth = 10
)

// typeTag returns the colored "[Type]" marker padded to the widest type.
func typeTag(t event.Type) string {
	return formatType(t, padRight("["+string(t)+"]", len("[Lightning]")))
}

// printEventRow prints a single event row with consistent formatting.
func printEventRow(w io.Writer, e *event.Event, maxTitleWidth int) {
	when := e.Start.Format(rowLayout)
	if e.End != nil {
		when += "-" + e.End.Format(dateutil.ClockLayout)
	}

	title := truncate(e.Title, maxTitleWidth)
	line := fmt.Sprintf("  %s  %-22s %s  %s",
		formatMuted(fmt.Sprintf("#%-4d", e.ID)), when, typeTag(e.Type), title)

	if scope := scopeLabel(e); scope != "" {
		line += "  " + formatMuted("("+scope+")")
	}
	if e.IsRecurring() {
		line += "  " + formatMuted("↻ "+e.Rule.Describe())
	}
	fmt.Fprintln(w, line)
}

// scopeLabel joins group and category, e.g. "gophers / Tech".
func scopeLabel(e *event.Event) string {
	parts := make([]string, 0, 2)
	if e.Group != "" {
		parts = append(parts, e.Group)
	}
	if e.Category != "" {
		parts = append(parts, e.Category)
	}
	return strings.Join(parts, " / ")
}

// printEventDetail prints every field of an event followed by its next occurrences.
func printEventDetail(w io.Writer, e *event.Event, occurrences []recurrence.Occurrence) {
	fmt.Fprintf(w, "%s %s\n\n", formatHeader(fmt.Sprintf("#%d", e.ID)), formatType(e.Type, e.Title))

	field := func(label, value string) {
		if value == "" {
			return
		}
		fmt.Fprintf(w, "  %s %s\n", formatMuted(padRight(label+":", 13)), value)
	}

	field("Type", string(e.Type))
	field("Group", e.Group)
	field("Category", e.Category)
	field("Starts", e.Start.Format(detailLayout))
	if e.End != nil {
		field("Ends", e.End.Format(detailLayout))
	}
	field("Repeats", e.Rule.Describe())
	field("Description", e.Description)

	if len(occurrences) == 0 {
		return
	}
	fmt.Fprintf(w, "\n  %s\n", formatHeader("Upcoming"))
	printOccurrences(w, occurrences)
}

func printOccurrences(w io.Writer, occurrences []recurrence.Occurrence) {
	for i, o := range occurrences {
		fmt.Fprintf(w, "  %s %s\n", formatMuted(fmt.Sprintf("%2d.", i+1)), o.Label)
	}
}

// gridView is a computed calendar window ready for printing or encoding.
type gridView struct {
	Window calendar.Window
	Cells  [calendar.WindowDays]calendar.Cell
	Hidden [calendar.WindowDays]int
	Jumps  []calendar.QuickJump
	Active int // index of the quick jump matching the window, or -1
	Next   bool
}

// printCalendar renders the window as a text grid: a title line, weekday
// headers, then five week rows of day cells.
func printCalendar(w io.Writer, g gridView, now time.Time, width int) {
	colW := (width - 1) / calendar.DaysPerWeek
	if colW < minCellWidth {
		colW = minCellWidth
	}
	inner := colW - 1
	focus := g.Window.Days[calendar.WindowDays/2].Month()

	fmt.Fprintf(w, "%s  %s\n", formatHeader(g.Window.Title()),
		formatMuted(g.Window.Start.Format("Jan 2")+" - "+g.Window.End().Format("Jan 2, 2006")))
	fmt.Fprintln(w, formatMuted(jumpLine(g.Jumps, g.Active)))
	fmt.Fprintln(w)

	var header strings.Builder
	for d := time.Sunday; d <= time.Saturday; d++ {
		header.WriteString(padRight(d.String()[:3], colW))
	}
	fmt.Fprintln(w, formatHeader(strings.TrimRight(header.String(), " ")))

	for row := 0; row < calendar.WeeksPerGrid; row++ {
		lines := weekLines(g, row, focus, now, inner)
		for _, line := range lines {
			fmt.Fprintln(w, strings.TrimRight(line, " "))
		}
		fmt.Fprintln(w, formatMuted(strings.Repeat("─", colW*calendar.DaysPerWeek-1)))
	}
}

// weekLines renders grid row `row` as text lines. All cells in a row are
// padded to the tallest cell.
func weekLines(g gridView, row int, focus time.Month, now time.Time, inner int) []string {
	cells := make([][]string, calendar.DaysPerWeek)
	height := 0
	for col := 0; col < calendar.DaysPerWeek; col++ {
		i := row*calendar.DaysPerWeek + col
		cells[col] = cellLines(g, i, focus, now, inner)
		if len(cells[col]) > height {
			height = len(cells[col])
		}
	}

	out := make([]string, height)
	for l := 0; l < height; l++ {
		var b strings.Builder
		for col := 0; col < calendar.DaysPerWeek; col++ {
			if l < len(cells[col]) {
				b.WriteString(cells[col][l])
			} else {
				b.WriteString(strings.Repeat(" ", inner+1))
			}
		}
		out[l] = b.String()
	}
	return out
}

// cellLines returns the padded, colored lines of cell i.
func cellLines(g gridView, i int, focus time.Month, now time.Time, inner int) []string {
	day := g.Window.Days[i]
	label := strconv.Itoa(day.Day())
	if day.Day() == 1 {
		label = day.Format("Jan 2")
	}

	pad := func(s string) string { return padRight(truncate(s, inner), inner+1) }

	dayLine := pad(label)
	switch {
	case dateutil.SameDay(day, now):
		dayLine = formatToday(dayLine)
	case day.Month() != focus:
		dayLine = formatMuted(dayLine)
	}

	lines := []string{dayLine}
	for _, e := range g.Cells[i].Events {
		text := pad("• " + e.Title)
		if day.Month() != focus {
			lines = append(lines, formatMuted(text))
			continue
		}
		lines = append(lines, formatType(e.Type, text))
	}
	if g.Hidden[i] > 0 {
		lines = append(lines, formatMuted(pad(fmt.Sprintf("+%d more", g.Hidden[i]))))
	}
	return lines
}

func jumpLine(jumps []calendar.QuickJump, active int) string {
	parts := make([]string, len(jumps))
	for i, j := range jumps {
		part := fmt.Sprintf("[%d] %s", i+1, j.Label)
		if i == active {
			part = "*" + part
		}
		parts[i] = part
	}
	return strings.Join(parts, "  ")
}

// calendarDoc is the structured form of a calendar window.
type calendarDoc struct {
	Title      string    `json:"title" yaml:"title"`
	Start      string    `json:"start" yaml:"start"`
	End        string    `json:"end" yaml:"end"`
	Days       []dayDoc  `json:"days" yaml:"days"`
	QuickJumps []jumpDoc `json:"quick_jumps" yaml:"quick_jumps"`
	CanNext    bool      `json:"can_next" yaml:"can_next"`
}

type dayDoc struct {
	Date   string                  `json:"date" yaml:"date"`
	Events []calendar.EventSummary `json:"events" yaml:"events"`
	Hidden int                     `json:"hidden,omitempty" yaml:"hidden,omitempty"`
}

type jumpDoc struct {
	Label  string `json:"label" yaml:"label"`
	Anchor string `json:"anchor" yaml:"anchor"`
	Active bool   `json:"active,omitempty" yaml:"active,omitempty"`
}

func newCalendarDoc(g gridView) calendarDoc {
	doc := calendarDoc{
		Title:   g.Window.Title(),
		Start:   g.Window.Start.Format(dateutil.DateLayout),
		End:     g.Window.End().Format(dateutil.DateLayout),
		Days:    make([]dayDoc, 0, calendar.WindowDays),
		CanNext: g.Next,
	}
	for i, c := range g.Cells {
		events := c.Events
		if events == nil {
			events = []calendar.EventSummary{}
		}
		doc.Days = append(doc.Days, dayDoc{
			Date:   c.Date.Format(dateutil.DateLayout),
			Events: events,
			Hidden: g.Hidden[i],
		})
	}
	for i, j := range g.Jumps {
		doc.QuickJumps = append(doc.QuickJumps, jumpDoc{
			Label:  j.Label,
			Anchor: j.Anchor.Format(dateutil.DateLayout),
			Active: i == g.Active,
		})
	}
	return doc
}
