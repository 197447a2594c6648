package calendar

import (
	"fmt"
	"strings"
)

// Agenda renders the window's placed events as plain text, one line per
// event grouped under its day. Days without events are skipped.
func Agenda(w Window, cells [WindowDays]Cell) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s - %s)\n", w.Title(), w.Start.Format("Jan 2"), w.End().Format("Jan 2, 2006"))

	empty := true
	for _, c := range cells {
		if len(c.Events) == 0 {
			continue
		}
		empty = false
		fmt.Fprintf(&b, "\n%s\n", c.Date.Format("Mon Jan 2"))
		for _, e := range c.Events {
			line := fmt.Sprintf("  [%s] %s", e.Type, e.Title)
			if e.CategoryName != "" {
				line += " (" + e.CategoryName + ")"
			}
			b.WriteString(line + "\n")
		}
	}
	if empty {
		b.WriteString("\nNo events.\n")
	}
	return b.String()
}
