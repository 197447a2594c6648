package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// DayDetailEvent is one row of the day detail modal.
type DayDetailEvent struct {
	Type     string
	Title    string
	Category string
	Style    lipgloss.Style
}

// DayDetailModel contains the fields needed to render the day detail body.
type DayDetailModel struct {
	Events    []DayDetailEvent
	Recurring []string // descriptions of recurring events falling on the day
}

// DayDetailStyles groups styles for the day detail body.
type DayDetailStyles struct {
	BodyStyle  lipgloss.Style
	LabelStyle lipgloss.Style
	HintStyle  lipgloss.Style
}

// RenderDayDetailBody renders every event of a day, not just those that fit
// in the grid cell.
func RenderDayDetailBody(model DayDetailModel, styles DayDetailStyles) string {
	var body strings.Builder

	if len(model.Events) == 0 && len(model.Recurring) == 0 {
		body.WriteString(styles.HintStyle.Render(" No events."))
		return body.String()
	}

	for i, e := range model.Events {
		if i > 0 {
			body.WriteString("\n")
		}
		line := " " + e.Style.Render("["+e.Type+"]") + styles.BodyStyle.Render(" "+e.Title)
		if e.Category != "" {
			line += styles.HintStyle.Render(" (" + e.Category + ")")
		}
		body.WriteString(line)
	}

	if len(model.Recurring) > 0 {
		if len(model.Events) > 0 {
			body.WriteString("\n\n")
		}
		body.WriteString(styles.LabelStyle.Render(" Repeating:"))
		for _, r := range model.Recurring {
			body.WriteString("\n" + styles.BodyStyle.Render("  "+r))
		}
	}

	return body.String()
}

// DayDetailFooter renders the key hints of the day detail modal.
func DayDetailFooter(styles ModalStyles) string {
	return RenderModalButtons(styles, "[Esc] Close", "[y] Copy window")
}
