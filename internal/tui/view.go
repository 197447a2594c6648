package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/huddlehq/huddle/internal/calendar"
	"github.com/huddlehq/huddle/internal/dateutil"
	"github.com/huddlehq/huddle/internal/event"
	"github.com/huddlehq/huddle/internal/tui/view"
)

// Layout constants.
const (
	headerH = 2 // title + quick jumps
	footerH = 3 // legend, status, help

	// Top and bottom border, header row and its separator.
	gridChromeH = 4
	// Column separators plus the outer borders of a 7-column table.
	gridChromeW = calendar.DaysPerWeek + 1
)

// View renders the TUI using a boxed, parent-controlled layout.
func (m Model) View() string {
	return view.Render(m.viewState())
}

func (m Model) viewState() view.ViewState {
	modal := ""
	switch {
	case m.showDetail:
		modal = m.renderDayDetail()
	case m.help.ShowAll:
		modal = m.renderHelpModal()
	}

	return view.ViewState{
		Width:            m.width,
		Height:           m.height,
		BaseContent:      m.renderAppContent(),
		ModalContent:     modal,
		ShowModal:        modal != "",
		ModalBg:          m.styles.ModalBgColor,
		EmptyPlaceholder: "Loading...",
	}
}

func (m Model) renderAppContent() string {
	innerW := m.width - 2
	gridH := m.height - headerH - footerH
	if innerW <= 0 || gridH < gridChromeH+calendar.WeeksPerGrid {
		return "Terminal too small"
	}

	header := lipgloss.JoinVertical(lipgloss.Left,
		m.placeBox(innerW, 1, lipgloss.Top, m.renderTitle()),
		m.placeBox(innerW, 1, lipgloss.Top, m.renderQuickJumps()),
	)
	gridBox := view.RenderTable(m.tableViewState(innerW, gridH))
	footerBox := view.RenderFooter(m.footerViewState(innerW))

	content := lipgloss.JoinVertical(lipgloss.Left, header, gridBox, footerBox)
	app := m.styles.AppStyle.Render(content)
	return view.Fill(app, m.width, m.height, m.styles.colorBg)
}

// placeBox is a helper to render content in an explicit lipgloss box.
func (m Model) placeBox(w, h int, vAlign lipgloss.Position, content string) string {
	return view.PlaceBox(w, h, vAlign, content, m.styles.colorBg)
}

func (m Model) renderTitle() string {
	w := m.nav.Window()
	title := m.styles.TitleStyle.Render(w.Title())
	span := m.styles.SpanStyle.Render("  " + view.DateSpan(w.Start, w.End()))
	return title + span
}

func (m Model) renderQuickJumps() string {
	jumps := m.nav.QuickJumps()
	labels := make([]string, len(jumps))
	for i, j := range jumps {
		labels[i] = j.Label
	}
	return view.RenderQuickJumps(labels, m.activeJump(), view.QuickJumpStyles{
		Item:   m.styles.JumpStyle,
		Active: m.styles.JumpActiveStyle,
		Sep:    m.styles.JumpSepStyle,
	})
}

// cellLines returns how many lines each week row gets.
func cellLines(gridH int) int {
	lines := (gridH - gridChromeH - (calendar.WeeksPerGrid - 1)) / calendar.WeeksPerGrid
	if lines < 1 {
		return 1
	}
	return lines
}

func colWidth(innerW int) int {
	w := (innerW - 2 - gridChromeW) / calendar.DaysPerWeek
	if w < 1 {
		return 1
	}
	return w
}

func (m Model) tableViewState(innerW, gridH int) view.TableViewState {
	w := m.nav.Window()
	lines := cellLines(gridH)
	width := colWidth(innerW)
	focus := focusMonth(w)
	today := m.now()

	headers := view.WeekdayHeaders()
	headerStyles := make([]lipgloss.Style, len(headers))
	for i := range headers {
		headerStyles[i] = m.styles.DayHeaderStyle
	}

	rows := make([][]string, calendar.WeeksPerGrid)
	cellStyles := make([][]lipgloss.Style, calendar.WeeksPerGrid)
	for row := 0; row < calendar.WeeksPerGrid; row++ {
		rows[row] = make([]string, calendar.DaysPerWeek)
		cellStyles[row] = make([]lipgloss.Style, calendar.DaysPerWeek)
		for col := 0; col < calendar.DaysPerWeek; col++ {
			i := row*calendar.DaysPerWeek + col
			day := w.Days[i]
			muted := day.Month() != focus
			isToday := dateutil.SameDay(day, today)

			style := m.styles.CellStyle
			dayStyle := m.styles.DayNumberStyle
			switch {
			case muted:
				style = m.styles.CellMutedStyle
				dayStyle = m.styles.DayNumberMuted
			case isToday:
				style = m.styles.CellTodayStyle
			}
			if isToday {
				dayStyle = m.styles.DayNumberToday
			}
			if i == m.cursor {
				style = m.styles.CellCursorStyle
			}

			rows[row][col] = view.RenderCell(view.CellModel{
				Day:    dayLabel(day),
				Events: m.cellEvents(i, muted),
				Hidden: m.hidden[i],
				Width:  width,
				Lines:  lines,
			}, view.CellStyles{
				DayStyle:  dayStyle,
				MoreStyle: m.styles.MoreStyle,
			})
			cellStyles[row][col] = style.Width(width)
		}
	}

	return view.TableViewState{
		InnerW:       innerW,
		GridH:        gridH,
		Headers:      headers,
		HeaderStyles: headerStyles,
		Content: view.TableContent{
			Rows:       rows,
			CellStyles: cellStyles,
		},
		BorderStyle: m.styles.BorderStyle,
		VAlign:      lipgloss.Top,
		Bg:          m.styles.colorBg,
		Render:      true,
	}
}

// dayLabel shows the month name on the 1st so month changes stand out.
func dayLabel(day time.Time) string {
	if day.Day() == 1 {
		return day.Format("Jan 2")
	}
	return strconv.Itoa(day.Day())
}

func (m Model) cellEvents(i int, muted bool) []view.CellEvent {
	events := m.cells[i].Events
	out := make([]view.CellEvent, 0, len(events))
	for _, e := range events {
		out = append(out, view.CellEvent{
			Title: e.Title,
			Style: m.styles.EventStyle(e.Type, muted),
		})
	}
	return out
}

// focusMonth returns the month holding most of the window's days.
func focusMonth(w calendar.Window) time.Month {
	counts := make(map[time.Month]int)
	best := w.Days[0].Month()
	for _, d := range w.Days {
		counts[d.Month()]++
		if counts[d.Month()] > counts[best] {
			best = d.Month()
		}
	}
	return best
}

func (m Model) footerViewState(innerW int) view.FooterViewState {
	return view.FooterViewState{
		InnerW:      innerW,
		FooterH:     footerH,
		LegendText:  m.renderLegend(),
		StatusText:  m.statusText(),
		HelpText:    m.help.ShortHelpView(m.keys.ShortHelp()),
		LegendStyle: m.styles.LegendStyle,
		StatusStyle: m.styles.StatusStyle,
		HelpStyle:   m.styles.HelpStyle,
		VAlign:      lipgloss.Bottom,
		Bg:          m.styles.colorBg,
	}
}

func (m Model) renderLegend() string {
	parts := make([]string, 0, len(event.Types))
	for _, t := range event.Types {
		parts = append(parts, m.styles.EventStyle(t, false).Render(" "+string(t)+" "))
	}
	return strings.Join(parts, m.styles.LegendStyle.Render(" "))
}

func (m Model) statusText() string {
	if m.statusMsg != "" {
		return m.statusMsg
	}
	if m.loading {
		return "Loading..."
	}
	placed := 0
	for _, c := range m.cells {
		placed += len(c.Events)
	}
	switch placed {
	case 0:
		return "No events in this window"
	case 1:
		return "1 event"
	default:
		return fmt.Sprintf("%d events", placed)
	}
}

func (m Model) renderDayDetail() string {
	day := m.nav.Window().Days[m.cursor]
	date := day.Format(dateutil.DateLayout)

	var model view.DayDetailModel
	for _, e := range m.events {
		if e.Date != date || e.IsRecurring {
			continue
		}
		model.Events = append(model.Events, view.DayDetailEvent{
			Type:     string(e.Type),
			Title:    e.Title,
			Category: e.CategoryName,
			Style:    m.styles.EventStyle(e.Type, false),
		})
	}
	model.Recurring = m.recurringOn(day)

	body := view.RenderDayDetailBody(model, view.DayDetailStyles{
		BodyStyle:  m.styles.ModalBodyStyle,
		LabelStyle: m.styles.ModalLabelStyle,
		HintStyle:  m.styles.ModalHintStyle,
	})
	styles := m.styles.modalStyles()
	return view.RenderModalFrame(day.Format("Monday, Jan 2 2006"), body, view.DayDetailFooter(styles), styles)
}

// recurringOn describes the recurring events with an occurrence on day.
func (m Model) recurringOn(day time.Time) []string {
	engine := m.config.Engine()
	// Projection is strictly after the probe, so probe from the previous instant.
	probe := dateutil.TruncateToDay(day).Add(-time.Second)

	var out []string
	for _, e := range m.recurring {
		if dateutil.TruncateToDay(e.Start).After(day) {
			continue
		}
		occ := e.Occurrences(engine, probe, 1)
		if len(occ) == 0 || !dateutil.SameDay(occ[0].Start, day) {
			continue
		}
		out = append(out, fmt.Sprintf("%s %s (%s)", occ[0].Start.Format(dateutil.ClockLayout), e.Title, e.Rule.Describe()))
	}
	return out
}

func (m Model) renderHelpModal() string {
	styles := m.styles.modalStyles()
	var lines []string
	for i, group := range m.keys.FullHelp() {
		if i > 0 {
			lines = append(lines, "")
		}
		for _, b := range group {
			h := b.Help()
			lines = append(lines, m.styles.ModalLabelStyle.Render(fmt.Sprintf(" %-6s", h.Key))+
				m.styles.ModalBodyStyle.Render(" "+h.Desc))
		}
	}
	footer := view.RenderModalButtons(styles, "[?] Close")
	return view.RenderModalFrame("Keys", strings.Join(lines, "\n"), footer, styles)
}
