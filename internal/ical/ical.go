// Package ical exports events to iCalendar and imports them back.
//
// Times are written as floating local wall-clock values (no TZID, no Z),
// matching how events are stored.
package ical

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"github.com/huddlehq/huddle/internal/dateutil"
	"github.com/huddlehq/huddle/internal/event"
	"github.com/huddlehq/huddle/internal/recurrence"
)

const (
	productID    = "-//huddle//Event Calendar//EN"
	calendarName = "huddle"
	uidDomain    = "huddle"

	floatingLayout = "20060102T150405"
	dateLayout     = "20060102"
)

// Non-standard properties carrying fields iCalendar has no slot for.
const (
	propertyType  = ics.ComponentProperty("X-HUDDLE-TYPE")
	propertyGroup = ics.ComponentProperty("X-HUDDLE-GROUP")
)

// Import errors.
var (
	ErrNoEvents     = errors.New("calendar contains no events")
	ErrMissingStart = errors.New("event has no DTSTART")
	ErrEmptySummary = errors.New("event has no SUMMARY")
)

// uidNamespace scopes generated UIDs so the same stored event always exports
// with the same UID.
var uidNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://huddle.events/event"))

// UID returns the iCalendar UID for e.
func UID(e *event.Event) string {
	var id uuid.UUID
	if e.ID == 0 {
		id = uuid.New()
	} else {
		key := strconv.FormatInt(e.ID, 10) + "/" + e.CreatedAt.UTC().Format(time.RFC3339)
		id = uuid.NewSHA1(uidNamespace, []byte(key))
	}
	return id.String() + "@" + uidDomain
}

// Export writes events as a PUBLISH calendar. now stamps DTSTAMP.
func Export(w io.Writer, events []*event.Event, now time.Time) error {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productID)
	cal.SetXWRCalName(calendarName)

	for _, e := range events {
		if err := addEvent(cal, e, now); err != nil {
			return fmt.Errorf("exporting event %d: %w", e.ID, err)
		}
	}

	if err := cal.SerializeTo(w); err != nil {
		return fmt.Errorf("writing calendar: %w", err)
	}
	return nil
}

func addEvent(cal *ics.Calendar, e *event.Event, now time.Time) error {
	vevent := cal.AddEvent(UID(e))
	vevent.SetDtStampTime(now)
	vevent.SetCreatedTime(e.CreatedAt)
	vevent.SetProperty(ics.ComponentPropertyDtStart, e.Start.Format(floatingLayout))
	if e.End != nil {
		vevent.SetProperty(ics.ComponentPropertyDtEnd, e.End.Format(floatingLayout))
	}
	vevent.SetSummary(e.Title)
	if e.Description != "" {
		vevent.SetDescription(e.Description)
	}
	if e.Category != "" {
		vevent.AddCategory(e.Category)
	}
	vevent.SetPriority(priorityOf(e.Type))
	vevent.SetProperty(propertyType, string(e.Type))
	if e.Group != "" {
		vevent.SetProperty(propertyGroup, e.Group)
	}

	if e.IsRecurring() {
		rule, err := e.Rule.WithDefaults(e.Start).RRule()
		if err != nil {
			return err
		}
		vevent.AddRrule(rule)
	}
	return nil
}

// priorityOf maps event types onto iCalendar PRIORITY (1 highest, 9 lowest).
func priorityOf(t event.Type) int {
	switch t {
	case event.TypeSpecial:
		return 1
	case event.TypeLightning:
		return 5
	default:
		return 9
	}
}

func typeFromPriority(p int) (event.Type, bool) {
	switch {
	case p >= 1 && p <= 4:
		return event.TypeSpecial, true
	case p == 5:
		return event.TypeLightning, true
	case p >= 6 && p <= 9:
		return event.TypeRegular, true
	default:
		return "", false
	}
}

// Options control how imported VEVENTs become events.
type Options struct {
	// DefaultType is used when an event carries neither X-HUDDLE-TYPE nor PRIORITY.
	DefaultType event.Type
	// Location interprets floating times; UTC and TZID times are converted into it.
	Location *time.Location
	// Now stamps CreatedAt.
	Now time.Time
	// Engine resolves first occurrences; nil uses the default lookahead.
	Engine *recurrence.Engine
}

// Skipped records a VEVENT that could not be imported.
type Skipped struct {
	UID     string
	Summary string
	Err     error
}

func (s Skipped) Error() string {
	name := s.Summary
	if name == "" {
		name = s.UID
	}
	return fmt.Sprintf("%s: %v", name, s.Err)
}

// Result holds the outcome of an import.
type Result struct {
	Events  []*event.Event
	Skipped []Skipped
}

// Import parses a calendar and converts each VEVENT into an event draft.
// Events that cannot be represented, such as unsupported RRULEs, are skipped
// and reported rather than failing the whole import.
func Import(r io.Reader, opts Options) (*Result, error) {
	cal, err := ics.ParseCalendar(r)
	if err != nil {
		return nil, fmt.Errorf("parsing calendar: %w", err)
	}

	vevents := cal.Events()
	if len(vevents) == 0 {
		return nil, ErrNoEvents
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if !opts.DefaultType.Valid() {
		opts.DefaultType = event.TypeRegular
	}

	res := &Result{}
	for _, vevent := range vevents {
		e, err := convert(vevent, opts)
		if err != nil {
			res.Skipped = append(res.Skipped, Skipped{
				UID:     vevent.Id(),
				Summary: propertyValue(vevent, ics.ComponentPropertySummary),
				Err:     err,
			})
			continue
		}
		res.Events = append(res.Events, e)
	}
	return res, nil
}

func convert(vevent *ics.VEvent, opts Options) (*event.Event, error) {
	e := &event.Event{
		Title:       strings.TrimSpace(propertyValue(vevent, ics.ComponentPropertySummary)),
		Description: propertyValue(vevent, ics.ComponentPropertyDescription),
		Group:       propertyValue(vevent, propertyGroup),
		Type:        opts.DefaultType,
		CreatedAt:   opts.Now,
	}
	if e.Title == "" {
		return nil, ErrEmptySummary
	}

	if categories := propertyValue(vevent, ics.ComponentPropertyCategories); categories != "" {
		e.Category = strings.TrimSpace(strings.Split(categories, ",")[0])
	}

	if t, err := event.ParseType(propertyValue(vevent, propertyType)); err == nil {
		e.Type = t
	} else if p, err := strconv.Atoi(propertyValue(vevent, ics.ComponentPropertyPriority)); err == nil {
		if t, ok := typeFromPriority(p); ok {
			e.Type = t
		}
	}

	start, err := timeProperty(vevent, ics.ComponentPropertyDtStart, opts.Location)
	if err != nil {
		return nil, err
	}
	e.Start = start

	if vevent.GetProperty(ics.ComponentPropertyDtEnd) != nil {
		end, err := timeProperty(vevent, ics.ComponentPropertyDtEnd, opts.Location)
		if err != nil {
			return nil, err
		}
		e.End = &end
	}

	rrules := vevent.GetProperties(ics.ComponentPropertyRrule)
	switch len(rrules) {
	case 0:
	case 1:
		rule, err := recurrence.RuleFromRRule(rrules[0].Value)
		if err != nil {
			return nil, err
		}
		e.Rule = rule.WithDefaults(e.Start)
		if err := anchorToRule(e, opts.Engine); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: multiple RRULEs", recurrence.ErrUnsupportedRRule)
	}

	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// anchorToRule moves a recurring event whose DTSTART is not an occurrence of
// its own rule onto the first occurrence on or after that date, keeping the
// time of day and duration.
func anchorToRule(e *event.Event, engine *recurrence.Engine) error {
	if !e.Rule.IsRecurring() || e.Rule.Matches(e.Start) {
		return nil
	}
	in := recurrence.FirstInput{
		Rule:  e.Rule,
		Date:  e.Start.Format(dateutil.DateLayout),
		Start: dateutil.ClockOf(e.Start).String(),
	}
	res, err := engine.ResolveFirst(in, dateutil.TruncateToDay(e.Start))
	if err != nil {
		return fmt.Errorf("anchoring %s: %w", e.Start.Format(dateutil.DateLayout), err)
	}
	if e.End != nil {
		end := res.Start.Add(e.End.Sub(e.Start))
		e.End = &end
	}
	e.Start = res.Start
	return nil
}

func propertyValue(vevent *ics.VEvent, p ics.ComponentProperty) string {
	prop := vevent.GetProperty(p)
	if prop == nil {
		return ""
	}
	return prop.Value
}

// timeProperty reads a DTSTART/DTEND. Floating and all-day values are taken
// as wall-clock in loc; UTC and TZID values are converted into loc.
func timeProperty(vevent *ics.VEvent, p ics.ComponentProperty, loc *time.Location) (time.Time, error) {
	prop := vevent.GetProperty(p)
	if prop == nil {
		if p == ics.ComponentPropertyDtStart {
			return time.Time{}, ErrMissingStart
		}
		return time.Time{}, fmt.Errorf("missing %s", p)
	}

	value := prop.Value
	_, hasTZID := prop.ICalParameters["TZID"]
	switch {
	case hasTZID || strings.HasSuffix(value, "Z"):
		var (
			t   time.Time
			err error
		)
		if p == ics.ComponentPropertyDtStart {
			t, err = vevent.GetStartAt()
		} else {
			t, err = vevent.GetEndAt()
		}
		if err != nil {
			return time.Time{}, fmt.Errorf("parsing %s: %w", p, err)
		}
		return t.In(loc), nil
	case len(value) == len(dateLayout):
		t, err := time.ParseInLocation(dateLayout, value, loc)
		if err != nil {
			return time.Time{}, fmt.Errorf("parsing %s: %w", p, err)
		}
		return t, nil
	default:
		t, err := time.ParseInLocation(floatingLayout, value, loc)
		if err != nil {
			return time.Time{}, fmt.Errorf("parsing %s: %w", p, err)
		}
		return t, nil
	}
}
