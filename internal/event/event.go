// Package event defines the event record and its types.
package event

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/huddlehq/huddle/internal/recurrence"
)

// Validation errors.
var (
	ErrEmptyTitle     = errors.New("title cannot be empty")
	ErrInvalidType    = errors.New("type must be 'Lightning', 'Regular' or 'Special'")
	ErrEndBeforeStart = errors.New("end time must be after start time")
)

// Domain errors.
var (
	ErrEventNotFound = errors.New("event not found")
)

// Type is the kind of event, which also decides its display priority.
type Type string

const (
	TypeLightning Type = "Lightning"
	TypeRegular   Type = "Regular"
	TypeSpecial   Type = "Special"
)

// Types lists every event type in priority order.
var Types = []Type{TypeSpecial, TypeLightning, TypeRegular}

// ParseType parses an event type name, case-insensitively.
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lightning":
		return TypeLightning, nil
	case "regular":
		return TypeRegular, nil
	case "special":
		return TypeSpecial, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidType, s)
	}
}

// Valid returns true if t is a known type.
func (t Type) Valid() bool {
	switch t {
	case TypeLightning, TypeRegular, TypeSpecial:
		return true
	default:
		return false
	}
}

// Priority orders types for display. Lower sorts first; unknown types last.
func (t Type) Priority() int {
	switch t {
	case TypeSpecial:
		return 0
	case TypeLightning:
		return 1
	case TypeRegular:
		return 2
	default:
		return 3
	}
}

// Event is a persisted event. Start is the first occurrence for recurring
// events; Rule is kept so later occurrences can be projected again.
type Event struct {
	ID          int64
	Title       string
	Description string
	Group       string // empty for top-level events
	Category    string
	Type        Type
	Start       time.Time
	End         *time.Time
	Rule        recurrence.Rule
	CreatedAt   time.Time
}

// Draft holds the raw fields of an event being created. Every creation flow
// (top-level, group wizard, group-scoped) fills a Draft and calls New.
type Draft struct {
	Title       string
	Description string
	Group       string
	Category    string
	Type        string
	Schedule    recurrence.FirstInput
}

// New validates d and resolves its first occurrence relative to now.
// A nil engine uses the default recurrence settings.
func New(d Draft, engine *recurrence.Engine, now time.Time) (*Event, error) {
	title := strings.TrimSpace(d.Title)
	if title == "" {
		return nil, ErrEmptyTitle
	}

	typ, err := ParseType(d.Type)
	if err != nil {
		return nil, err
	}

	resolved, err := engine.ResolveFirst(d.Schedule, now)
	if err != nil {
		return nil, fmt.Errorf("resolving schedule: %w", err)
	}

	e := &Event{
		Title:       title,
		Description: strings.TrimSpace(d.Description),
		Group:       strings.TrimSpace(d.Group),
		Category:    strings.TrimSpace(d.Category),
		Type:        typ,
		Start:       resolved.Start,
		End:         resolved.End,
		Rule:        d.Schedule.Rule,
		CreatedAt:   now,
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// Validate checks an assembled event, e.g. one read from an import.
func (e *Event) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return ErrEmptyTitle
	}
	if !e.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidType, e.Type)
	}
	if err := e.Rule.Validate(); err != nil {
		return err
	}
	if e.End != nil && !e.End.After(e.Start) {
		return ErrEndBeforeStart
	}
	return nil
}

// IsRecurring returns true if the event repeats.
func (e *Event) IsRecurring() bool {
	return e.Rule.IsRecurring()
}

// Duration returns End - Start, or zero when there is no end.
func (e *Event) Duration() time.Duration {
	if e.End == nil {
		return 0
	}
	return e.End.Sub(e.Start)
}

// Anchor returns the anchor time later occurrences inherit.
func (e *Event) Anchor() recurrence.AnchorTime {
	return recurrence.AnchorTime{Start: e.Start, Duration: e.Duration()}
}

// Occurrences projects the next count occurrences of a recurring event.
// Non-recurring events yield nil.
func (e *Event) Occurrences(engine *recurrence.Engine, now time.Time, count int) []recurrence.Occurrence {
	if !e.IsRecurring() {
		return nil
	}
	return engine.Project(e.Anchor(), e.Rule, now, count)
}

// Date returns the event's start date as YYYY-MM-DD.
func (e *Event) Date() string {
	return e.Start.Format("2006-01-02")
}
