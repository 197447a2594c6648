// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/huddlehq/huddle/internal/dateutil"
	"github.com/huddlehq/huddle/internal/event"
	"github.com/huddlehq/huddle/internal/recurrence"
)

const eventColumns = `id, title, description, group_name, category, event_type,
	start_time, end_time, repeat_interval, weekday, week_of_month, created_at`

const insertEvent = `
	INSERT INTO events (
		title, description, group_name, category, event_type,
		start_time, end_time, repeat_interval, weekday, week_of_month, created_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

// SQLite implements event.Repository using SQLite.
//
// Start and end times are stored as local wall-clock ISO-8601 strings without
// an offset and are read back in the repository's location.
type SQLite struct {
	db  *sql.DB
	loc *time.Location
}

// New creates a new SQLite repository in time.Local and runs migrations.
func New(path string) (*SQLite, error) {
	return NewInLocation(path, time.Local)
}

// NewInLocation is like New but reads stored wall-clock times in loc.
func NewInLocation(path string, loc *time.Location) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	if loc == nil {
		loc = time.Local
	}
	s := &SQLite{db: db, loc: loc}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// CreateEvent adds a new event to the repository and sets its ID.
func (s *SQLite) CreateEvent(ctx context.Context, e *event.Event) error {
	if err := e.Validate(); err != nil {
		return err
	}
	return insert(ctx, s.db, e)
}

// CreateEvents adds multiple events in a single transaction.
func (s *SQLite) CreateEvents(ctx context.Context, events []*event.Event) error {
	if len(events) == 0 {
		return nil
	}
	for _, e := range events {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("event %q: %w", e.Title, err)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, e := range events {
		if err := insert(ctx, tx, e); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func insert(ctx context.Context, x execer, e *event.Event) error {
	var end sql.NullString
	if e.End != nil {
		end = sql.NullString{String: dateutil.FormatISO(*e.End), Valid: true}
	}
	var weekday, week sql.NullInt64
	if e.Rule.Weekday != nil {
		weekday = sql.NullInt64{Int64: int64(*e.Rule.Weekday), Valid: true}
	}
	if e.Rule.WeekOfMonth != nil {
		week = sql.NullInt64{Int64: int64(*e.Rule.WeekOfMonth), Valid: true}
	}

	result, err := x.ExecContext(ctx, insertEvent,
		e.Title,
		e.Description,
		e.Group,
		e.Category,
		string(e.Type),
		dateutil.FormatISO(e.Start),
		end,
		string(e.Rule.Interval),
		weekday,
		week,
		e.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting event %q: %w", e.Title, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting last insert id: %w", err)
	}
	e.ID = id
	return nil
}

// GetEvent retrieves an event by ID.
func (s *SQLite) GetEvent(ctx context.Context, id int64) (*event.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = ?`

	e, err := s.scanEvent(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", event.ErrEventNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying event: %w", err)
	}
	return e, nil
}

// ListEventsByDateRange returns events whose start date falls within the
// range (inclusive), ordered by start time.
func (s *SQLite) ListEventsByDateRange(ctx context.Context, start, end time.Time) ([]*event.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events
		WHERE substr(start_time, 1, 10) >= ? AND substr(start_time, 1, 10) <= ?
		ORDER BY start_time, id`

	return s.query(ctx, query, start.Format(dateutil.DateLayout), end.Format(dateutil.DateLayout))
}

// ListRecurringEvents returns every event with a repeat rule.
func (s *SQLite) ListRecurringEvents(ctx context.Context) ([]*event.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events
		WHERE repeat_interval != ''
		ORDER BY start_time, id`

	return s.query(ctx, query)
}

// ListAllEvents returns every event ordered by start time.
func (s *SQLite) ListAllEvents(ctx context.Context) ([]*event.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events ORDER BY start_time, id`
	return s.query(ctx, query)
}

// DeleteEvent removes an event.
func (s *SQLite) DeleteEvent(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting event: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("%w: %d", event.ErrEventNotFound, id)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) query(ctx context.Context, query string, args ...any) ([]*event.Event, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var events []*event.Event
	for rows.Next() {
		e, err := s.scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating events: %w", err)
	}
	return events, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func (s *SQLite) scanEvent(row scanner) (*event.Event, error) {
	var (
		e         event.Event
		typ       string
		start     string
		end       sql.NullString
		interval  string
		weekday   sql.NullInt64
		week      sql.NullInt64
		createdAt string
	)

	err := row.Scan(
		&e.ID,
		&e.Title,
		&e.Description,
		&e.Group,
		&e.Category,
		&typ,
		&start,
		&end,
		&interval,
		&weekday,
		&week,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	e.Type = event.Type(typ)
	e.Rule.Interval = recurrence.Interval(interval)

	e.Start, err = time.ParseInLocation(dateutil.ISOLayout, start, s.loc)
	if err != nil {
		return nil, fmt.Errorf("parsing start time: %w", err)
	}

	if end.Valid {
		t, err := time.ParseInLocation(dateutil.ISOLayout, end.String, s.loc)
		if err != nil {
			return nil, fmt.Errorf("parsing end time: %w", err)
		}
		e.End = &t
	}

	if weekday.Valid {
		wd := time.Weekday(weekday.Int64)
		e.Rule.Weekday = &wd
	}

	if week.Valid {
		n := int(week.Int64)
		e.Rule.WeekOfMonth = &n
	}

	e.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created at: %w", err)
	}

	return &e, nil
}
