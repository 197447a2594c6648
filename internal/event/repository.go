package event

import (
	"context"
	"time"
)

// Repository defines the storage interface for events.
type Repository interface {
	// CreateEvent adds a new event and sets its ID.
	CreateEvent(ctx context.Context, e *Event) error

	// CreateEvents adds multiple events in one transaction.
	CreateEvents(ctx context.Context, events []*Event) error

	// GetEvent retrieves an event by ID. Returns ErrEventNotFound if missing.
	GetEvent(ctx context.Context, id int64) (*Event, error)

	// ListEventsByDateRange returns events starting within the date range (inclusive),
	// ordered by start time.
	ListEventsByDateRange(ctx context.Context, start, end time.Time) ([]*Event, error)

	// ListRecurringEvents returns every event with a repeat rule.
	ListRecurringEvents(ctx context.Context) ([]*Event, error)

	// ListAllEvents returns every event ordered by start time.
	ListAllEvents(ctx context.Context) ([]*Event, error)

	// DeleteEvent removes an event. Returns ErrEventNotFound if missing.
	DeleteEvent(ctx context.Context, id int64) error

	// Close releases any resources held by the repository.
	Close() error
}
