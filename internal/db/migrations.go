package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS events (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			title           TEXT NOT NULL,
			description     TEXT NOT NULL DEFAULT '',
			group_name      TEXT NOT NULL DEFAULT '',
			category        TEXT NOT NULL DEFAULT '',
			event_type      TEXT NOT NULL CHECK(event_type IN ('Lightning', 'Regular', 'Special')),
			start_time      TEXT NOT NULL,
			end_time        TEXT,
			repeat_interval TEXT NOT NULL DEFAULT '' CHECK(repeat_interval IN ('', 'daily', 'weekly', 'monthly')),
			weekday         INTEGER CHECK(weekday BETWEEN 0 AND 6),
			week_of_month   INTEGER CHECK(week_of_month BETWEEN 1 AND 5),
			created_at      TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_events_start ON events(start_time);
		CREATE INDEX IF NOT EXISTS idx_events_interval ON events(repeat_interval);
		CREATE INDEX IF NOT EXISTS idx_events_group ON events(group_name);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating events table: %w", err)
	}

	return nil
}
