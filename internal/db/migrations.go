package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS blocks (
			id                     TEXT PRIMARY KEY,
			activity_name          TEXT NOT NULL,
			quadrant               TEXT CHECK(quadrant IN ('q1', 'q2', 'q3', 'q4')),
			energy                 TEXT CHECK(energy IN ('gives', 'neutral', 'drains')),
			date                   DATE NOT NULL,
			start_time             TIME NOT NULL,
			end_time               TIME NOT NULL,
			source                 TEXT DEFAULT 'live' CHECK(source IN ('live', 'external')),
			external_event_id      TEXT,
			is_recurring           INTEGER NOT NULL DEFAULT 0,
			recurrence_rule        TEXT,
			is_recurrence_instance INTEGER NOT NULL DEFAULT 0,
			parent_block_id        TEXT REFERENCES blocks(id),
			created_at             DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_blocks_date ON blocks(date);
		CREATE UNIQUE INDEX IF NOT EXISTS idx_blocks_external
			ON blocks(external_event_id) WHERE external_event_id IS NOT NULL;

		CREATE TABLE IF NOT EXISTS tags (
			id    TEXT PRIMARY KEY,
			name  TEXT NOT NULL UNIQUE,
			color TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS block_tags (
			block_id TEXT NOT NULL REFERENCES blocks(id) ON DELETE CASCADE,
			tag_id   TEXT NOT NULL REFERENCES tags(id) ON DELETE CASCADE,
			PRIMARY KEY (block_id, tag_id)
		);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}

	return nil
}
