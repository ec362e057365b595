package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS days (
			date       TEXT PRIMARY KEY,
			start      INTEGER NOT NULL,
			total_time INTEGER NOT NULL CHECK(total_time >= 0),
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS slots (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			date         TEXT NOT NULL REFERENCES days(date),
			position     INTEGER NOT NULL,
			start        INTEGER NOT NULL,
			reqtime      INTEGER NOT NULL CHECK(reqtime >= 0),
			assigned     INTEGER NOT NULL,
			fixed_time   INTEGER NOT NULL DEFAULT 0,
			fixed_length INTEGER NOT NULL DEFAULT 0,
			description  TEXT NOT NULL,
			UNIQUE(date, position)
		);

		CREATE TABLE IF NOT EXISTS subslots (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			slot_id      INTEGER NOT NULL REFERENCES slots(id),
			position     INTEGER NOT NULL,
			start        INTEGER NOT NULL,
			reqtime      INTEGER NOT NULL CHECK(reqtime >= 0),
			assigned     INTEGER NOT NULL,
			fixed_time   INTEGER NOT NULL DEFAULT 0,
			fixed_length INTEGER NOT NULL DEFAULT 0,
			description  TEXT NOT NULL,
			UNIQUE(slot_id, position)
		);

		CREATE TABLE IF NOT EXISTS templates (
			name       TEXT PRIMARY KEY,
			start      INTEGER NOT NULL,
			total_time INTEGER NOT NULL,
			slots      TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_slots_date ON slots(date);
		CREATE INDEX IF NOT EXISTS idx_subslots_slot ON subslots(slot_id);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}

	return nil
}
