// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: Defines events and event_values with UNIQUE(event_id, date) and cascade.
package storage

// initSchema creates the database schema.
func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		type TEXT NOT NULL CHECK (type IN ('boolean', 'number', 'string')),
		unit TEXT,
		color TEXT NOT NULL DEFAULT '#3b82f6',
		icon TEXT,
		position INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS event_values (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		event_id INTEGER NOT NULL,
		date TEXT NOT NULL,
		value TEXT NOT NULL,
		timestamp DATETIME NOT NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		FOREIGN KEY (event_id) REFERENCES events(id) ON DELETE CASCADE,
		UNIQUE (event_id, date)
	);

	CREATE INDEX IF NOT EXISTS idx_event_values_event ON event_values(event_id);
	CREATE INDEX IF NOT EXISTS idx_event_values_date ON event_values(date);
	CREATE INDEX IF NOT EXISTS idx_events_position ON events(position);
	`

	_, err := d.db.Exec(schema)
	return err
}
