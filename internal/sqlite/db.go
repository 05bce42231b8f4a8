package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection
type DB struct {
	*sql.DB
}

// New creates a new SQLite database connection
func New(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return &DB{db}, nil
}

// RunMigrations creates the schema.
func (db *DB) RunMigrations() error {
	migration := `
-- Climb log entries. grade_key is a precomputed sortable integer
-- (V0..V17 -> 0..17, 5.2..5.15 -> 502..515).
CREATE TABLE IF NOT EXISTS climb_logs (
    id TEXT PRIMARY KEY,
    date TEXT NOT NULL,
    environment TEXT NOT NULL CHECK(environment IN ('gym', 'outdoor')),
    location TEXT NOT NULL,
    route_name TEXT NOT NULL,
    climb_type TEXT NOT NULL CHECK(climb_type IN ('boulder', 'top-rope', 'sport', 'trad')),
    grade_system TEXT NOT NULL CHECK(grade_system IN ('V', 'YDS')),
    grade TEXT NOT NULL,
    grade_key INTEGER NOT NULL,
    progress TEXT NOT NULL CHECK(progress IN ('complete', 'incomplete')),
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_logs_date ON climb_logs(date);
CREATE INDEX IF NOT EXISTS idx_logs_climb_type ON climb_logs(climb_type);
CREATE INDEX IF NOT EXISTS idx_logs_progress ON climb_logs(progress);
CREATE INDEX IF NOT EXISTS idx_logs_environment ON climb_logs(environment);

-- Attached photos, one per entry.
CREATE TABLE IF NOT EXISTS climb_images (
    log_id TEXT PRIMARY KEY,
    content_type TEXT NOT NULL,
    size INTEGER NOT NULL,
    data BLOB NOT NULL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (log_id) REFERENCES climb_logs(id) ON DELETE CASCADE
);
`

	_, err := db.Exec(migration)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
