package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate applies the schema. Statements are idempotent and re-run on
// every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	// Single learner: the row id is pinned to 'default'.
	`CREATE TABLE IF NOT EXISTS user_profile (
		id TEXT PRIMARY KEY CHECK (id = 'default'),
		name TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL DEFAULT 'Unassigned',
		objective TEXT NOT NULL DEFAULT '',
		persona_name TEXT,
		persona_description TEXT,
		expertise_level INTEGER NOT NULL DEFAULT 1 CHECK (expertise_level BETWEEN 1 AND 10),
		daily_commitment TEXT NOT NULL DEFAULT '15 mins',
		current_day INTEGER NOT NULL DEFAULT 0 CHECK (current_day >= 0),
		total_days INTEGER NOT NULL DEFAULT 30,
		last_quiz_score REAL NOT NULL DEFAULT 0,
		is_returning_user INTEGER NOT NULL DEFAULT 0,
		content_buffer TEXT,
		updated_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS curriculum (
		id TEXT PRIMARY KEY CHECK (id = 'default'),
		track_name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS curriculum_days (
		curriculum_id TEXT NOT NULL REFERENCES curriculum(id) ON DELETE CASCADE,
		day INTEGER NOT NULL CHECK (day >= 1),
		title TEXT NOT NULL DEFAULT '',
		topic TEXT NOT NULL,
		PRIMARY KEY (curriculum_id, day)
	)`,
	`CREATE TABLE IF NOT EXISTS content_cache (
		role TEXT NOT NULL,
		objective TEXT NOT NULL,
		day INTEGER NOT NULL,
		topic TEXT NOT NULL,
		content TEXT NOT NULL,
		created_at TEXT NOT NULL,
		PRIMARY KEY (role, objective, day, topic)
	)`,
}
