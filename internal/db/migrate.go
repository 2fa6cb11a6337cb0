package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations. Every statement is idempotent, so it is
// safe to call on an existing database.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS releases (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		start_date TEXT,
		end_date TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS features (
		id TEXT PRIMARY KEY,
		release_id TEXT NOT NULL REFERENCES releases(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		order_index INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE TABLE IF NOT EXISTS sprints (
		id TEXT PRIMARY KEY,
		release_id TEXT NOT NULL REFERENCES releases(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		order_index INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE TABLE IF NOT EXISTS work_items (
		id TEXT PRIMARY KEY,
		feature_id TEXT NOT NULL REFERENCES features(id) ON DELETE CASCADE,
		title TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'planned' CHECK(status IN ('planned','in_progress','completed')),
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		effort_days REAL,
		story_points REAL,
		assigned_to TEXT NOT NULL DEFAULT '',
		required_role TEXT NOT NULL DEFAULT '',
		order_index INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	// depends_on_id carries no foreign key: a plan may name a blocker that was
	// never imported, and that must surface as a violation, not an insert error.
	`CREATE TABLE IF NOT EXISTS work_item_deps (
		work_item_id TEXT NOT NULL REFERENCES work_items(id) ON DELETE CASCADE,
		depends_on_id TEXT NOT NULL,
		position INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (work_item_id, depends_on_id)
	)`,

	`CREATE TABLE IF NOT EXISTS team_members (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT '',
		experience TEXT NOT NULL DEFAULT '',
		velocity REAL NOT NULL DEFAULT 1.0
	)`,

	`CREATE TABLE IF NOT EXISTS pto_entries (
		id TEXT PRIMARY KEY,
		member_id TEXT NOT NULL REFERENCES team_members(id) ON DELETE CASCADE,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		reason TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE TABLE IF NOT EXISTS holidays (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_features_release ON features(release_id)`,
	`CREATE INDEX IF NOT EXISTS idx_sprints_release ON sprints(release_id)`,
	`CREATE INDEX IF NOT EXISTS idx_work_items_feature ON work_items(feature_id)`,
	`CREATE INDEX IF NOT EXISTS idx_work_items_assignee ON work_items(assigned_to)`,
	`CREATE INDEX IF NOT EXISTS idx_pto_member ON pto_entries(member_id)`,
	`CREATE INDEX IF NOT EXISTS idx_holidays_start ON holidays(start_date)`,
}
