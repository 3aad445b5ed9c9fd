package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent and re-run on
// every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS charts (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL COLLATE NOCASE UNIQUE,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`ALTER TABLE charts ADD COLUMN description TEXT NOT NULL DEFAULT ''`,

	`CREATE TABLE IF NOT EXISTS bars (
		chart_id         TEXT NOT NULL REFERENCES charts(id) ON DELETE CASCADE,
		bar_id           TEXT NOT NULL CHECK(length(trim(bar_id)) > 0),
		position         INTEGER NOT NULL,
		has_label        INTEGER NOT NULL DEFAULT 0,
		label_name       TEXT,
		label_color      TEXT,
		has_html         INTEGER NOT NULL DEFAULT 0,
		html_logo        TEXT,
		has_handles      INTEGER,
		immobile         INTEGER,
		bundle           TEXT,
		push_on_overlap  INTEGER,
		drag_limit_left  REAL,
		drag_limit_right REAL,
		style_json       TEXT,
		class            TEXT,
		extra_json       TEXT,
		created_at       TEXT NOT NULL,
		updated_at       TEXT NOT NULL,
		PRIMARY KEY (chart_id, bar_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_bars_chart_position ON bars(chart_id, position)`,
	`CREATE INDEX IF NOT EXISTS idx_bars_chart_bundle ON bars(chart_id, bundle)`,
}
