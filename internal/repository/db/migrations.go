package db

import (
	"database/sql"
	"fmt"
)

// migration is one schema version. Statements run inside a single
// transaction together with the schema_migrations bookkeeping row.
type migration struct {
	version int
	name    string
	stmts   []string
}

const schemaMigrationsSQL = `
CREATE TABLE IF NOT EXISTS schema_migrations (
    version INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

var migrations = []migration{
	{
		version: 1,
		name:    "create locations and users",
		stmts: []string{`
CREATE TABLE locations (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    prefecture TEXT NOT NULL,
    latitude REAL NOT NULL,
    longitude REAL NOT NULL,
    elevation REAL NOT NULL DEFAULT 0,
    fuji_azimuth REAL NOT NULL,
    fuji_distance_km REAL NOT NULL
);`, `
CREATE TABLE users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    username TEXT UNIQUE NOT NULL,
    password_hash TEXT NOT NULL
);`},
	},
	{
		version: 2,
		name:    "create location_events",
		stmts: []string{`
CREATE TABLE location_events (
    id TEXT PRIMARY KEY,
    location_id INTEGER NOT NULL
        REFERENCES locations(id) ON DELETE CASCADE ON UPDATE CASCADE,
    event_date TEXT NOT NULL,
    event_time TIMESTAMP NOT NULL,
    event_type TEXT NOT NULL,
    sub_type TEXT NOT NULL,
    azimuth REAL NOT NULL,
    altitude REAL NOT NULL,
    quality_score REAL NOT NULL DEFAULT 0,
    moon_phase REAL,
    moon_illumination REAL,
    calculation_year INTEGER NOT NULL,
    UNIQUE (location_id, event_date, event_time, event_type)
);`,
			`CREATE INDEX idx_location_events_location_date ON location_events (location_id, event_date);`,
			`CREATE INDEX idx_location_events_date ON location_events (event_date);`,
			`CREATE INDEX idx_location_events_type_date ON location_events (event_type, event_date);`,
			`CREATE INDEX idx_location_events_quality ON location_events (quality_score DESC);`,
		},
	},
	{
		version: 3,
		name:    "create favorite_locations",
		stmts: []string{`
CREATE TABLE favorite_locations (
    user_id INTEGER NOT NULL
        REFERENCES users(id) ON DELETE CASCADE ON UPDATE CASCADE,
    location_id INTEGER NOT NULL
        REFERENCES locations(id) ON DELETE CASCADE ON UPDATE CASCADE,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (user_id, location_id)
);`},
	},
	{
		version: 4,
		name:    "add accuracy to location_events",
		stmts: []string{
			`ALTER TABLE location_events ADD COLUMN accuracy TEXT;`,
		},
	},
	{
		version: 5,
		name:    "seed initial viewing locations",
		stmts: []string{`
INSERT OR IGNORE INTO locations (id, name, prefecture, latitude, longitude, elevation, fuji_azimuth, fuji_distance_km) VALUES
    (1, '山中湖 平野', '山梨県', 35.4171, 138.8754, 980, 241.3, 13.9),
    (2, '河口湖 大石公園', '山梨県', 35.5279, 138.7367, 833, 175.2, 18.6),
    (3, '江の島', '神奈川県', 35.2990, 139.4802, 10, 264.6, 69.1),
    (4, '高尾山', '東京都', 35.6252, 139.2437, 599, 238.4, 55.3);`},
	},
}

// Migrate applies every missing migration in version order.
func Migrate(conn *sql.DB) error {
	if _, err := conn.Exec(schemaMigrationsSQL); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	applied, err := appliedVersions(conn)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if applied[m.version] {
			continue
		}
		if err := apply(conn, m); err != nil {
			return err
		}
	}
	return nil
}

func appliedVersions(conn *sql.DB) (map[int]bool, error) {
	rows, err := conn.Query(`SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("read schema_migrations: %w", err)
	}
	defer rows.Close()

	out := make(map[int]bool)
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out[v] = true
	}
	return out, rows.Err()
}

func apply(conn *sql.DB, m migration) error {
	tx, err := conn.Begin()
	if err != nil {
		return fmt.Errorf("begin migration %d: %w", m.version, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for i, stmt := range m.stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d (%s) statement %d: %w", m.version, m.name, i+1, err)
		}
	}
	if _, err := tx.Exec(
		`INSERT INTO schema_migrations (version, name) VALUES (?, ?)`, m.version, m.name,
	); err != nil {
		return fmt.Errorf("record migration %d: %w", m.version, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration %d: %w", m.version, err)
	}
	return nil
}
