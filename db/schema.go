// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// CreateSchema creates all tables and indexes for the given engine.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(conn *sqlx.DB, dbType string) error {
	var ddl string
	switch dbType {
	case TypePostgres:
		ddl = schemaPostgres
	case TypeSQLite:
		ddl = schemaSQLite
	default:
		return fmt.Errorf("unsupported database type %q", dbType)
	}

	if _, err := conn.Exec(ddl); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// The two DDL variants differ only in id generation (AUTOINCREMENT vs
// BIGSERIAL) and the raw payload column type (BLOB vs BYTEA). Timestamps
// are unix milliseconds in plain integer columns on both engines.

const schemaSQLite = `
-- Reference data (load-once)
CREATE TABLE IF NOT EXISTS worlds (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS ix_worlds_name ON worlds(name);

CREATE TABLE IF NOT EXISTS districts (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    land_set_id INTEGER NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS plotinfo (
    territory_type_id INTEGER NOT NULL REFERENCES districts(id),
    plot_number INTEGER NOT NULL,
    house_size INTEGER NOT NULL,
    house_base_price INTEGER NOT NULL,
    PRIMARY KEY (territory_type_id, plot_number)
);

-- Reporting clients (id is the client-reported identity, not generated)
CREATE TABLE IF NOT EXISTS sweepers (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    world_id INTEGER REFERENCES worlds(id),
    last_seen INTEGER
);

-- Append-only audit log; root of every submission's lifetime
CREATE TABLE IF NOT EXISTS events (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    sweeper_id INTEGER REFERENCES sweepers(id) ON DELETE SET NULL,
    timestamp INTEGER NOT NULL,
    event_type TEXT NOT NULL,
    data BLOB NOT NULL
);

CREATE INDEX IF NOT EXISTS ix_events_sweeper_id ON events(sweeper_id);
CREATE INDEX IF NOT EXISTS ix_events_timestamp ON events(timestamp);
CREATE INDEX IF NOT EXISTS ix_events_event_type ON events(event_type);

-- One submission's ward snapshot
CREATE TABLE IF NOT EXISTS wardsweeps (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    sweeper_id INTEGER REFERENCES sweepers(id) ON DELETE SET NULL,
    world_id INTEGER NOT NULL REFERENCES worlds(id),
    territory_type_id INTEGER NOT NULL REFERENCES districts(id),
    event_id INTEGER NOT NULL REFERENCES events(id) ON DELETE CASCADE,
    ward_number INTEGER NOT NULL,
    timestamp INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS ix_wardsweeps_event_id_desc ON wardsweeps(event_id DESC);

-- Append-only plot state history
CREATE TABLE IF NOT EXISTS plots (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    world_id INTEGER NOT NULL REFERENCES worlds(id),
    territory_type_id INTEGER NOT NULL REFERENCES districts(id),
    ward_number INTEGER NOT NULL,
    plot_number INTEGER NOT NULL,
    timestamp INTEGER NOT NULL,
    sweep_id INTEGER REFERENCES wardsweeps(id) ON DELETE SET NULL,
    event_id INTEGER NOT NULL REFERENCES events(id) ON DELETE CASCADE,
    is_owned BOOLEAN NOT NULL,
    has_built_house BOOLEAN NOT NULL,
    house_price INTEGER,
    owner_name TEXT,
    is_redundant BOOLEAN NOT NULL DEFAULT FALSE,
    FOREIGN KEY (territory_type_id, plot_number)
        REFERENCES plotinfo(territory_type_id, plot_number)
);

CREATE INDEX IF NOT EXISTS ix_plots_plot_key
    ON plots(world_id, territory_type_id, ward_number, plot_number);
CREATE INDEX IF NOT EXISTS ix_plots_ward_plot_timestamp_desc
    ON plots(ward_number, plot_number, timestamp DESC);
CREATE INDEX IF NOT EXISTS ix_plots_sweep_id_desc ON plots(sweep_id DESC);
CREATE INDEX IF NOT EXISTS ix_plots_event_id_desc ON plots(event_id DESC);
CREATE INDEX IF NOT EXISTS ix_plots_timestamp_desc ON plots(timestamp DESC);
`

const schemaPostgres = `
-- Reference data (load-once)
CREATE TABLE IF NOT EXISTS worlds (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS ix_worlds_name ON worlds(name);

CREATE TABLE IF NOT EXISTS districts (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    land_set_id INTEGER NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS plotinfo (
    territory_type_id INTEGER NOT NULL REFERENCES districts(id),
    plot_number INTEGER NOT NULL,
    house_size INTEGER NOT NULL,
    house_base_price INTEGER NOT NULL,
    PRIMARY KEY (territory_type_id, plot_number)
);

-- Reporting clients (id is the client-reported identity, not generated)
CREATE TABLE IF NOT EXISTS sweepers (
    id BIGINT PRIMARY KEY,
    name TEXT NOT NULL,
    world_id INTEGER REFERENCES worlds(id),
    last_seen BIGINT
);

-- Append-only audit log; root of every submission's lifetime
CREATE TABLE IF NOT EXISTS events (
    id BIGSERIAL PRIMARY KEY,
    sweeper_id BIGINT REFERENCES sweepers(id) ON DELETE SET NULL,
    timestamp BIGINT NOT NULL,
    event_type TEXT NOT NULL,
    data BYTEA NOT NULL
);

CREATE INDEX IF NOT EXISTS ix_events_sweeper_id ON events(sweeper_id);
CREATE INDEX IF NOT EXISTS ix_events_timestamp ON events(timestamp);
CREATE INDEX IF NOT EXISTS ix_events_event_type ON events(event_type);

-- One submission's ward snapshot
CREATE TABLE IF NOT EXISTS wardsweeps (
    id BIGSERIAL PRIMARY KEY,
    sweeper_id BIGINT REFERENCES sweepers(id) ON DELETE SET NULL,
    world_id INTEGER NOT NULL REFERENCES worlds(id),
    territory_type_id INTEGER NOT NULL REFERENCES districts(id),
    event_id BIGINT NOT NULL REFERENCES events(id) ON DELETE CASCADE,
    ward_number INTEGER NOT NULL,
    timestamp BIGINT NOT NULL
);

CREATE INDEX IF NOT EXISTS ix_wardsweeps_event_id_desc ON wardsweeps(event_id DESC);

-- Append-only plot state history
CREATE TABLE IF NOT EXISTS plots (
    id BIGSERIAL PRIMARY KEY,
    world_id INTEGER NOT NULL REFERENCES worlds(id),
    territory_type_id INTEGER NOT NULL REFERENCES districts(id),
    ward_number INTEGER NOT NULL,
    plot_number INTEGER NOT NULL,
    timestamp BIGINT NOT NULL,
    sweep_id BIGINT REFERENCES wardsweeps(id) ON DELETE SET NULL,
    event_id BIGINT NOT NULL REFERENCES events(id) ON DELETE CASCADE,
    is_owned BOOLEAN NOT NULL,
    has_built_house BOOLEAN NOT NULL,
    house_price INTEGER,
    owner_name TEXT,
    is_redundant BOOLEAN NOT NULL DEFAULT FALSE,
    FOREIGN KEY (territory_type_id, plot_number)
        REFERENCES plotinfo(territory_type_id, plot_number)
);

CREATE INDEX IF NOT EXISTS ix_plots_plot_key
    ON plots(world_id, territory_type_id, ward_number, plot_number);
CREATE INDEX IF NOT EXISTS ix_plots_ward_plot_timestamp_desc
    ON plots(ward_number, plot_number, timestamp DESC);
CREATE INDEX IF NOT EXISTS ix_plots_sweep_id_desc ON plots(sweep_id DESC);
CREATE INDEX IF NOT EXISTS ix_plots_event_id_desc ON plots(event_id DESC);
CREATE INDEX IF NOT EXISTS ix_plots_timestamp_desc ON plots(timestamp DESC);
`
