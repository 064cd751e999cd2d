// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connections and schema creation.

# Engines

Two engines are supported, selected by configuration:

  - sqlite (modernc.org/sqlite, pure Go) for development and tests
  - postgres (lib/pq) for production

db.Open applies SQLite pragmas (WAL, busy timeout, foreign key
enforcement) through the DSN so every pooled connection gets them.

# Schema

CreateSchema initializes all tables for the chosen engine. Safe to call
multiple times - uses IF NOT EXISTS.

Tables:

  - worlds, districts, plotinfo: immutable reference data
  - sweepers: reporting clients (FKs to it are ON DELETE SET NULL)
  - events: append-only submission log, audit root
  - wardsweeps, plots: derived rows, ON DELETE CASCADE from events

# Lifetime rules

	events 1──* wardsweeps   (CASCADE: a sweep never outlives its event)
	events 1──* plots        (CASCADE)
	sweepers 1──* events     (SET NULL: history kept, attribution lost)
	sweepers 1──* wardsweeps (SET NULL)
	(territory_type_id, plot_number) → plotinfo composite FK

# Indexes

Latest-row-per-plot lookups are served by
(world_id, territory_type_id, ward_number, plot_number) plus
(ward_number, plot_number, timestamp DESC); event scans by type and time
have their own indexes, as do the cascade FKs.
*/
package db
