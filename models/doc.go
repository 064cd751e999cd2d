// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the domain records, wire types, and the pure
devaluation calculation for the PaissaDB API.

# Domain Records

Each persisted entity is a plain struct with explicit foreign-key fields:

  - World, District, PlotInfo: immutable reference data
  - Sweeper: a reporting client (last_seen updated on every submission)
  - Event: append-only ingestion fact, root of a submission's lifetime
  - WardSweep: one submission's ward snapshot, linked to its Event
  - Plot: one historical state observation (never updated in place)

All timestamps are unix milliseconds assigned by the server at ingestion.

# Owner Variant

A plot's observed owner is a tagged variant rather than an overloaded
nullable string:

	models.OwnerNotReported() // no observation at all
	models.OwnerUnknown()     // reported, but the sweeper couldn't identify
	models.OwnerNamed("Taru") // concrete name

Owner implements sql.Scanner/driver.Valuer (NULL and the "Unknown"
sentinel at the column boundary) and a JSON codec with an explicit state
field.

# Devaluation

NumDevals is a pure function, independent of storage:

	n := models.NumDevals(plot.HousePrice, info.HouseBasePrice)

nil means the price (and therefore the count) is unknown.
*/
package models
