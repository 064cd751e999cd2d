// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package catalog loads the static housing reference data: worlds, housing
districts, and per-plot metadata (size class, base price).

# Loading

The default data set ships embedded in the binary:

	cat, err := catalog.LoadDefault()

Deployments tracking a game patch ahead of a rebuild can point at an
external file instead:

	cat, err := catalog.LoadFile("/etc/paissadb/catalog.yaml")

The YAML declares plots as contiguous ranges sharing a size and base
price; ranges are expanded into individual PlotInfo records at load time.
Overlapping ranges, unknown sizes, and non-positive prices are load
errors.

# Lookups

The catalog is read-only after load and safe for concurrent use:

	info, err := cat.Lookup(territoryTypeID, plotNumber)

A failed lookup during ingestion is a hard validation error, never a
silent default.

# Seeding

catalog.Seed upserts the reference rows into the database so the
composite foreign key from plots to plotinfo holds at write time.
*/
package catalog
