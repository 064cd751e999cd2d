// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the PaissaDB API.

# Handler Types

Each handler is a struct with database, config, and catalog dependencies:

  - WardInfoHandler: ward sweep ingestion
  - QueryHandler: read-only projections over the accumulated history
  - AdminHandler: destructive maintenance (event/sweeper deletion)

Handlers are created via constructor functions:

	wardInfoHandler := handlers.NewWardInfoHandler(db, cfg, cat)

# Ingestion Flow

One sweep submission is one atomic write:

	POST /wardInfo → IngestWardInfo

The raw body is preserved verbatim (compressed) in the event log; the
derived WardSweep and Plot rows are reconciled against prior state by
package sweeps. Validation failures are 422 with the violated field and
persist nothing.

# Query Flow

	GET /worlds
	GET /worlds/{worldID}/districts/{districtID}/wards/{ward}
	GET /worlds/{worldID}/districts/{districtID}/wards/{ward}/plots/{plot}/history

Ward state is the latest row per plot with num_devals derived from the
catalog base price; history is the full timeline, newest first.

# Admin Flow

Destructive operations require the X-Admin-Key header:

	DELETE /events/{id}   → cascades to the event's sweep and plot rows
	DELETE /sweepers/{id} → nulls attribution, keeps history
*/
package handlers
