// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package sweeps implements the ingestion core: validation, the append-only
event store, the sweep aggregator, and the plot state reconstructor.

# Ingestion

One submission is one transaction:

	res, err := sweeps.Ingest(ctx, db, cat, req, rawBody)

which upserts the sweeper, appends the Event (raw payload zstd-compressed
for audit), inserts the WardSweep, and writes one reconciled Plot row per
observation. Any failure rolls the whole submission back; no partial
sweep is ever visible.

# Reconstruction

Reconcile is the core policy, exposed for direct testing:

  - first observation of a plot key is always retained
  - an ownership flip resets price/owner to unreported
  - otherwise, unknown never overwrites known (the new row inherits the
    prior known value)
  - a no-op report is persisted as evidence but flagged is_redundant

"Current state" is a derived view: the row with the highest (timestamp,
id) per plot key. Ingestion timestamps are server-assigned, so clients
cannot poison the ordering with skewed clocks.

# Lifecycle

DeleteEvent cascades to a submission's WardSweep and Plot rows.
DeleteSweeper nulls attribution but keeps all history. Replay rebuilds
every derived row from the event log alone, in timestamp order.
*/
package sweeps
