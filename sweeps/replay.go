// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package sweeps

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/fadiatamny/FFXIV-PaissaDB/catalog"
	"github.com/fadiatamny/FFXIV-PaissaDB/models"
)

// ReplayStats summarizes one replay run.
type ReplayStats struct {
	EventsReplayed int
	EventsSkipped  int
	PlotsInserted  int
}

// Replay drops every derived row (wardsweeps, plots) and rebuilds them by
// re-ingesting the stored events in timestamp order, ties broken by event
// id. Events are the only durable source of truth; anything the derived
// tables hold must come out identical after a replay.
//
// Events whose payload no longer validates (reference catalog moved
// underneath them) are skipped with a warning rather than aborting the
// run; the raw event stays untouched for later analysis.
func Replay(ctx context.Context, db *sqlx.DB, cat *catalog.Catalog) (ReplayStats, error) {
	var stats ReplayStats

	if _, err := db.ExecContext(ctx, `DELETE FROM plots`); err != nil {
		return stats, fmt.Errorf("failed to clear plots: %w", err)
	}
	if _, err := db.ExecContext(ctx, `DELETE FROM wardsweeps`); err != nil {
		return stats, fmt.Errorf("failed to clear ward sweeps: %w", err)
	}

	var events []models.Event
	err := db.SelectContext(ctx, &events, db.Rebind(`
		SELECT id, sweeper_id, timestamp, event_type, data
		FROM events
		WHERE event_type = ?
		ORDER BY timestamp ASC, id ASC
	`), models.EventTypeHousingWardInfo)
	if err != nil {
		return stats, fmt.Errorf("failed to scan events: %w", err)
	}

	for _, ev := range events {
		if err := replayEvent(ctx, db, cat, ev, &stats); err != nil {
			return stats, err
		}
	}
	return stats, nil
}

func replayEvent(ctx context.Context, db *sqlx.DB, cat *catalog.Catalog, ev models.Event, stats *ReplayStats) error {
	raw, err := DecompressPayload(ev.Data)
	if err != nil {
		slog.Warn("skipping event with unreadable payload", "event_id", ev.ID, "error", err)
		stats.EventsSkipped++
		return nil
	}

	var req models.WardInfoRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		slog.Warn("skipping event with malformed payload", "event_id", ev.ID, "error", err)
		stats.EventsSkipped++
		return nil
	}

	if verr := Validate(cat, req); verr != nil {
		slog.Warn("skipping event that no longer validates", "event_id", ev.ID, "field", verr.Field, "error", verr.Message)
		stats.EventsSkipped++
		return nil
	}

	tx, err := beginIngestTx(ctx, db)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := insertDerived(tx, db.DriverName(), req, ev.SweeperID, ev.ID, ev.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to replay event %d: %w", ev.ID, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit replay of event %d: %w", ev.ID, err)
	}

	stats.EventsReplayed++
	stats.PlotsInserted += res.Inserted
	return nil
}
