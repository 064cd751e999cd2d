// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package sweeps

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/fadiatamny/FFXIV-PaissaDB/catalog"
	"github.com/fadiatamny/FFXIV-PaissaDB/models"
)

// now is a seam for tests that need deterministic timestamps.
var now = time.Now

// ValidationError is a client-caused rejection. The whole submission was
// refused and nothing persisted.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Result reports what one accepted submission produced.
type Result struct {
	EventID   int64
	SweepID   int64
	Inserted  int // plot rows written, redundant ones included
	Redundant int
}

// Validate checks a submission against the reference catalog and the
// intra-submission invariants. Returns a *ValidationError naming the
// violated field, or nil.
func Validate(cat *catalog.Catalog, req models.WardInfoRequest) *ValidationError {
	if req.Sweeper.ID == 0 {
		return &ValidationError{Field: "sweeper.id", Message: "sweeper id is required"}
	}
	if _, err := cat.World(req.WorldID); err != nil {
		return &ValidationError{Field: "world_id", Message: fmt.Sprintf("unknown world %d", req.WorldID)}
	}
	if _, err := cat.District(req.TerritoryTypeID); err != nil {
		return &ValidationError{Field: "territory_type_id", Message: fmt.Sprintf("unknown district %d", req.TerritoryTypeID)}
	}
	numWards, _ := cat.NumWards(req.TerritoryTypeID)
	if req.WardNumber < 0 || req.WardNumber >= numWards {
		return &ValidationError{Field: "ward_number", Message: fmt.Sprintf("ward %d out of range [0, %d)", req.WardNumber, numWards)}
	}
	if len(req.Plots) == 0 {
		return &ValidationError{Field: "plots", Message: "submission contains no plot observations"}
	}

	seen := make(map[int]bool, len(req.Plots))
	for _, obs := range req.Plots {
		if seen[obs.PlotNumber] {
			return &ValidationError{Field: "plot_number", Message: fmt.Sprintf("plot %d observed twice in one sweep", obs.PlotNumber)}
		}
		seen[obs.PlotNumber] = true

		if _, err := cat.Lookup(req.TerritoryTypeID, obs.PlotNumber); err != nil {
			return &ValidationError{Field: "plot_number", Message: fmt.Sprintf("plot %d does not exist in district %d", obs.PlotNumber, req.TerritoryTypeID)}
		}
		if obs.HousePrice != nil {
			if *obs.HousePrice < 0 {
				return &ValidationError{Field: "house_price", Message: fmt.Sprintf("plot %d: price must not be negative", obs.PlotNumber)}
			}
			if *obs.HousePrice > models.MaxHousePrice {
				return &ValidationError{Field: "house_price", Message: fmt.Sprintf("plot %d: price exceeds sane bound", obs.PlotNumber)}
			}
		}
	}
	return nil
}

// Ingest records one validated ward sweep: sweeper upsert, Event append,
// WardSweep insert, and one reconciled Plot row per observation, all in a
// single transaction. raw is the verbatim request body kept for audit; if
// nil, a canonical re-marshal of req is stored instead.
//
// All-or-nothing: a failure at any step rolls back the whole submission.
// Concurrency control lives here at the storage layer (one transaction,
// serializable on postgres; SQLite serializes writers itself), so two
// racing sweeps of the same ward both commit and the (timestamp, id)
// order decides which one is current.
func Ingest(ctx context.Context, db *sqlx.DB, cat *catalog.Catalog, req models.WardInfoRequest, raw []byte) (Result, error) {
	if verr := Validate(cat, req); verr != nil {
		return Result{}, verr
	}

	if raw == nil {
		b, err := json.Marshal(req)
		if err != nil {
			return Result{}, fmt.Errorf("failed to marshal submission payload: %w", err)
		}
		raw = b
	}

	tx, err := beginIngestTx(ctx, db)
	if err != nil {
		return Result{}, err
	}
	defer tx.Rollback()

	ts := now().UnixMilli()

	if err := upsertSweeper(tx, req.Sweeper, req.WorldID, ts); err != nil {
		return Result{}, err
	}

	eventID, err := appendEvent(tx, db.DriverName(), req.Sweeper.ID, ts, models.EventTypeHousingWardInfo, CompressPayload(raw))
	if err != nil {
		return Result{}, err
	}

	res, err := insertDerived(tx, db.DriverName(), req, &req.Sweeper.ID, eventID, ts)
	if err != nil {
		return Result{}, err
	}

	if err := tx.Commit(); err != nil {
		return Result{}, fmt.Errorf("failed to commit sweep: %w", err)
	}
	return res, nil
}

func beginIngestTx(ctx context.Context, db *sqlx.DB) (*sqlx.Tx, error) {
	opts := &sql.TxOptions{}
	if db.DriverName() == "postgres" {
		// Serializes the read-prior-then-insert step across concurrent
		// submissions of the same plot key. SQLite has a single writer.
		opts.Isolation = sql.LevelSerializable
	}
	tx, err := db.BeginTxx(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

func upsertSweeper(tx *sqlx.Tx, sw models.SweeperIdentity, worldID int, ts int64) error {
	query := tx.Rebind(`
		INSERT INTO sweepers (id, name, world_id, last_seen) VALUES (?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			world_id = excluded.world_id,
			last_seen = excluded.last_seen
	`)
	if _, err := tx.Exec(query, sw.ID, sw.Name, worldID, ts); err != nil {
		return fmt.Errorf("failed to upsert sweeper %d: %w", sw.ID, err)
	}
	return nil
}

// insertDerived creates the WardSweep and reconciled Plot rows for an
// already-recorded event. Replay uses it directly with the stored event's
// id and timestamp.
func insertDerived(tx *sqlx.Tx, driverName string, req models.WardInfoRequest, sweeperID *int64, eventID, ts int64) (Result, error) {
	sweepID, err := insertReturningID(tx, driverName, tx.Rebind(`
		INSERT INTO wardsweeps (sweeper_id, world_id, territory_type_id, event_id, ward_number, timestamp)
		VALUES (?, ?, ?, ?, ?, ?)
	`), sweeperID, req.WorldID, req.TerritoryTypeID, eventID, req.WardNumber, ts)
	if err != nil {
		return Result{}, fmt.Errorf("failed to insert ward sweep: %w", err)
	}

	res := Result{EventID: eventID, SweepID: sweepID}

	plotStmt := tx.Rebind(`
		INSERT INTO plots (world_id, territory_type_id, ward_number, plot_number, timestamp,
		                   sweep_id, event_id, is_owned, has_built_house, house_price,
		                   owner_name, is_redundant)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)

	for _, obs := range req.Plots {
		prior, err := priorPlot(tx, req.WorldID, req.TerritoryTypeID, req.WardNumber, obs.PlotNumber)
		if err != nil {
			return Result{}, fmt.Errorf("failed to fetch prior state for plot %d: %w", obs.PlotNumber, err)
		}

		row := Reconcile(prior, models.Plot{
			WorldID:         req.WorldID,
			TerritoryTypeID: req.TerritoryTypeID,
			WardNumber:      req.WardNumber,
			PlotNumber:      obs.PlotNumber,
			Timestamp:       ts,
			SweepID:         &sweepID,
			EventID:         eventID,
			IsOwned:         obs.IsOwned,
			HasBuiltHouse:   obs.HasBuiltHouse,
			HousePrice:      obs.HousePrice,
			Owner:           models.OwnerFromWire(obs.OwnerName),
		})

		_, err = tx.Exec(plotStmt,
			row.WorldID, row.TerritoryTypeID, row.WardNumber, row.PlotNumber, row.Timestamp,
			row.SweepID, row.EventID, row.IsOwned, row.HasBuiltHouse, row.HousePrice,
			row.Owner, row.IsRedundant,
		)
		if err != nil {
			return Result{}, fmt.Errorf("failed to insert plot %d: %w", row.PlotNumber, err)
		}

		res.Inserted++
		if row.IsRedundant {
			res.Redundant++
		}
	}
	return res, nil
}

// insertReturningID papers over the LastInsertId gap: lib/pq only
// supports RETURNING, SQLite only the Result path.
func insertReturningID(tx *sqlx.Tx, driverName, query string, args ...interface{}) (int64, error) {
	if driverName == "postgres" {
		var id int64
		err := tx.QueryRow(query+" RETURNING id", args...).Scan(&id)
		return id, err
	}
	res, err := tx.Exec(query, args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
