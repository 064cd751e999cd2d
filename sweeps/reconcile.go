// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package sweeps

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/fadiatamny/FFXIV-PaissaDB/models"
)

// Reconcile decides what an incoming observation contributes to a plot's
// timeline, given the most recent prior row (nil for a first observation).
//
// Rules:
//   - First observation: retained as-is.
//   - Ownership flip: retained as-is. Unknown price/owner stay unknown
//     pending re-observation; a flip invalidates inherited values.
//   - Otherwise, unknown never overwrites known: a report that regresses
//     from known to unknown inherits the prior value for that field.
//   - If the resulting state tuple matches the prior row, the new row is
//     still evidence that the state held at this later timestamp, but is
//     flagged redundant.
//
// The returned row is what actually gets persisted.
func Reconcile(prior *models.Plot, next models.Plot) models.Plot {
	next.IsRedundant = false
	if prior == nil || next.IsOwned != prior.IsOwned {
		return next
	}

	if next.HousePrice == nil && prior.HousePrice != nil {
		next.HousePrice = prior.HousePrice
	}
	if !next.Owner.Reported() && prior.Owner.Reported() {
		next.Owner = prior.Owner
	}

	next.IsRedundant = next.StateEquals(*prior)
	return next
}

// priorPlot fetches the most recent retained row for a plot key inside
// the ingestion transaction. Ties on timestamp resolve to the highest id
// (insertion order), which keeps concurrent same-ward sweeps
// deterministic.
func priorPlot(tx *sqlx.Tx, worldID, territoryTypeID, wardNumber, plotNumber int) (*models.Plot, error) {
	var p models.Plot
	query := tx.Rebind(`
		SELECT id, world_id, territory_type_id, ward_number, plot_number,
		       timestamp, sweep_id, event_id, is_owned, has_built_house,
		       house_price, owner_name, is_redundant
		FROM plots
		WHERE world_id = ? AND territory_type_id = ? AND ward_number = ? AND plot_number = ?
		ORDER BY timestamp DESC, id DESC
		LIMIT 1
	`)
	err := tx.Get(&p, query, worldID, territoryTypeID, wardNumber, plotNumber)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
