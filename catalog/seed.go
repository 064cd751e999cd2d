// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package catalog

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Seed upserts the catalog's reference rows (worlds, districts, plotinfo)
// so the referential invariants on plots hold at write time. Safe to call
// on every startup; existing rows are refreshed, never duplicated.
func Seed(db *sqlx.DB, c *Catalog) error {
	tx, err := db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	worldStmt := db.Rebind(`
		INSERT INTO worlds (id, name) VALUES (?, ?)
		ON CONFLICT (id) DO UPDATE SET name = excluded.name
	`)
	for _, w := range c.Worlds() {
		if _, err := tx.Exec(worldStmt, w.ID, w.Name); err != nil {
			return fmt.Errorf("failed to seed world %d: %w", w.ID, err)
		}
	}

	districtStmt := db.Rebind(`
		INSERT INTO districts (id, name, land_set_id) VALUES (?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET name = excluded.name, land_set_id = excluded.land_set_id
	`)
	for _, d := range c.Districts() {
		if _, err := tx.Exec(districtStmt, d.ID, d.Name, d.LandSetID); err != nil {
			return fmt.Errorf("failed to seed district %d: %w", d.ID, err)
		}
	}

	plotStmt := db.Rebind(`
		INSERT INTO plotinfo (territory_type_id, plot_number, house_size, house_base_price)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (territory_type_id, plot_number) DO UPDATE
		SET house_size = excluded.house_size, house_base_price = excluded.house_base_price
	`)
	for _, info := range c.PlotInfos() {
		if _, err := tx.Exec(plotStmt, info.TerritoryTypeID, info.PlotNumber, info.HouseSize, info.HouseBasePrice); err != nil {
			return fmt.Errorf("failed to seed plotinfo (%d, %d): %w", info.TerritoryTypeID, info.PlotNumber, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed transaction: %w", err)
	}
	return nil
}
