// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package sweeps

import (
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var (
	ErrEventNotFound   = errors.New("event not found")
	ErrSweeperNotFound = errors.New("sweeper not found")
)

func appendEvent(tx *sqlx.Tx, driverName string, sweeperID, ts int64, eventType string, data []byte) (int64, error) {
	id, err := insertReturningID(tx, driverName, tx.Rebind(`
		INSERT INTO events (sweeper_id, timestamp, event_type, data) VALUES (?, ?, ?, ?)
	`), sweeperID, ts, eventType, data)
	if err != nil {
		return 0, fmt.Errorf("failed to append event: %w", err)
	}
	return id, nil
}

// DeleteEvent removes an event; the schema cascades the delete to the
// event's WardSweep and Plot rows, so the event is the whole submission's
// lifetime root.
func DeleteEvent(db *sqlx.DB, eventID int64) error {
	res, err := db.Exec(db.Rebind(`DELETE FROM events WHERE id = ?`), eventID)
	if err != nil {
		return fmt.Errorf("failed to delete event %d: %w", eventID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if n == 0 {
		return ErrEventNotFound
	}
	return nil
}

// DeleteSweeper removes a reporting client. Its events, sweeps, and plot
// rows survive with their sweeper reference nulled: history is preserved,
// attribution is lost.
func DeleteSweeper(db *sqlx.DB, sweeperID int64) error {
	res, err := db.Exec(db.Rebind(`DELETE FROM sweepers WHERE id = ?`), sweeperID)
	if err != nil {
		return fmt.Errorf("failed to delete sweeper %d: %w", sweeperID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if n == 0 {
		return ErrSweeperNotFound
	}
	return nil
}
