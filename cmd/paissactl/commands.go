// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/fadiatamny/FFXIV-PaissaDB/auth"
	"github.com/fadiatamny/FFXIV-PaissaDB/catalog"
	"github.com/fadiatamny/FFXIV-PaissaDB/db"
	"github.com/fadiatamny/FFXIV-PaissaDB/models"
	"github.com/fadiatamny/FFXIV-PaissaDB/sweeps"
)

// openDatabase connects using the server's environment conventions.
func openDatabase(cmd *cobra.Command) (*sqlx.DB, error) {
	_ = godotenv.Load()

	url, _ := cmd.Flags().GetString("database")
	if url == "" {
		url = os.Getenv("DATABASE_URL")
	}
	if url == "" {
		return nil, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	dbType, _ := cmd.Flags().GetString("type")
	if dbType == "" {
		dbType = os.Getenv("DATABASE_TYPE")
	}
	if dbType == "" {
		dbType = db.TypeSQLite
	}

	return db.Open(dbType, url)
}

func addConnectionFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("database", "d", "", "Database URL (default: DATABASE_URL env)")
	cmd.Flags().StringP("type", "t", "", "Database type, sqlite or postgres (default: DATABASE_TYPE env)")
}

func replayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Rebuild the derived tables from the event log",
		Long: `Drop every ward sweep and plot row and rebuild them by re-ingesting
the stored events in timestamp order.

The event log is the source of truth; run this after restoring a backup,
deleting bad events, or changing the reference catalog.

Examples:
  paissactl replay -d paissa.db
  paissactl replay -d postgres://... -t postgres`,
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := openDatabase(cmd)
			if err != nil {
				return err
			}
			defer conn.Close()

			cat, err := catalog.LoadDefault()
			if err != nil {
				return err
			}

			start := time.Now()
			stats, err := sweeps.Replay(context.Background(), conn, cat)
			if err != nil {
				return fmt.Errorf("replay failed: %w", err)
			}

			fmt.Printf("%s replayed %d events (%d plots) in %s\n",
				color.New(color.FgGreen).Sprint("OK"),
				stats.EventsReplayed, stats.PlotsInserted,
				time.Since(start).Round(time.Millisecond))
			if stats.EventsSkipped > 0 {
				fmt.Printf("%s %d events no longer validate and were skipped\n",
					color.New(color.FgYellow).Sprint("WARN"), stats.EventsSkipped)
			}
			return nil
		},
	}

	addConnectionFlags(cmd)
	return cmd
}

func eventsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Event log maintenance",
	}

	rm := &cobra.Command{
		Use:   "rm <event-id>",
		Short: "Delete an event and its derived rows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid event id %q", args[0])
			}

			conn, err := openDatabase(cmd)
			if err != nil {
				return err
			}
			defer conn.Close()

			if err := sweeps.DeleteEvent(conn, id); err != nil {
				return err
			}
			fmt.Printf("%s event %d deleted\n", color.New(color.FgGreen).Sprint("OK"), id)
			return nil
		},
	}
	addConnectionFlags(rm)

	cmd.AddCommand(rm)
	return cmd
}

func sweepersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweepers",
		Short: "Reporting client maintenance",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List reporting clients by recency",
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := openDatabase(cmd)
			if err != nil {
				return err
			}
			defer conn.Close()

			var rows []models.Sweeper
			err = conn.Select(&rows, `SELECT id, name, world_id, last_seen FROM sweepers ORDER BY last_seen DESC`)
			if err != nil {
				return err
			}
			if len(rows) == 0 {
				fmt.Println("No sweepers recorded.")
				return nil
			}

			for _, s := range rows {
				lastSeen := humanize.Time(time.UnixMilli(s.LastSeen))
				fmt.Printf("%8d  %-24s  last seen %s\n", s.ID, s.Name, lastSeen)
			}
			return nil
		},
	}
	addConnectionFlags(list)

	rm := &cobra.Command{
		Use:   "rm <sweeper-id>",
		Short: "Delete a sweeper, keeping its submissions unattributed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid sweeper id %q", args[0])
			}

			conn, err := openDatabase(cmd)
			if err != nil {
				return err
			}
			defer conn.Close()

			if err := sweeps.DeleteSweeper(conn, id); err != nil {
				return err
			}
			fmt.Printf("%s sweeper %d deleted\n", color.New(color.FgGreen).Sprint("OK"), id)
			return nil
		},
	}
	addConnectionFlags(rm)

	cmd.AddCommand(list)
	cmd.AddCommand(rm)
	return cmd
}

func adminKeyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "admin-key",
		Short: "Mint an admin key for the HTTP API",
		Long: `Generate the X-Admin-Key value for the server's DELETE endpoints.
The key is derived from ADMIN_KEY_SALT and must match the salt the
server was started with.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()

			salt := os.Getenv("ADMIN_KEY_SALT")
			if salt == "" {
				return errors.New("ADMIN_KEY_SALT required")
			}

			fmt.Println(auth.GenerateAdminKey(auth.AdminScope, salt))
			return nil
		},
	}
}
