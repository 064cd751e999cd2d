// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// paissactl is the operator's companion to the PaissaDB server: event log
// maintenance, derived-table replay, and admin key management against the
// same database the server runs on.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "paissactl",
		Short: "paissactl - PaissaDB operations tool",
		Long: `paissactl maintains a PaissaDB database: replaying the event log into
the derived tables, removing bad events or sweepers, and minting admin
keys for the HTTP API.

Connection settings come from the same flags and environment variables
as the server (DATABASE_URL, DATABASE_TYPE, ADMIN_KEY_SALT).`,
	}

	rootCmd.AddCommand(replayCmd())
	rootCmd.AddCommand(eventsCmd())
	rootCmd.AddCommand(sweepersCmd())
	rootCmd.AddCommand(adminKeyCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
