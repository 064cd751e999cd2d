// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the PaissaDB API server.

PaissaDB aggregates crowd-sourced housing ward sweeps from FFXIV clients
into an append-only event log, and reconstructs the current openness,
price, and ownership of every plot from that log.

# Starting the Server

The server runs against SQLite by default, which is suitable for
development and testing:

	go run main.go

For production, point it at PostgreSQL:

	DATABASE_TYPE=postgres DATABASE_URL=postgres://... go run main.go

Or with flags:

	go run main.go -p 8000 -t postgres -d "postgres://..."

# Configuration

Optional settings:

  - PORT (-p): Server port (default: 8000)
  - DATABASE_TYPE (-t): "sqlite" or "postgres" (default: sqlite)
  - DATABASE_URL (-d): Connection string or SQLite file path
  - CATALOG_PATH (-catalog): Override the embedded world/district catalog
  - ADMIN_KEY_SALT (--admin-salt): Secret for admin key HMAC

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (ingestion, queries, admin)
  - sweeps: Event append, state reconciliation, and replay
  - catalog: Static world/district/plot reference data
  - router: Route definitions using Go 1.22+ routing
  - middleware: Logging, JSON helpers
  - models: Request/response types and the owner variant
  - auth: Admin key generation and validation
  - db: Connection setup and schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
