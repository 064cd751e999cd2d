// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/jmoiron/sqlx"

	"github.com/fadiatamny/FFXIV-PaissaDB/catalog"
	"github.com/fadiatamny/FFXIV-PaissaDB/cliparse"
	"github.com/fadiatamny/FFXIV-PaissaDB/handlers"
	"github.com/fadiatamny/FFXIV-PaissaDB/middleware"
)

func NewRouter(db *sqlx.DB, cfg cliparse.Config, cat *catalog.Catalog) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	wardInfoHandler := handlers.NewWardInfoHandler(db, cfg, cat)
	queryHandler := handlers.NewQueryHandler(db, cfg, cat)
	adminHandler := handlers.NewAdminHandler(db, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Ingestion
	mux.HandleFunc("POST /wardInfo", middleware.WithLogging(wardInfoHandler.IngestWardInfo))

	// Queries (public)
	mux.HandleFunc("GET /worlds", middleware.WithLogging(queryHandler.ListWorlds))
	mux.HandleFunc("GET /worlds/{worldID}/districts/{districtID}/wards/{ward}",
		middleware.WithLogging(queryHandler.GetWardState))
	mux.HandleFunc("GET /worlds/{worldID}/districts/{districtID}/wards/{ward}/plots/{plot}/history",
		middleware.WithLogging(queryHandler.GetPlotHistory))

	// Admin operations (require X-Admin-Key)
	mux.HandleFunc("DELETE /events/{id}", middleware.WithLogging(adminHandler.DeleteEvent))
	mux.HandleFunc("DELETE /sweepers/{id}", middleware.WithLogging(adminHandler.DeleteSweeper))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("PaissaDB API v1"))
	})

	return mux
}
