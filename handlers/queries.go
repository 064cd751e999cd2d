// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/jmoiron/sqlx"

	"github.com/fadiatamny/FFXIV-PaissaDB/catalog"
	"github.com/fadiatamny/FFXIV-PaissaDB/cliparse"
	"github.com/fadiatamny/FFXIV-PaissaDB/middleware"
	"github.com/fadiatamny/FFXIV-PaissaDB/models"
)

type QueryHandler struct {
	db  *sqlx.DB
	cfg cliparse.Config
	cat *catalog.Catalog
}

func NewQueryHandler(db *sqlx.DB, cfg cliparse.Config, cat *catalog.Catalog) *QueryHandler {
	return &QueryHandler{db: db, cfg: cfg, cat: cat}
}

// ListWorlds handles GET /worlds
func (h *QueryHandler) ListWorlds(w http.ResponseWriter, r *http.Request) {
	var worlds []models.World
	if err := h.db.Select(&worlds, `SELECT id, name FROM worlds ORDER BY id`); err != nil {
		slog.Error("failed to query worlds", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, worlds)
}

// GetWardState handles GET /worlds/{worldID}/districts/{districtID}/wards/{ward}
// Returns the latest observed state per plot, with num_devals derived
// against the catalog base price.
func (h *QueryHandler) GetWardState(w http.ResponseWriter, r *http.Request) {
	worldID, districtID, ward, ok := h.wardPath(w, r)
	if !ok {
		return
	}

	// Current state per plot: the row with the highest (timestamp, id).
	// Redundant rows qualify; they carry the full inherited state and the
	// freshest evidence timestamp.
	var rows []models.Plot
	err := h.db.Select(&rows, h.db.Rebind(`
		SELECT p.id, p.world_id, p.territory_type_id, p.ward_number, p.plot_number,
		       p.timestamp, p.sweep_id, p.event_id, p.is_owned, p.has_built_house,
		       p.house_price, p.owner_name, p.is_redundant
		FROM plots p
		WHERE p.world_id = ? AND p.territory_type_id = ? AND p.ward_number = ?
		AND p.id = (
			SELECT p2.id FROM plots p2
			WHERE p2.world_id = p.world_id AND p2.territory_type_id = p.territory_type_id
			  AND p2.ward_number = p.ward_number AND p2.plot_number = p.plot_number
			ORDER BY p2.timestamp DESC, p2.id DESC
			LIMIT 1
		)
		ORDER BY p.plot_number
	`), worldID, districtID, ward)
	if err != nil {
		slog.Error("failed to query ward state", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	resp := models.WardStateResponse{
		WorldID:         worldID,
		TerritoryTypeID: districtID,
		WardNumber:      ward,
		Plots:           make([]models.PlotState, 0, len(rows)),
	}
	for _, p := range rows {
		state := models.PlotState{
			WorldID:         p.WorldID,
			TerritoryTypeID: p.TerritoryTypeID,
			WardNumber:      p.WardNumber,
			PlotNumber:      p.PlotNumber,
			Timestamp:       p.Timestamp,
			IsOwned:         p.IsOwned,
			HasBuiltHouse:   p.HasBuiltHouse,
			HousePrice:      p.HousePrice,
			Owner:           p.Owner,
		}
		if info, err := h.cat.Lookup(p.TerritoryTypeID, p.PlotNumber); err == nil {
			state.NumDevals = models.NumDevals(p.HousePrice, info.HouseBasePrice)
		}
		resp.Plots = append(resp.Plots, state)
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// GetPlotHistory handles
// GET /worlds/{worldID}/districts/{districtID}/wards/{ward}/plots/{plot}/history
// Returns the plot's full timeline, newest first, redundant rows included
// (they are evidence the state held at that time).
func (h *QueryHandler) GetPlotHistory(w http.ResponseWriter, r *http.Request) {
	worldID, districtID, ward, ok := h.wardPath(w, r)
	if !ok {
		return
	}
	plot, err := strconv.Atoi(r.PathValue("plot"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "plot must be a number")
		return
	}
	if _, err := h.cat.Lookup(districtID, plot); err != nil {
		middleware.ErrorResponse(w, http.StatusNotFound, "Unknown plot")
		return
	}

	var rows []models.Plot
	err = h.db.Select(&rows, h.db.Rebind(`
		SELECT id, world_id, territory_type_id, ward_number, plot_number,
		       timestamp, sweep_id, event_id, is_owned, has_built_house,
		       house_price, owner_name, is_redundant
		FROM plots
		WHERE world_id = ? AND territory_type_id = ? AND ward_number = ? AND plot_number = ?
		ORDER BY timestamp DESC, id DESC
	`), worldID, districtID, ward, plot)
	if err != nil {
		slog.Error("failed to query plot history", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.PlotHistoryResponse{
		WorldID:         worldID,
		TerritoryTypeID: districtID,
		WardNumber:      ward,
		PlotNumber:      plot,
		History:         rows,
	})
}

// wardPath parses and validates the shared {worldID}/{districtID}/{ward}
// path segments. On failure it has already written the response.
func (h *QueryHandler) wardPath(w http.ResponseWriter, r *http.Request) (worldID, districtID, ward int, ok bool) {
	worldID, err := strconv.Atoi(r.PathValue("worldID"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "worldID must be a number")
		return 0, 0, 0, false
	}
	districtID, err = strconv.Atoi(r.PathValue("districtID"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "districtID must be a number")
		return 0, 0, 0, false
	}
	ward, err = strconv.Atoi(r.PathValue("ward"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "ward must be a number")
		return 0, 0, 0, false
	}

	if _, err := h.cat.World(worldID); err != nil {
		middleware.ErrorResponse(w, http.StatusNotFound, "Unknown world")
		return 0, 0, 0, false
	}
	numWards, err := h.cat.NumWards(districtID)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusNotFound, "Unknown district")
		return 0, 0, 0, false
	}
	if ward < 0 || ward >= numWards {
		middleware.ErrorResponse(w, http.StatusNotFound, "Unknown ward")
		return 0, 0, 0, false
	}
	return worldID, districtID, ward, true
}
