// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/jmoiron/sqlx"

	"github.com/fadiatamny/FFXIV-PaissaDB/auth"
	"github.com/fadiatamny/FFXIV-PaissaDB/cliparse"
	"github.com/fadiatamny/FFXIV-PaissaDB/middleware"
	"github.com/fadiatamny/FFXIV-PaissaDB/models"
	"github.com/fadiatamny/FFXIV-PaissaDB/sweeps"
)

type AdminHandler struct {
	db  *sqlx.DB
	cfg cliparse.Config
}

func NewAdminHandler(db *sqlx.DB, cfg cliparse.Config) *AdminHandler {
	return &AdminHandler{db: db, cfg: cfg}
}

// DeleteEvent handles DELETE /events/{id}
// Removes an event and, by cascade, its WardSweep and Plot rows.
func (h *AdminHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := h.authorize(w, r)
	if !ok {
		return
	}

	if err := sweeps.DeleteEvent(h.db, id); err != nil {
		if errors.Is(err, sweeps.ErrEventNotFound) {
			middleware.ErrorResponse(w, http.StatusNotFound, "Event not found")
			return
		}
		slog.Error("failed to delete event", "error", err, "event_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete event")
		return
	}

	slog.Info("event deleted", "event_id", id)
	middleware.JSONResponse(w, http.StatusOK, models.DeleteResponse{Deleted: "event", ID: id})
}

// DeleteSweeper handles DELETE /sweepers/{id}
// Removes a sweeper; its submissions survive with attribution nulled.
func (h *AdminHandler) DeleteSweeper(w http.ResponseWriter, r *http.Request) {
	id, ok := h.authorize(w, r)
	if !ok {
		return
	}

	if err := sweeps.DeleteSweeper(h.db, id); err != nil {
		if errors.Is(err, sweeps.ErrSweeperNotFound) {
			middleware.ErrorResponse(w, http.StatusNotFound, "Sweeper not found")
			return
		}
		slog.Error("failed to delete sweeper", "error", err, "sweeper_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete sweeper")
		return
	}

	slog.Info("sweeper deleted", "sweeper_id", id)
	middleware.JSONResponse(w, http.StatusOK, models.DeleteResponse{Deleted: "sweeper", ID: id})
}

// authorize checks the admin key and parses the {id} path segment. On
// failure it has already written the response.
func (h *AdminHandler) authorize(w http.ResponseWriter, r *http.Request) (int64, bool) {
	key := r.Header.Get("X-Admin-Key")
	if err := auth.ValidateAdminKey(auth.AdminScope, key, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return 0, false
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id must be a number")
		return 0, false
	}
	return id, true
}
