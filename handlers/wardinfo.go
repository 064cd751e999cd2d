// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"

	"github.com/fadiatamny/FFXIV-PaissaDB/catalog"
	"github.com/fadiatamny/FFXIV-PaissaDB/cliparse"
	"github.com/fadiatamny/FFXIV-PaissaDB/middleware"
	"github.com/fadiatamny/FFXIV-PaissaDB/models"
	"github.com/fadiatamny/FFXIV-PaissaDB/sweeps"
)

// A full 60-plot ward sweep is a few KB; a megabyte is already hostile.
const maxSubmissionBytes = 1 << 20

type WardInfoHandler struct {
	db  *sqlx.DB
	cfg cliparse.Config
	cat *catalog.Catalog
}

func NewWardInfoHandler(db *sqlx.DB, cfg cliparse.Config, cat *catalog.Catalog) *WardInfoHandler {
	return &WardInfoHandler{db: db, cfg: cfg, cat: cat}
}

// IngestWardInfo handles POST /wardInfo
func (h *WardInfoHandler) IngestWardInfo(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	// The verbatim body is the audit payload, so read it before decoding.
	body, err := io.ReadAll(io.LimitReader(r.Body, maxSubmissionBytes+1))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Failed to read request body")
		return
	}
	if len(body) > maxSubmissionBytes {
		middleware.ErrorResponse(w, http.StatusRequestEntityTooLarge, "Submission too large")
		return
	}

	var req models.WardInfoRequest
	if err := json.Unmarshal(body, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	res, err := sweeps.Ingest(r.Context(), h.db, h.cat, req, body)
	if err != nil {
		var verr *sweeps.ValidationError
		if errors.As(err, &verr) {
			middleware.ValidationErrorResponse(w, verr.Message, verr.Field)
			return
		}
		slog.Error("failed to ingest ward sweep", "error", err,
			"world_id", req.WorldID, "territory_type_id", req.TerritoryTypeID, "ward_number", req.WardNumber)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record sweep")
		return
	}

	slog.Info("ward sweep ingested",
		"event_id", res.EventID,
		"sweep_id", res.SweepID,
		"world_id", req.WorldID,
		"territory_type_id", req.TerritoryTypeID,
		"ward_number", req.WardNumber,
		"sweeper_id", req.Sweeper.ID,
		"plots", res.Inserted,
		"redundant", res.Redundant,
	)

	middleware.JSONResponse(w, http.StatusCreated, models.WardInfoResponse{
		EventID:        res.EventID,
		SweepID:        res.SweepID,
		PlotsInserted:  res.Inserted,
		PlotsRedundant: res.Redundant,
	})
}
