// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/spf13/afero"

	"github.com/funmapco/funmap/cliparse"
	"github.com/funmapco/funmap/logger"
	"github.com/funmapco/funmap/middleware"
	"github.com/funmapco/funmap/models"
	"github.com/funmapco/funmap/snapshot"
	"github.com/funmapco/funmap/store"
)

type FormHandler struct {
	conn  *sql.DB
	cfg   cliparse.Config
	icons afero.Fs
	log   *logger.Logger
}

// NewFormHandler serves snapshots read from conn. icons is rooted at the
// directory that contains assets/icons-*.
func NewFormHandler(conn *sql.DB, cfg cliparse.Config, icons afero.Fs, log *logger.Logger) *FormHandler {
	return &FormHandler{conn: conn, cfg: cfg, icons: icons, log: log}
}

// GetForm handles GET /connectors/get-form.php
func (h *FormHandler) GetForm(w http.ResponseWriter, r *http.Request) {
	log := middleware.LoggerFrom(r.Context(), h.log)

	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		middleware.ErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	cat, err := store.New(h.conn, h.cfg.Dialect()).LoadCatalog(r.Context())
	if errors.Is(err, store.ErrCoreTablesMissing) {
		log.Error("form tables missing", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Category tables are not available.")
		return
	}
	if err != nil {
		log.Error("failed to load catalog", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to load form data.")
		return
	}

	icons, err := snapshot.DiscoverIcons(h.icons, snapshot.IconDir)
	if err != nil {
		// The library still has every icon the catalog references.
		log.Warn("icon discovery failed", "error", err)
	}

	snap := snapshot.Build(snapshot.Input{Catalog: cat, DiscoveredIcons: icons}, snapshot.NewWarnings(log))

	log.Debug("snapshot built",
		"categories", len(snap.Categories),
		"field_types", len(snap.FieldTypes),
		"warnings", len(snap.Warnings),
	)

	middleware.JSONResponse(w, http.StatusOK, models.FormResponse{
		Success:  true,
		Snapshot: snap,
	})
}
