// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"strings"

	"github.com/spf13/afero"

	"github.com/funmapco/funmap/logger"
	"github.com/funmapco/funmap/middleware"
	"github.com/funmapco/funmap/models"
	"github.com/funmapco/funmap/snapshot"
)

type IconHandler struct {
	icons afero.Fs
	log   *logger.Logger
}

func NewIconHandler(icons afero.Fs, log *logger.Logger) *IconHandler {
	return &IconHandler{icons: icons, log: log}
}

// ListIcons handles GET /connectors/list-icons.php?folder=assets/icons-30
func (h *IconHandler) ListIcons(w http.ResponseWriter, r *http.Request) {
	log := middleware.LoggerFrom(r.Context(), h.log)

	if r.Method != http.MethodGet {
		middleware.ErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	folder := strings.TrimSpace(r.URL.Query().Get("folder"))
	if folder == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Folder parameter is required")
		return
	}
	clean := strings.TrimRight(snapshot.SanitizeIconPath(folder), "/")
	if clean == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid folder")
		return
	}

	icons, err := snapshot.ListFiles(h.icons, clean)
	if err != nil {
		log.Error("failed to list icons", "folder", clean, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to list icons")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.IconListResponse{
		Success: true,
		Folder:  clean,
		Icons:   icons,
	})
}
