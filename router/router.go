// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/afero"

	"github.com/funmapco/funmap/cliparse"
	"github.com/funmapco/funmap/handlers"
	"github.com/funmapco/funmap/logger"
	"github.com/funmapco/funmap/middleware"
)

// NewRouter wires every endpoint. icons is rooted at the site directory
// that holds assets/icons-NN.
func NewRouter(db *sql.DB, cfg cliparse.Config, icons afero.Fs, log *logger.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.WithLogging(log))
	r.Use(middleware.CORS(cfg.CORSOrigin))

	// Initialize handlers
	formHandler := handlers.NewFormHandler(db, cfg, icons, log)
	memberHandler := handlers.NewMemberHandler(db, cfg, log)
	loginHandler := handlers.NewLoginHandler(db, cfg, log)
	iconHandler := handlers.NewIconHandler(icons, log)
	gateway := handlers.NewGateway(formHandler, memberHandler, loginHandler, iconHandler)

	// Routing misses answer in the same JSON shape as the handlers.
	// Set before Route so the connector subrouter inherits them.
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		middleware.ErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Not found")
	})

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Legacy connector paths
	r.Route("/connectors", func(r chi.Router) {
		r.Post("/add-member.php", memberHandler.Register)
		r.Post("/verify-login.php", loginHandler.VerifyLogin)
		r.Get("/get-form.php", formHandler.GetForm)
		r.Head("/get-form.php", formHandler.GetForm)
		r.Get("/list-icons.php", iconHandler.ListIcons)
	})

	// Single-endpoint dispatch on ?action=
	r.Handle("/gateway.php", gateway)

	// Root endpoint
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("funmap API v1"))
	})

	return r
}
