// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

WithLogging is chi-compatible middleware:

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.WithLogging(log))

Logs request start (method, path) and completion (status, bytes,
duration_ms), tagged with a request_id. The id is chi's when RequestID runs
first, otherwise a new UUID, and is echoed in X-Request-ID. Handlers get
the tagged logger with:

	log := middleware.LoggerFrom(r.Context(), h.log)

# CORS Middleware

	r.Use(middleware.CORS(cfg.CORSOrigin))

An empty origin reflects the caller's Origin header. Allows GET, POST and
OPTIONS; preflight requests are answered directly.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "Passwords do not match.")

Error bodies are {"success":false,"message":...,"error":...}.

Parse JSON request bodies:

	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)

Only ever logged through auth.HashIP.
*/
package middleware
