// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the funmap API.

# Route Registration

NewRouter creates a chi router with all endpoints:

	h := router.NewRouter(db, cfg, iconFs, log)

# Middleware

Every request passes through, in order: chi RequestID, RealIP and
Recoverer, then middleware.WithLogging and middleware.CORS. CORS answers
OPTIONS preflights before routing.

# Endpoints

Health:

	GET /health

Connectors (paths kept from the legacy site):

	POST /connectors/add-member.php   - Register a member (form-encoded)
	POST /connectors/verify-login.php - Check credentials (JSON)
	GET  /connectors/get-form.php     - Form snapshot
	GET  /connectors/list-icons.php   - Icons in ?folder=

Gateway:

	ANY /gateway.php?action=get-form|add-member|verify-login|list-icons

A known path with the wrong method returns 405.
*/
package router
