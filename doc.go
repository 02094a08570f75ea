// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the funmap API server.

funmap is the backend of a map-based classifieds site. It registers and
logs in members, and serves the form snapshot the posting UI is built
from: categories, subcategories, their field definitions, and icons.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL="user:pass@tcp(localhost:3306)/funmap" go run .

Or with flags:

	go run . -p 3318 -t sqlite -d funmap.db -init-schema

A .env file in the working directory is loaded first; variables already
set in the environment win.

# Configuration

Required settings:

  - DATABASE_URL (-d): driver DSN

Optional settings:

  - DATABASE_TYPE (-t): mysql, postgres or sqlite (default: mysql)
  - PORT (-p): Server port (default: 3318)
  - ICON_ROOT (-icons): directory holding assets/icons-NN (default: .)
  - LOG_MODE (-log): dev or prod
  - CORS_ORIGIN (-cors): allowed browser origin
  - CREATE_SCHEMA (-init-schema): create missing tables on startup
  - IP_HASH_SALT (-ip-salt): salt for hashed client addresses in logs

# Architecture

  - handlers: HTTP request handlers (members, login, form, icons, gateway)
  - router: chi routes and middleware chain
  - middleware: request logging, CORS, JSON helpers
  - store: column-aware catalog reads
  - snapshot: field-type expansion and snapshot merge
  - models: Row, snapshot, request and response types
  - auth: Password hashing and IP hashing
  - db: Dialects, connections, schema
  - slug, logger, cliparse: supporting packages

See package documentation for each component.
*/
package main
