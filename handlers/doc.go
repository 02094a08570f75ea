// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the funmap API.

# Handler Types

Each handler is a struct with database, config, and logger dependencies:

  - MemberHandler: Member registration
  - LoginHandler: Credential checks against admins and members
  - FormHandler: Form snapshot for the posting UI
  - IconHandler: Icon folder listings
  - Gateway: Single-endpoint dispatch on ?action=

Handlers are created via constructor functions:

	formHandler := handlers.NewFormHandler(db, cfg, iconFs, log)

# Endpoints

	POST /connectors/add-member.php   → Register (form-encoded)
	POST /connectors/verify-login.php → VerifyLogin (JSON)
	GET  /connectors/get-form.php     → GetForm
	GET  /connectors/list-icons.php   → ListIcons (?folder=assets/icons-NN)
	ANY  /gateway.php?action=...      → get-form | add-member | verify-login | list-icons

# Registration

Registration validates the form, rejects an email already used by a member
or admin (case-insensitive), bcrypt-hashes the password, and assigns a
unique member_key slugged from the display name ("Jo Lane" → "jo-lane",
then "jo-lane-2", ...).

# Form Snapshot

GetForm reads the catalog tables through package store, whatever column
names the installation uses, and hands them to package snapshot. Data
problems become entries in snapshot.warnings rather than errors; only a
database failure or missing category tables produce a 500.

Errors are always JSON:

	{"success": false, "message": "...", "error": "..."}
*/
package handlers
