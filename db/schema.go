// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(ctx context.Context, conn *sql.DB, d Dialect) error {
	// Statements run one at a time; the MySQL driver rejects multi-statement
	// Exec unless multiStatements=true is set on the DSN.
	for _, stmt := range schemaStatements(d) {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

func schemaStatements(d Dialect) []string {
	var pk, ts string
	switch d {
	case Postgres:
		pk, ts = "SERIAL PRIMARY KEY", "TIMESTAMP"
	case SQLite:
		pk, ts = "INTEGER PRIMARY KEY AUTOINCREMENT", "TIMESTAMP"
	default:
		pk, ts = "INT AUTO_INCREMENT PRIMARY KEY", "DATETIME"
	}
	r := strings.NewReplacer("{{pk}}", pk, "{{ts}}", ts)

	stmts := make([]string, 0, len(schema))
	for _, s := range schema {
		stmts = append(stmts, r.Replace(s))
	}
	return stmts
}

var schema = []string{
	// Members
	`CREATE TABLE IF NOT EXISTS members (
    id {{pk}},
    email VARCHAR(255) NOT NULL UNIQUE,
    password_hash VARCHAR(255) NOT NULL,
    display_name VARCHAR(255) NOT NULL,
    member_key VARCHAR(255) UNIQUE,
    avatar_url TEXT,
    created_at {{ts}} NOT NULL DEFAULT CURRENT_TIMESTAMP
)`,

	// Admins
	`CREATE TABLE IF NOT EXISTS admins (
    id {{pk}},
    email VARCHAR(255) NOT NULL UNIQUE,
    password_hash VARCHAR(255) NOT NULL,
    display_name VARCHAR(255) NOT NULL,
    created_at {{ts}} NOT NULL DEFAULT CURRENT_TIMESTAMP
)`,

	// Categories
	`CREATE TABLE IF NOT EXISTS categories (
    id {{pk}},
    category_name VARCHAR(255) NOT NULL,
    category_key VARCHAR(255),
    sort_order INT,
    icon_path TEXT,
    mapmarker_path TEXT,
    metadata_json TEXT
)`,

	// Subcategories
	`CREATE TABLE IF NOT EXISTS subcategories (
    id {{pk}},
    category_id INT,
    category_name VARCHAR(255),
    subcategory_name VARCHAR(255) NOT NULL,
    subcategory_key VARCHAR(255),
    sort_order INT,
    icon_path TEXT,
    mapmarker_path TEXT,
    metadata_json TEXT,
    field_type_id TEXT
)`,

	// Field types: up to five "label [field=N]" / "label [fieldset=N]" items
	`CREATE TABLE IF NOT EXISTS field_types (
    id {{pk}},
    field_type_key VARCHAR(255),
    field_type_name VARCHAR(255),
    sort_order INT,
    field_type_item_1 TEXT,
    field_type_item_2 TEXT,
    field_type_item_3 TEXT,
    field_type_item_4 TEXT,
    field_type_item_5 TEXT
)`,

	// Fieldsets: field_id is a CSV of field ids
	`CREATE TABLE IF NOT EXISTS fieldsets (
    id {{pk}},
    fieldset_key VARCHAR(255),
    fieldset_name VARCHAR(255),
    field_id TEXT
)`,

	// Fields
	`CREATE TABLE IF NOT EXISTS fields (
    id {{pk}},
    field_key VARCHAR(255),
    field_name VARCHAR(255),
    type VARCHAR(64),
    required INT NOT NULL DEFAULT 0,
    options_json TEXT,
    placeholder TEXT
)`,
}
