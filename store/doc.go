// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store reads the listing taxonomy from a schema that differs between
installs.

# Column Discovery

Columns introspects a table (DESCRIBE on MySQL, PRAGMA table_info on SQLite,
information_schema on PostgreSQL). A missing table is an empty column list,
not an error.

# Alias Tables

Each table has a declarative alias table mapping a logical column to the
physical names seen in the wild, in order of preference:

	{"name", []string{"category_name", "name"}}

Resolve matches the live columns once per table and SelectQuery aliases
every match back to its logical name:

	SELECT `id`, `category_name` AS `name`, `sort_order` FROM `categories` ORDER BY `sort_order` ASC

A table with no recognised columns is read with SELECT *.

# Loading

	cat, err := store.New(conn, db.MySQL).LoadCatalog(ctx)
	if errors.Is(err, store.ErrCoreTablesMissing) {
		// neither categories nor subcategories exist
	}

Category and subcategory rows with an empty name are skipped. Rows are
sorted by sort_order (missing last) and then by case-insensitive name.
Nothing is written.
*/
package store
