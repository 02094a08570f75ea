// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens database connections and creates the baseline schema.

# Dialects

Three SQL flavours are supported through database/sql drivers:

  - mysql: github.com/go-sql-driver/mysql (production)
  - postgres: github.com/lib/pq
  - sqlite: modernc.org/sqlite (local development and tests)

Queries are written with ? placeholders; Dialect.Rebind converts them for
PostgreSQL. Dialect.QuoteIdent quotes identifiers (backticks for MySQL,
double quotes elsewhere).

# Schema Creation

CreateSchema initializes all tables:

	if err := db.CreateSchema(ctx, conn, db.MySQL); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables.

# Tables

  - members: registered members (email unique, bcrypt password_hash, member_key slug)
  - admins: administrator accounts
  - categories, subcategories: the listing taxonomy
  - field_types: named bundles of up to five field/fieldset references
  - fieldsets: reusable groups of fields
  - fields: individual form inputs

Existing installs may use different column names; the store package reads
whatever columns are present rather than relying on this layout.

# Errors

IsMissingTable and IsUniqueViolation classify driver errors for all three
dialects.
*/
package db
