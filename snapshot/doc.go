// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package snapshot turns the raw catalog rows into the form snapshot served by
get-form.

# Pipeline

	cat, _ := store.New(conn, dialect).LoadCatalog(ctx)
	icons, _ := snapshot.DiscoverIcons(fs, snapshot.IconDir)
	w := snapshot.NewWarnings(log)
	snap := snapshot.Build(snapshot.Input{Catalog: cat, DiscoveredIcons: icons}, w)

Build is a pure transform. It reads nothing but its input and never fails.

# Field Expansion

A subcategory's field_type_id column lists field types. Each field type
item is either a field or a fieldset:

	Event name [field=5]
	Venue [fieldset=7]

A field item yields one definition. A fieldset item yields one definition
per bundled field, in the fieldset's order, each tagged with the fieldset's
id and key. Every reference is resolved into a Result; unresolved ones
carry a SkipReason and become warnings instead of errors. When a
subcategory ends up with no fields, its inline metadata.fields are used.

# Merging

Categories are keyed by slug. The first row with a key sets name, label
and id; later rows only fill blanks. Subcategories attach to their parent
by id, key or name. A parent named only by the subcategory is created on
the fly.

# Warnings

Warnings de-duplicates messages and logs each one once. The list ends up
in the snapshot so callers can see what was skipped.
*/
package snapshot
