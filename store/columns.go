// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/funmapco/funmap/db"
)

// Columns lists the columns of table in their physical order. A table that
// does not exist yields an empty list and no error.
func (s *Store) Columns(ctx context.Context, table string) ([]string, error) {
	var (
		rows    *sql.Rows
		err     error
		nameCol string
	)

	switch s.dialect {
	case db.SQLite:
		rows, err = s.q.QueryContext(ctx, "PRAGMA table_info("+s.dialect.QuoteIdent(table)+")")
		nameCol = "name"
	case db.Postgres:
		rows, err = s.q.QueryContext(ctx, `
			SELECT column_name
			FROM information_schema.columns
			WHERE table_schema = current_schema() AND table_name = $1
			ORDER BY ordinal_position
		`, table)
		nameCol = "column_name"
	default:
		rows, err = s.q.QueryContext(ctx, "DESCRIBE "+s.dialect.QuoteIdent(table))
		nameCol = "field"
	}
	if err != nil {
		if db.IsMissingTable(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to describe %s: %w", table, err)
	}
	defer rows.Close()

	recs, err := scanRecords(rows)
	if err != nil {
		if db.IsMissingTable(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read columns of %s: %w", table, err)
	}

	columns := make([]string, 0, len(recs))
	for _, rec := range recs {
		if name := rec.str(nameCol); name != "" {
			columns = append(columns, name)
		}
	}
	return columns, nil
}

// record is one result row keyed by lowercased column label.
type record map[string]sql.NullString

func scanRecords(rows *sql.Rows) ([]record, error) {
	names, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	for i := range names {
		names[i] = strings.ToLower(names[i])
	}

	var out []record
	for rows.Next() {
		values := make([]sql.NullString, len(names))
		dest := make([]any, len(names))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		rec := make(record, len(names))
		for i, name := range names {
			rec[name] = values[i]
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r record) str(name string) string {
	v, ok := r[name]
	if !ok || !v.Valid {
		return ""
	}
	return strings.TrimSpace(v.String)
}

func (r record) int(name string) *int64 {
	s := r.str(name)
	if s == "" {
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}

func (r record) bool(name string) bool {
	switch strings.ToLower(r.str(name)) {
	case "1", "true", "yes", "y", "on":
		return true
	}
	return false
}
