// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/funmapco/funmap/db"
	"github.com/funmapco/funmap/models"
)

// ErrCoreTablesMissing is returned when neither categories nor
// subcategories exist.
var ErrCoreTablesMissing = errors.New("categories and subcategories tables not available")

// Querier is the read side of *sql.DB, *sql.Tx and *sql.Conn.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

type Store struct {
	q       Querier
	dialect db.Dialect
}

func New(q Querier, d db.Dialect) *Store {
	return &Store{q: q, dialect: d}
}

// HasTable reports whether table exists.
func (s *Store) HasTable(ctx context.Context, table string) (bool, error) {
	cols, err := s.Columns(ctx, table)
	return len(cols) > 0, err
}

// LoadCatalog reads every table the snapshot needs. Each table's column
// list is looked up exactly once. Only categories and subcategories
// missing together is fatal; the other tables are optional.
func (s *Store) LoadCatalog(ctx context.Context) (*models.Catalog, error) {
	catCols, err := s.Columns(ctx, "categories")
	if err != nil {
		return nil, err
	}
	subCols, err := s.Columns(ctx, "subcategories")
	if err != nil {
		return nil, err
	}
	if len(catCols) == 0 && len(subCols) == 0 {
		return nil, ErrCoreTablesMissing
	}

	cat := &models.Catalog{}

	if len(catCols) > 0 {
		if cat.Categories, err = s.loadCategories(ctx, Resolve("categories", categoryAliases, catCols)); err != nil {
			return nil, err
		}
	}
	if len(subCols) > 0 {
		if cat.Subcategories, err = s.loadSubcategories(ctx, Resolve("subcategories", subcategoryAliases, subCols)); err != nil {
			return nil, err
		}
	}

	if cols, err := s.Columns(ctx, "field_types"); err != nil {
		return nil, err
	} else if len(cols) > 0 {
		if cat.FieldTypes, err = s.loadFieldTypes(ctx, Resolve("field_types", fieldTypeAliases, cols)); err != nil {
			return nil, err
		}
	}
	if cols, err := s.Columns(ctx, "fields"); err != nil {
		return nil, err
	} else if len(cols) > 0 {
		if cat.Fields, err = s.loadFields(ctx, Resolve("fields", fieldAliases, cols)); err != nil {
			return nil, err
		}
	}
	if cols, err := s.Columns(ctx, "fieldsets"); err != nil {
		return nil, err
	} else if len(cols) > 0 {
		if cat.Fieldsets, err = s.loadFieldsets(ctx, Resolve("fieldsets", fieldsetAliases, cols)); err != nil {
			return nil, err
		}
	}

	for _, table := range placeholderHintTables {
		cols, err := s.Columns(ctx, table)
		if err != nil {
			return nil, err
		}
		if len(cols) == 0 {
			continue
		}
		hints, err := s.loadPlaceholderHints(ctx, table, cols)
		if err != nil {
			return nil, err
		}
		cat.PlaceholderHints = append(cat.PlaceholderHints, hints...)
	}

	return cat, nil
}

func (s *Store) fetch(ctx context.Context, cs ColumnSet) ([]record, error) {
	rows, err := s.q.QueryContext(ctx, cs.SelectQuery(s.dialect))
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", cs.table, err)
	}
	defer rows.Close()

	recs, err := scanRecords(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", cs.table, err)
	}
	return recs, nil
}

// Rows with an empty name are dropped.
func (s *Store) loadCategories(ctx context.Context, cs ColumnSet) ([]models.CategoryRow, error) {
	recs, err := s.fetch(ctx, cs)
	if err != nil {
		return nil, err
	}

	out := make([]models.CategoryRow, 0, len(recs))
	for _, rec := range recs {
		name := rec.str("name")
		if name == "" {
			continue
		}
		out = append(out, models.CategoryRow{
			ID:         rec.int("id"),
			Name:       name,
			Key:        rec.str("key"),
			Label:      rec.str("label"),
			SortOrder:  rec.int("sort_order"),
			IconPath:   rec.str("icon_path"),
			MarkerPath: rec.str("mapmarker_path"),
			Metadata:   rec.str("metadata"),
		})
	}

	slices.SortStableFunc(out, func(a, b models.CategoryRow) int {
		return models.CompareOrder(a.SortOrder, a.Name, b.SortOrder, b.Name)
	})
	return out, nil
}

func (s *Store) loadSubcategories(ctx context.Context, cs ColumnSet) ([]models.SubcategoryRow, error) {
	recs, err := s.fetch(ctx, cs)
	if err != nil {
		return nil, err
	}

	out := make([]models.SubcategoryRow, 0, len(recs))
	for _, rec := range recs {
		name := rec.str("name")
		if name == "" {
			continue
		}
		out = append(out, models.SubcategoryRow{
			ID:           rec.int("id"),
			Name:         name,
			Key:          rec.str("key"),
			Label:        rec.str("label"),
			CategoryID:   rec.int("category_id"),
			CategoryName: rec.str("category_name"),
			CategoryKey:  rec.str("category_key"),
			SortOrder:    rec.int("sort_order"),
			IconPath:     rec.str("icon_path"),
			MarkerPath:   rec.str("mapmarker_path"),
			Metadata:     rec.str("metadata"),
			FieldTypeIDs: rec.str("field_type_ids"),
		})
	}

	slices.SortStableFunc(out, func(a, b models.SubcategoryRow) int {
		return models.CompareOrder(a.SortOrder, a.Name, b.SortOrder, b.Name)
	})
	return out, nil
}

// Field types without a numeric id cannot be referenced and are dropped.
func (s *Store) loadFieldTypes(ctx context.Context, cs ColumnSet) ([]models.FieldTypeRow, error) {
	recs, err := s.fetch(ctx, cs)
	if err != nil {
		return nil, err
	}

	itemCols := cs.ItemColumns()
	out := make([]models.FieldTypeRow, 0, len(recs))
	for _, rec := range recs {
		id := rec.int("id")
		if id == nil {
			continue
		}
		row := models.FieldTypeRow{
			ID:        *id,
			Key:       rec.str("key"),
			Name:      rec.str("name"),
			SortOrder: rec.int("sort_order"),
		}
		for _, col := range itemCols {
			if v := rec.str(col); v != "" {
				row.Items = append(row.Items, v)
			}
		}
		if len(row.Items) == 0 {
			row.Items = splitItems(rec.str("items"))
		}
		out = append(out, row)
	}

	slices.SortStableFunc(out, func(a, b models.FieldTypeRow) int {
		return models.CompareOrder(a.SortOrder, a.Name, b.SortOrder, b.Name)
	})
	return out, nil
}

// splitItems accepts a JSON array of strings or one item per line.
func splitItems(raw string) []string {
	if raw == "" {
		return nil
	}
	var items []string
	if strings.HasPrefix(raw, "[") && json.Unmarshal([]byte(raw), &items) == nil {
		return slices.DeleteFunc(items, func(s string) bool { return strings.TrimSpace(s) == "" })
	}
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

func (s *Store) loadFields(ctx context.Context, cs ColumnSet) ([]models.FieldRow, error) {
	recs, err := s.fetch(ctx, cs)
	if err != nil {
		return nil, err
	}

	out := make([]models.FieldRow, 0, len(recs))
	for _, rec := range recs {
		id := rec.int("id")
		if id == nil {
			continue
		}
		out = append(out, models.FieldRow{
			ID:          *id,
			Key:         rec.str("key"),
			Name:        rec.str("name"),
			Type:        rec.str("type"),
			Required:    rec.bool("required"),
			Options:     rec.str("options"),
			Placeholder: rec.str("placeholder"),
		})
	}
	return out, nil
}

func (s *Store) loadFieldsets(ctx context.Context, cs ColumnSet) ([]models.FieldsetRow, error) {
	recs, err := s.fetch(ctx, cs)
	if err != nil {
		return nil, err
	}

	out := make([]models.FieldsetRow, 0, len(recs))
	for _, rec := range recs {
		id := rec.int("id")
		if id == nil {
			continue
		}
		out = append(out, models.FieldsetRow{
			ID:       *id,
			Key:      rec.str("key"),
			Name:     rec.str("name"),
			FieldIDs: rec.str("field_ids"),
		})
	}
	return out, nil
}

// loadPlaceholderHints reads one hint table. A table without both a key
// column and a text column is ignored. Each row yields one hint per
// non-empty key column.
func (s *Store) loadPlaceholderHints(ctx context.Context, table string, cols []string) ([]models.PlaceholderHintRow, error) {
	keys := Resolve(table, selfAliases(placeholderKeyColumns), cols)
	texts := Resolve(table, selfAliases(placeholderTextColumns), cols)
	if keys.Empty() || texts.Empty() {
		return nil, nil
	}

	cs := Resolve(table, selfAliases(append(slices.Clone(placeholderKeyColumns), placeholderTextColumns...)), cols)
	recs, err := s.fetch(ctx, cs)
	if err != nil {
		return nil, err
	}

	var out []models.PlaceholderHintRow
	for _, rec := range recs {
		text := ""
		for _, c := range texts.order {
			if text = rec.str(c); text != "" {
				break
			}
		}
		if text == "" {
			continue
		}
		for _, c := range keys.order {
			if key := strings.ToLower(rec.str(c)); key != "" {
				out = append(out, models.PlaceholderHintRow{Group: hintGroup(c), Key: key, Text: text})
			}
		}
	}
	return out, nil
}
