// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"sort"
	"strconv"
	"strings"

	"github.com/funmapco/funmap/db"
	"github.com/funmapco/funmap/models"
)

// Alias maps a logical column to the physical names installs have used for
// it, in order of preference.
type Alias struct {
	Logical    string
	Candidates []string
}

var categoryAliases = []Alias{
	{"id", []string{"id"}},
	{"name", []string{"category_name", "name"}},
	{"key", []string{"category_key", "key", "slug"}},
	{"label", []string{"category_label", "label"}},
	{"sort_order", []string{"sort_order"}},
	{"icon_path", []string{"icon_path"}},
	{"mapmarker_path", []string{"mapmarker_path", "marker_path"}},
	{"metadata", []string{"metadata_json", "metadata"}},
}

var subcategoryAliases = []Alias{
	{"id", []string{"id"}},
	{"name", []string{"subcategory_name", "name"}},
	{"key", []string{"subcategory_key", "key", "slug"}},
	{"label", []string{"subcategory_label", "label"}},
	{"category_id", []string{"category_id"}},
	{"category_name", []string{"category_name", "category"}},
	{"category_key", []string{"category_key"}},
	{"sort_order", []string{"sort_order"}},
	{"icon_path", []string{"icon_path"}},
	{"mapmarker_path", []string{"mapmarker_path", "marker_path"}},
	{"metadata", []string{"metadata_json", "metadata"}},
	{"field_type_ids", []string{"field_type_id", "field_type_ids"}},
}

var fieldTypeAliases = []Alias{
	{"id", []string{"id"}},
	{"key", []string{"field_type_key", "key"}},
	{"name", []string{"field_type_name", "name"}},
	{"sort_order", []string{"sort_order"}},
	{"items", []string{"items_json", "items"}},
}

var fieldAliases = []Alias{
	{"id", []string{"id"}},
	{"key", []string{"field_key", "key"}},
	{"name", []string{"field_name", "name"}},
	{"type", []string{"type", "input_type", "field_type"}},
	{"required", []string{"required", "is_required"}},
	{"options", []string{"options_json", "options"}},
	{"placeholder", []string{"placeholder"}},
}

var fieldsetAliases = []Alias{
	{"id", []string{"id"}},
	{"key", []string{"fieldset_key", "key"}},
	{"name", []string{"fieldset_name", "name"}},
	{"field_ids", []string{"field_id", "field_ids"}},
}

// placeholderHintTables are read in order; an earlier table's hint for a
// key wins.
var placeholderHintTables = []string{
	"field_placeholder_hints",
	"field_placeholders",
	"field_type_placeholder_hints",
	"field_type_placeholders",
	"placeholder_hints",
}

// Hint tables have no fixed shape. Every key column present contributes,
// and the first non-empty text column is the placeholder.
var (
	placeholderKeyColumns = []string{
		"field_key", "fieldtype_key", "field_type_key", "field_type",
		"fieldname", "field_name", "key", "type_key", "type",
		"fieldset_key", "fieldset", "identifier", "slug", "code",
	}
	placeholderTextColumns = []string{
		"placeholder", "placeholder_text", "placeholder_hint", "placeholder_example",
		"default_placeholder", "hint", "hint_text", "example", "example_text",
		"text", "value",
	}
)

// selfAliases maps each column to itself, so Resolve keeps every one present.
func selfAliases(columns []string) []Alias {
	out := make([]Alias, len(columns))
	for i, c := range columns {
		out[i] = Alias{Logical: c, Candidates: []string{c}}
	}
	return out
}

// hintGroup classifies a hint key column.
func hintGroup(column string) string {
	switch {
	case strings.Contains(column, "fieldset"):
		return models.HintGroupFieldset
	case strings.Contains(column, "type"):
		return models.HintGroupType
	case strings.Contains(column, "field"):
		return models.HintGroupField
	}
	return models.HintGroupGeneral
}

// fieldTypeItemPrefix marks the numbered item columns on field_types.
const fieldTypeItemPrefix = "field_type_item_"

// ColumnSet is the result of matching a table's live columns against an
// alias table.
type ColumnSet struct {
	table    string
	physical map[string]string
	order    []string
}

// Resolve picks, for every alias, the first candidate present in columns.
// Matching is case-insensitive. Numbered field type item columns are kept
// under their own names, ordered by number.
func Resolve(table string, aliases []Alias, columns []string) ColumnSet {
	present := make(map[string]string, len(columns))
	for _, c := range columns {
		present[strings.ToLower(c)] = c
	}

	cs := ColumnSet{table: table, physical: make(map[string]string)}
	for _, a := range aliases {
		for _, cand := range a.Candidates {
			if phys, ok := present[cand]; ok {
				cs.physical[a.Logical] = phys
				cs.order = append(cs.order, a.Logical)
				break
			}
		}
	}

	var items []string
	for lower, phys := range present {
		if _, ok := itemIndex(lower); ok {
			items = append(items, lower)
			cs.physical[lower] = phys
		}
	}
	sort.Slice(items, func(i, j int) bool {
		a, _ := itemIndex(items[i])
		b, _ := itemIndex(items[j])
		return a < b
	})
	cs.order = append(cs.order, items...)

	return cs
}

func itemIndex(column string) (int, bool) {
	if !strings.HasPrefix(column, fieldTypeItemPrefix) {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimPrefix(column, fieldTypeItemPrefix))
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// Has reports whether the logical column was found.
func (c ColumnSet) Has(logical string) bool {
	_, ok := c.physical[logical]
	return ok
}

// Empty reports whether no recognised column was found.
func (c ColumnSet) Empty() bool {
	return len(c.order) == 0
}

// ItemColumns returns the numbered field type item columns in order.
func (c ColumnSet) ItemColumns() []string {
	var out []string
	for _, logical := range c.order {
		if _, ok := itemIndex(logical); ok {
			out = append(out, logical)
		}
	}
	return out
}

// SelectQuery aliases every found column to its logical name. With nothing
// recognised it falls back to SELECT *.
func (c ColumnSet) SelectQuery(d db.Dialect) string {
	var b strings.Builder
	b.WriteString("SELECT ")
	if c.Empty() {
		b.WriteString("*")
	}
	for i, logical := range c.order {
		if i > 0 {
			b.WriteString(", ")
		}
		phys := c.physical[logical]
		b.WriteString(d.QuoteIdent(phys))
		if phys != logical {
			b.WriteString(" AS ")
			b.WriteString(d.QuoteIdent(logical))
		}
	}
	b.WriteString(" FROM ")
	b.WriteString(d.QuoteIdent(c.table))
	if c.Has("sort_order") {
		b.WriteString(" ORDER BY ")
		b.WriteString(d.QuoteIdent(c.physical["sort_order"]))
		b.WriteString(" ASC")
	}
	return b.String()
}
