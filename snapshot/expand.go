// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package snapshot

import (
	"fmt"
	"slices"
	"strings"

	"github.com/funmapco/funmap/models"
	"github.com/funmapco/funmap/slug"
)

const (
	defaultFieldType = "text"
	locationType     = "location"
)

// SkipReason says why a field type item produced no field.
type SkipReason string

const (
	SkipNone             SkipReason = ""
	SkipMissingFieldType SkipReason = "missing field type"
	SkipMissingField     SkipReason = "missing field"
	SkipMissingFieldset  SkipReason = "missing fieldset"
	SkipUnresolvedItem   SkipReason = "unresolved item"
)

// Result is the outcome of resolving one reference: a field, or the reason
// it was skipped.
type Result struct {
	Field  models.FieldDefinition
	Skip   SkipReason
	Detail string
}

func (r Result) Skipped() bool { return r.Skip != SkipNone }

func skipped(reason SkipReason, format string, args ...any) Result {
	return Result{Skip: reason, Detail: fmt.Sprintf(format, args...)}
}

// Expander resolves field type ids against one catalog.
type Expander struct {
	fieldTypes  map[int64]models.FieldType
	typeOrder   []int64
	fields      map[int64]models.Field
	fieldsByKey map[string]models.Field
	fieldsets   map[int64]models.Fieldset
	tableHints  map[string]Hints
	w           *Warnings
}

func NewExpander(cat *models.Catalog, w *Warnings) *Expander {
	e := &Expander{
		fieldTypes:  map[int64]models.FieldType{},
		fields:      map[int64]models.Field{},
		fieldsByKey: map[string]models.Field{},
		fieldsets:   map[int64]models.Fieldset{},
		tableHints:  map[string]Hints{},
		w:           w,
	}
	if cat == nil {
		return e
	}

	for _, row := range cat.PlaceholderHints {
		h, ok := e.tableHints[row.Group]
		if !ok {
			h = Hints{}
			e.tableHints[row.Group] = h
		}
		h.set(row.Key, row.Text)
	}

	for _, row := range cat.Fields {
		if _, dup := e.fields[row.ID]; dup {
			continue
		}
		f := models.Field{
			ID:          row.ID,
			Key:         strings.TrimSpace(row.Key),
			Name:        strings.TrimSpace(row.Name),
			Type:        strings.TrimSpace(row.Type),
			Required:    row.Required,
			Options:     ParseOptions(row.Options),
			Placeholder: strings.TrimSpace(row.Placeholder),
		}
		if f.Key == "" {
			f.Key = strings.ReplaceAll(slug.Slugify(f.Name), "-", "_")
		}
		e.fields[f.ID] = f
		if k := strings.ToLower(f.Key); k != "" {
			if _, dup := e.fieldsByKey[k]; !dup {
				e.fieldsByKey[k] = f
			}
		}
	}

	for _, row := range cat.Fieldsets {
		if _, dup := e.fieldsets[row.ID]; dup {
			continue
		}
		e.fieldsets[row.ID] = models.Fieldset{
			ID:       row.ID,
			Key:      strings.TrimSpace(row.Key),
			Name:     strings.TrimSpace(row.Name),
			FieldIDs: ParseIDList(row.FieldIDs, w),
		}
	}

	for _, row := range cat.FieldTypes {
		if _, dup := e.fieldTypes[row.ID]; dup {
			continue
		}
		ft := models.FieldType{
			ID:        row.ID,
			Key:       strings.TrimSpace(row.Key),
			Name:      strings.TrimSpace(row.Name),
			SortOrder: row.SortOrder,
			Items:     []models.FieldTypeItem{},
		}
		if ft.Key == "" {
			ft.Key = strings.ReplaceAll(slug.Slugify(ft.Name), "-", "_")
		}
		if ft.Name == "" {
			ft.Name = slug.Humanize(ft.Key)
		}
		for _, raw := range row.Items {
			if item, ok := ParseItem(raw); ok {
				ft.Items = append(ft.Items, item)
			}
		}
		e.fieldTypes[ft.ID] = ft
		e.typeOrder = append(e.typeOrder, ft.ID)
	}
	return e
}

// FieldTypes returns every known field type ordered by sort order, then name.
func (e *Expander) FieldTypes() []models.FieldType {
	out := make([]models.FieldType, 0, len(e.typeOrder))
	for _, id := range e.typeOrder {
		out = append(out, e.fieldTypes[id])
	}
	slices.SortStableFunc(out, func(a, b models.FieldType) int {
		return models.CompareOrder(a.SortOrder, a.Name, b.SortOrder, b.Name)
	})
	return out
}

// Expand resolves ids in order. Each produced field and each skipped
// reference yields one Result; item order is preserved, and a fieldset's
// fields follow the fieldset's own order.
func (e *Expander) Expand(ids []int64, hints Hints) []Result {
	var results []Result
	for _, id := range ids {
		ft, ok := e.fieldTypes[id]
		if !ok {
			results = append(results, skipped(SkipMissingFieldType, "field type %d", id))
			continue
		}
		for _, item := range ft.Items {
			results = append(results, e.expandItem(ft, item, hints)...)
		}
	}
	return results
}

func (e *Expander) expandItem(ft models.FieldType, item models.FieldTypeItem, hints Hints) []Result {
	switch item.Kind {
	case models.ItemField:
		f, ok := e.fields[*item.RefID]
		if !ok {
			return []Result{skipped(SkipMissingField, "field %d in field type %q", *item.RefID, ft.Key)}
		}
		return []Result{{Field: e.define(ft, item, f, nil, hints)}}

	case models.ItemFieldset:
		fs, ok := e.fieldsets[*item.RefID]
		if !ok {
			return []Result{skipped(SkipMissingFieldset, "fieldset %d in field type %q", *item.RefID, ft.Key)}
		}
		results := make([]Result, 0, len(fs.FieldIDs))
		for _, fid := range fs.FieldIDs {
			f, ok := e.fields[fid]
			if !ok {
				results = append(results, skipped(SkipMissingField, "field %d in fieldset %q", fid, fs.Key))
				continue
			}
			results = append(results, Result{Field: e.define(ft, item, f, &fs, hints)})
		}
		return results
	}

	// Raw items name a field by key.
	for _, k := range []string{item.Label, slug.Slugify(item.Label), strings.ReplaceAll(slug.Slugify(item.Label), "-", "_")} {
		if f, ok := e.fieldsByKey[strings.ToLower(strings.TrimSpace(k))]; ok {
			return []Result{{Field: e.define(ft, item, f, nil, hints)}}
		}
	}
	return []Result{skipped(SkipUnresolvedItem, "item %q in field type %q", item.Label, ft.Key)}
}

func (e *Expander) define(ft models.FieldType, item models.FieldTypeItem, f models.Field, fs *models.Fieldset, hints Hints) models.FieldDefinition {
	id, ftID := f.ID, ft.ID
	def := models.FieldDefinition{
		ID:           &id,
		Key:          f.Key,
		Type:         firstNonEmpty(f.Type, ft.Key, defaultFieldType),
		Required:     f.Required,
		Options:      append([]string{}, f.Options...),
		FieldTypeID:  &ftID,
		FieldTypeKey: ft.Key,
	}
	if def.Key == "" {
		def.Key = fmt.Sprintf("field_%d", f.ID)
	}

	itemLabel := item.Label
	if item.Kind == models.ItemRaw {
		itemLabel = ""
	}

	fsKey := ""
	if fs != nil {
		fsID := fs.ID
		fsKey = fs.Key
		def.FieldsetID = &fsID
		def.FieldsetKey = fs.Key
		def.FieldsetLabel = slug.Humanize(firstNonEmpty(itemLabel, fs.Name, fs.Key))
	}
	// Fieldset members take the item label too.
	def.Label = slug.Humanize(firstNonEmpty(itemLabel, ft.Name, f.Key))

	def.Placeholder = firstNonEmpty(
		hints.Lookup(ft.Key, f.Key, slug.Slugify(itemLabel), fsKey),
		e.tableHint(ft, f.Key, itemLabel, fsKey),
		f.Placeholder,
	)
	if def.Type == locationType {
		def.Location = &models.LocationBlueprint{}
	}
	return def
}

// tableHint looks a placeholder up in the hint tables: by field type key
// then name, then by field key or item label, then by fieldset key.
func (e *Expander) tableHint(ft models.FieldType, fieldKey, itemLabel, fsKey string) string {
	typed, general := e.tableHints[models.HintGroupType], e.tableHints[models.HintGroupGeneral]
	for _, k := range []string{ft.Key, ft.Name} {
		if v := firstNonEmpty(typed.Lookup(k), general.Lookup(k)); v != "" {
			return v
		}
	}
	if v := e.tableHints[models.HintGroupField].Lookup(fieldKey, itemLabel); v != "" {
		return v
	}
	return e.tableHints[models.HintGroupFieldset].Lookup(fsKey)
}

// Fields expands ids for one subcategory and reports every skip as a
// warning. When nothing was produced the subcategory's inline
// metadata.fields are used instead.
func (e *Expander) Fields(owner string, ids []int64, meta map[string]any) []models.FieldDefinition {
	fields := []models.FieldDefinition{}
	for _, r := range e.Expand(ids, HintsFromMetadata(meta)) {
		if r.Skipped() {
			e.w.Add("subcategory %q: %s: %s", owner, r.Skip, r.Detail)
			continue
		}
		fields = append(fields, r.Field)
	}
	if len(fields) == 0 {
		return MetadataFields(meta)
	}
	return fields
}

// MetadataFields normalizes an inline metadata.fields array. Entries
// without a type are ignored.
func MetadataFields(meta map[string]any) []models.FieldDefinition {
	out := []models.FieldDefinition{}
	list, _ := meta["fields"].([]any)
	for _, raw := range list {
		obj, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		typ := stringField(obj, "type")
		if typ == "" {
			continue
		}
		label := firstNonEmpty(stringField(obj, "name"), stringField(obj, "label"), slug.Humanize(typ))
		def := models.FieldDefinition{
			Key:         firstNonEmpty(stringField(obj, "key"), strings.ReplaceAll(slug.Slugify(label), "-", "_")),
			Label:       label,
			Type:        typ,
			Required:    truthy(obj["required"]),
			Placeholder: stringField(obj, "placeholder"),
			Options:     optionsFromAny(obj["options"]),
		}
		if typ == locationType {
			loc := &models.LocationBlueprint{}
			if l, ok := obj["location"].(map[string]any); ok {
				loc.Address = stringField(l, "address")
				loc.Latitude = stringField(l, "latitude")
				loc.Longitude = stringField(l, "longitude")
			}
			def.Location = loc
		}
		out = append(out, def)
	}
	return out
}

// Hints maps a lower-cased key to a placeholder.
type Hints map[string]string

// HintsFromMetadata collects placeholder hints from metadata.placeholders
// and from metadata.fields entries. The first hint for a key wins.
func HintsFromMetadata(meta map[string]any) Hints {
	h := Hints{}
	if m, ok := meta["placeholders"].(map[string]any); ok {
		// Map iteration is random; sort for a stable first-wins.
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			if v, ok := m[k].(string); ok {
				h.set(k, v)
			}
		}
	}
	if list, ok := meta["fields"].([]any); ok {
		for _, raw := range list {
			obj, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			ph := stringField(obj, "placeholder")
			if ph == "" {
				continue
			}
			h.set(stringField(obj, "key"), ph)
			h.set(stringField(obj, "type"), ph)
			h.set(slug.Slugify(stringField(obj, "name")), ph)
		}
	}
	return h
}

func (h Hints) set(key, value string) {
	k := strings.ToLower(strings.TrimSpace(key))
	v := strings.TrimSpace(value)
	if k == "" || v == "" {
		return
	}
	if _, exists := h[k]; !exists {
		h[k] = v
	}
}

// Lookup returns the hint for the first key that has one.
func (h Hints) Lookup(keys ...string) string {
	for _, key := range keys {
		k := strings.ToLower(strings.TrimSpace(key))
		if k == "" {
			continue
		}
		if v, ok := h[k]; ok {
			return v
		}
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
