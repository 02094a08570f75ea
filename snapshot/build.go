// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package snapshot

import (
	"fmt"
	"html"
	"maps"
	"slices"
	"strings"

	"github.com/funmapco/funmap/models"
	"github.com/funmapco/funmap/slug"
)

// Input is everything Build reads. DiscoveredIcons are icon paths found on
// disk; they are merged into the icon library.
type Input struct {
	Catalog         *models.Catalog
	DiscoveredIcons []string
}

// builder holds the category tree while rows are folded in.
type builder struct {
	w *Warnings

	order      []string
	byKey      map[string]*models.Category
	byID       map[int64]string
	byName     map[string]string
	currencies map[string]struct{}
	shapes     map[string]any
}

// Build folds the catalog into a snapshot. It never fails: bad references
// and malformed metadata are skipped and reported through w, which also
// supplies the snapshot's warnings list.
func Build(in Input, w *Warnings) *models.Snapshot {
	if w == nil {
		w = NewWarnings(nil)
	}
	cat := in.Catalog
	if cat == nil {
		cat = &models.Catalog{}
	}

	b := &builder{
		w:          w,
		byKey:      map[string]*models.Category{},
		byID:       map[int64]string{},
		byName:     map[string]string{},
		currencies: map[string]struct{}{},
		shapes:     map[string]any{},
	}
	exp := NewExpander(cat, w)

	for _, row := range cat.Categories {
		b.addCategory(row)
	}
	for _, row := range cat.Subcategories {
		b.addSubcategory(row, exp)
	}

	categories := make([]models.Category, 0, len(b.order))
	for _, key := range b.order {
		c := b.byKey[key]
		slices.SortStableFunc(c.Subcategories, func(x, y models.Subcategory) int {
			return models.CompareOrder(x.SortOrder, x.Name, y.SortOrder, y.Name)
		})
		c.Subs = make([]string, 0, len(c.Subcategories))
		for _, s := range c.Subcategories {
			c.Subs = append(c.Subs, s.Name)
		}
		categories = append(categories, *c)
	}
	slices.SortStableFunc(categories, func(x, y models.Category) int {
		return models.CompareOrder(x.SortOrder, x.Name, y.SortOrder, y.Name)
	})

	snap := newSnapshot()
	snap.Categories = categories
	snap.CategoryShapes = b.shapes
	snap.FieldTypes = exp.FieldTypes()

	library := map[string]struct{}{}
	addIcon := func(p string) {
		if lp := LibraryPath(p); lp != "" {
			library[lp] = struct{}{}
		}
	}

	for i := range snap.Categories {
		c := &snap.Categories[i]
		iconHTML, iconPath := resolveIcon(c.IconPath, c.Metadata)
		c.IconPath = iconPath
		c.MarkerPath = firstNonEmpty(c.MarkerPath, stringField(c.Metadata, "marker"))

		if iconHTML != "" {
			snap.CategoryIcons[c.Name] = iconHTML
		}
		if iconPath != "" {
			snap.CategoryIconPaths[c.Name] = iconPath
			snap.CategoryIconPathsByKey[c.Key] = iconPath
			addIcon(iconPath)
		}
		if c.MarkerPath != "" {
			snap.CategoryMarkers[c.Key] = c.MarkerPath
			addIcon(c.MarkerPath)
		}
		snap.CategoryKeys[c.Name] = c.Key
		snap.CategoryLabels[c.Key] = c.Label
		if c.ID != nil {
			snap.CategoryIDs[c.Name] = *c.ID
		}

		for j := range c.Subcategories {
			s := &c.Subcategories[j]
			iconHTML, iconPath := resolveIcon(s.IconPath, s.Metadata)
			s.IconPath = iconPath
			s.MarkerPath = firstNonEmpty(s.MarkerPath, stringField(s.Metadata, "marker"))

			// Names can repeat across categories; the first one listed wins.
			if _, dup := snap.SubcategoryKeys[s.Name]; !dup {
				snap.SubcategoryKeys[s.Name] = s.Key
				if iconHTML != "" {
					snap.SubcategoryIcons[s.Name] = iconHTML
				}
				if iconPath != "" {
					snap.SubcategoryIconPaths[s.Name] = iconPath
				}
				if s.ID != nil {
					snap.SubcategoryIDs[s.Name] = *s.ID
				}
				snap.SubcategoryMarkerIDs[s.Name] = firstNonEmpty(stringField(s.Metadata, "markerId"), s.Key)
				snap.SubcategoryFieldTypeIDs[s.Name] = s.FieldTypeIDs
				snap.SubcategoryFields[s.Name] = s.Fields
			}
			if _, dup := snap.SubcategoryLabels[s.Key]; !dup {
				snap.SubcategoryLabels[s.Key] = s.Label
				if iconPath != "" {
					snap.SubcategoryIconPathsByKey[s.Key] = iconPath
				}
				if s.MarkerPath != "" {
					snap.SubcategoryMarkers[s.Key] = s.MarkerPath
				}
				snap.SubcategoryFieldTypeIDsByKey[s.Key] = s.FieldTypeIDs
				snap.SubcategoryFieldsByKey[s.Key] = s.Fields
			}
			addIcon(iconPath)
			addIcon(s.MarkerPath)
		}
	}

	for _, p := range in.DiscoveredIcons {
		addIcon(p)
	}
	snap.IconLibrary = slices.Sorted(maps.Keys(library))
	snap.VersionPriceCurrencies = slices.Sorted(maps.Keys(b.currencies))
	snap.Warnings = w.List()
	return snap
}

func (b *builder) addCategory(row models.CategoryRow) {
	name := strings.TrimSpace(row.Name)
	if name == "" {
		return
	}
	key := slug.Slugify(row.Key)
	if key == "" {
		key = slug.Key(name, "category")
	}
	meta := decodeMetadata(row.Metadata, fmt.Sprintf("category %q", name), b.w)

	c, exists := b.byKey[key]
	if !exists {
		c = &models.Category{
			ID:            row.ID,
			Name:          name,
			Key:           key,
			Label:         firstNonEmpty(row.Label, name),
			SortOrder:     row.SortOrder,
			IconPath:      strings.TrimSpace(row.IconPath),
			MarkerPath:    strings.TrimSpace(row.MarkerPath),
			Metadata:      meta,
			Subs:          []string{},
			Subcategories: []models.Subcategory{},
		}
		b.byKey[key] = c
		b.order = append(b.order, key)
	} else {
		if c.ID == nil {
			c.ID = row.ID
		}
		if c.SortOrder == nil {
			c.SortOrder = row.SortOrder
		}
		c.Label = firstNonEmpty(c.Label, row.Label)
		c.IconPath = firstNonEmpty(c.IconPath, row.IconPath)
		c.MarkerPath = firstNonEmpty(c.MarkerPath, row.MarkerPath)
		fillMetadata(c.Metadata, meta)
	}

	if row.ID != nil {
		if _, dup := b.byID[*row.ID]; !dup {
			b.byID[*row.ID] = key
		}
	}
	if _, dup := b.byName[strings.ToLower(name)]; !dup {
		b.byName[strings.ToLower(name)] = key
	}
}

// parent finds or synthesizes the category a subcategory row belongs to.
func (b *builder) parent(row models.SubcategoryRow, subName string) *models.Category {
	if row.CategoryID != nil {
		if key, ok := b.byID[*row.CategoryID]; ok {
			return b.byKey[key]
		}
	}
	if k := slug.Slugify(row.CategoryKey); k != "" {
		if c, ok := b.byKey[k]; ok {
			return c
		}
	}
	catName := strings.TrimSpace(row.CategoryName)
	if catName != "" {
		if key, ok := b.byName[strings.ToLower(catName)]; ok {
			return b.byKey[key]
		}
		if c, ok := b.byKey[slug.Key(catName, "category")]; ok {
			return c
		}
	}

	if catName == "" && strings.TrimSpace(row.CategoryKey) == "" {
		if row.CategoryID != nil {
			b.w.Add("subcategory %q references unknown category %d", subName, *row.CategoryID)
		} else {
			b.w.Add("subcategory %q has no category", subName)
		}
		return nil
	}

	// A key of punctuation only humanizes to nothing; keep it verbatim as
	// the name so the category still gets a fallback key.
	catName = firstNonEmpty(catName, slug.Humanize(row.CategoryKey), strings.TrimSpace(row.CategoryKey))
	b.addCategory(models.CategoryRow{Name: catName, Key: row.CategoryKey})
	c := b.byKey[b.byName[strings.ToLower(catName)]]
	if c == nil {
		b.w.Add("subcategory %q: could not create category %q", subName, catName)
	}
	return c
}

func (b *builder) addSubcategory(row models.SubcategoryRow, exp *Expander) {
	name := strings.TrimSpace(row.Name)
	if name == "" {
		return
	}
	c := b.parent(row, name)
	if c == nil {
		return
	}

	key := slug.Slugify(row.Key)
	if key == "" {
		key = slug.Key(name, "subcategory")
	}
	meta := decodeMetadata(row.Metadata, fmt.Sprintf("subcategory %q", name), b.w)

	ids := ParseIDList(row.FieldTypeIDs, b.w)
	if len(ids) == 0 {
		ids = idsFromAny(meta["fieldTypeIds"], b.w)
	}

	b.collectCurrencies(meta)
	if shape, ok := meta["categoryShape"]; ok && shape != nil {
		if _, dup := b.shapes[c.Name]; !dup {
			b.shapes[c.Name] = shape
		}
	}

	sub := models.Subcategory{
		ID:           row.ID,
		Name:         name,
		Key:          key,
		Label:        firstNonEmpty(row.Label, name),
		CategoryName: c.Name,
		CategoryKey:  c.Key,
		SortOrder:    row.SortOrder,
		Metadata:     meta,
		Fields:       exp.Fields(name, ids, meta),
		FieldTypeIDs: ids,
		IconPath:     strings.TrimSpace(row.IconPath),
		MarkerPath:   strings.TrimSpace(row.MarkerPath),
	}

	for i := range c.Subcategories {
		existing := &c.Subcategories[i]
		if existing.Key != key {
			continue
		}
		if existing.ID == nil {
			existing.ID = sub.ID
		}
		if existing.SortOrder == nil {
			existing.SortOrder = sub.SortOrder
		}
		existing.Label = firstNonEmpty(existing.Label, sub.Label)
		existing.IconPath = firstNonEmpty(existing.IconPath, sub.IconPath)
		existing.MarkerPath = firstNonEmpty(existing.MarkerPath, sub.MarkerPath)
		fillMetadata(existing.Metadata, sub.Metadata)
		if len(existing.Fields) == 0 {
			existing.Fields = sub.Fields
		}
		if len(existing.FieldTypeIDs) == 0 {
			existing.FieldTypeIDs = sub.FieldTypeIDs
		}
		return
	}
	c.Subcategories = append(c.Subcategories, sub)
}

func (b *builder) collectCurrencies(meta map[string]any) {
	list, _ := meta["versionPriceCurrencies"].([]any)
	for _, v := range list {
		if code := strings.ToUpper(scalarString(v)); code != "" {
			b.currencies[code] = struct{}{}
		}
	}
}

// resolveIcon returns the icon HTML and path. An explicit path wins over
// the HTML snippet stored in metadata.icon.
func resolveIcon(explicit string, meta map[string]any) (iconHTML, iconPath string) {
	if p := strings.TrimSpace(explicit); p != "" {
		return fmt.Sprintf(`<img src="%s" width="20" height="20" alt="">`, html.EscapeString(p)), p
	}
	snippet := stringField(meta, "icon")
	return snippet, ExtractIconSrc(snippet)
}

// fillMetadata copies keys of src that dst lacks.
func fillMetadata(dst, src map[string]any) {
	for k, v := range src {
		if _, ok := dst[k]; !ok {
			dst[k] = v
		}
	}
}

func newSnapshot() *models.Snapshot {
	return &models.Snapshot{
		Categories:                   []models.Category{},
		CategoryIcons:                map[string]string{},
		CategoryIconPaths:            map[string]string{},
		CategoryIconPathsByKey:       map[string]string{},
		CategoryMarkers:              map[string]string{},
		CategoryKeys:                 map[string]string{},
		CategoryLabels:               map[string]string{},
		CategoryIDs:                  map[string]int64{},
		CategoryShapes:               map[string]any{},
		SubcategoryIcons:             map[string]string{},
		SubcategoryIconPaths:         map[string]string{},
		SubcategoryIconPathsByKey:    map[string]string{},
		SubcategoryMarkers:           map[string]string{},
		SubcategoryMarkerIDs:         map[string]string{},
		SubcategoryKeys:              map[string]string{},
		SubcategoryLabels:            map[string]string{},
		SubcategoryIDs:               map[string]int64{},
		SubcategoryFieldTypeIDs:      map[string][]int64{},
		SubcategoryFieldTypeIDsByKey: map[string][]int64{},
		SubcategoryFields:            map[string][]models.FieldDefinition{},
		SubcategoryFieldsByKey:       map[string][]models.FieldDefinition{},
		FieldTypes:                   []models.FieldType{},
		IconLibrary:                  []string{},
		VersionPriceCurrencies:       []string{},
		Warnings:                     []string{},
	}
}
