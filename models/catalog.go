// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

// Raw rows, as read from a schema that varies between installs. Text
// columns that still need parsing (metadata, id lists, options) are kept
// verbatim.

type CategoryRow struct {
	ID         *int64
	Name       string
	Key        string
	Label      string
	SortOrder  *int64
	IconPath   string
	MarkerPath string
	Metadata   string
}

type SubcategoryRow struct {
	ID           *int64
	Name         string
	Key          string
	Label        string
	CategoryID   *int64
	CategoryName string
	CategoryKey  string
	SortOrder    *int64
	IconPath     string
	MarkerPath   string
	Metadata     string
	FieldTypeIDs string
}

type FieldTypeRow struct {
	ID        int64
	Key       string
	Name      string
	SortOrder *int64
	Items     []string
}

type FieldsetRow struct {
	ID       int64
	Key      string
	Name     string
	FieldIDs string
}

type FieldRow struct {
	ID          int64
	Key         string
	Name        string
	Type        string
	Required    bool
	Options     string
	Placeholder string
}

// Placeholder hint groups, named after the column a hint was keyed by.
const (
	HintGroupType     = "type"
	HintGroupField    = "field"
	HintGroupFieldset = "fieldset"
	HintGroupGeneral  = "general"
)

// PlaceholderHintRow is one key → placeholder pair from a hint table. Key
// is lower-cased.
type PlaceholderHintRow struct {
	Group string
	Key   string
	Text  string
}

// Catalog is everything the snapshot is built from.
type Catalog struct {
	Categories       []CategoryRow
	Subcategories    []SubcategoryRow
	FieldTypes       []FieldTypeRow
	Fields           []FieldRow
	Fieldsets        []FieldsetRow
	PlaceholderHints []PlaceholderHintRow
}

// Parsed definitions

type FieldTypeItem struct {
	Kind  string `json:"kind"`
	RefID *int64 `json:"id,omitempty"`
	Label string `json:"label"`
}

type FieldType struct {
	ID        int64           `json:"id"`
	Key       string          `json:"key"`
	Name      string          `json:"name"`
	SortOrder *int64          `json:"sort_order"`
	Items     []FieldTypeItem `json:"items"`
}

type Fieldset struct {
	ID       int64   `json:"id"`
	Key      string  `json:"key"`
	Name     string  `json:"name,omitempty"`
	FieldIDs []int64 `json:"field_ids"`
}

type Field struct {
	ID          int64    `json:"id"`
	Key         string   `json:"key"`
	Name        string   `json:"name,omitempty"`
	Type        string   `json:"type"`
	Required    bool     `json:"required"`
	Options     []string `json:"options"`
	Placeholder string   `json:"placeholder,omitempty"`
}

type LocationBlueprint struct {
	Address   string `json:"address"`
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}

// FieldDefinition is a UI-ready form field produced by expanding a
// subcategory's field types.
type FieldDefinition struct {
	ID            *int64             `json:"id,omitempty"`
	Key           string             `json:"key"`
	Label         string             `json:"label"`
	Type          string             `json:"type"`
	Required      bool               `json:"required"`
	Placeholder   string             `json:"placeholder"`
	Options       []string           `json:"options"`
	FieldTypeID   *int64             `json:"field_type_id,omitempty"`
	FieldTypeKey  string             `json:"field_type_key,omitempty"`
	FieldsetID    *int64             `json:"fieldset_id,omitempty"`
	FieldsetKey   string             `json:"fieldset_key,omitempty"`
	FieldsetLabel string             `json:"fieldset_label,omitempty"`
	Location      *LocationBlueprint `json:"location,omitempty"`
}

// Snapshot output

type Subcategory struct {
	ID           *int64            `json:"id"`
	Name         string            `json:"name"`
	Key          string            `json:"key"`
	Label        string            `json:"label"`
	CategoryName string            `json:"category"`
	CategoryKey  string            `json:"category_key"`
	SortOrder    *int64            `json:"sort_order"`
	Metadata     map[string]any    `json:"metadata"`
	Fields       []FieldDefinition `json:"fields"`
	FieldTypeIDs []int64           `json:"field_type_ids"`
	IconPath     string            `json:"icon_path,omitempty"`
	MarkerPath   string            `json:"mapmarker_path,omitempty"`
}

type Category struct {
	ID            *int64         `json:"id"`
	Name          string         `json:"name"`
	Key           string         `json:"key"`
	Label         string         `json:"label"`
	SortOrder     *int64         `json:"sort_order"`
	IconPath      string         `json:"icon_path,omitempty"`
	MarkerPath    string         `json:"mapmarker_path,omitempty"`
	Metadata      map[string]any `json:"metadata"`
	Subs          []string       `json:"subs"`
	Subcategories []Subcategory  `json:"subcategories"`
}

type Snapshot struct {
	Categories []Category `json:"categories"`

	CategoryIcons          map[string]string `json:"categoryIcons"`
	CategoryIconPaths      map[string]string `json:"categoryIconPaths"`
	CategoryIconPathsByKey map[string]string `json:"categoryIconPathsByKey"`
	CategoryMarkers        map[string]string `json:"categoryMarkers"`
	CategoryKeys           map[string]string `json:"categoryKeys"`
	CategoryLabels         map[string]string `json:"categoryLabels"`
	CategoryIDs            map[string]int64  `json:"categoryIds"`
	CategoryShapes         map[string]any    `json:"categoryShapes"`

	SubcategoryIcons             map[string]string            `json:"subcategoryIcons"`
	SubcategoryIconPaths         map[string]string            `json:"subcategoryIconPaths"`
	SubcategoryIconPathsByKey    map[string]string            `json:"subcategoryIconPathsByKey"`
	SubcategoryMarkers           map[string]string            `json:"subcategoryMarkers"`
	SubcategoryMarkerIDs         map[string]string            `json:"subcategoryMarkerIds"`
	SubcategoryKeys              map[string]string            `json:"subcategoryKeys"`
	SubcategoryLabels            map[string]string            `json:"subcategoryLabels"`
	SubcategoryIDs               map[string]int64             `json:"subcategoryIds"`
	SubcategoryFieldTypeIDs      map[string][]int64           `json:"subcategoryFieldTypeIds"`
	SubcategoryFieldTypeIDsByKey map[string][]int64           `json:"subcategoryFieldTypeIdsByKey"`
	SubcategoryFields            map[string][]FieldDefinition `json:"subcategoryFields"`
	SubcategoryFieldsByKey       map[string][]FieldDefinition `json:"subcategoryFieldsByKey"`

	FieldTypes             []FieldType `json:"fieldTypes"`
	IconLibrary            []string    `json:"iconLibrary"`
	VersionPriceCurrencies []string    `json:"versionPriceCurrencies"`
	Warnings               []string    `json:"warnings"`
}
