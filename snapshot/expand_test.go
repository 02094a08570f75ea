// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package snapshot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funmapco/funmap/models"
)

func i64(v int64) *int64 { return &v }

// eventCatalog has field type 1 = [field=5] + [fieldset=7], fieldset 7 = fields 8, 9.
func eventCatalog() *models.Catalog {
	return &models.Catalog{
		FieldTypes: []models.FieldTypeRow{
			{ID: 1, Key: "event_details", Name: "Event details", Items: []string{"Event name [field=5]", "Venue [fieldset=7]"}},
			{ID: 2, Key: "description", Name: "Description", Items: []string{"description"}},
			{ID: 3, Key: "broken", Items: []string{"Gone [field=404]", "Missing set [fieldset=405]"}},
		},
		Fields: []models.FieldRow{
			{ID: 5, Key: "title", Type: "text", Required: true, Placeholder: "Stored title"},
			{ID: 8, Key: "address", Name: "Street address", Type: "location"},
			{ID: 9, Key: "venue_name", Type: "text"},
			{ID: 10, Key: "description", Type: "textarea"},
		},
		Fieldsets: []models.FieldsetRow{
			{ID: 7, Key: "venue", Name: "Venue", FieldIDs: "8,9"},
		},
	}
}

func TestExpandFieldAndFieldset(t *testing.T) {
	e := NewExpander(eventCatalog(), NewWarnings(nil))
	results := e.Expand([]int64{1}, nil)

	require.Len(t, results, 3)
	for _, r := range results {
		assert.False(t, r.Skipped())
	}

	title := results[0].Field
	assert.Equal(t, "title", title.Key)
	assert.Equal(t, "Event Name", title.Label)
	assert.True(t, title.Required)
	assert.Equal(t, "Stored title", title.Placeholder)
	assert.Equal(t, int64(1), *title.FieldTypeID)
	assert.Nil(t, title.FieldsetID)

	addr := results[1].Field
	assert.Equal(t, "address", addr.Key)
	assert.Equal(t, "Venue", addr.Label)
	assert.Equal(t, int64(7), *addr.FieldsetID)
	assert.Equal(t, "venue", addr.FieldsetKey)
	assert.Equal(t, "Venue", addr.FieldsetLabel)
	require.NotNil(t, addr.Location)

	venue := results[2].Field
	assert.Equal(t, "venue_name", venue.Key)
	assert.Equal(t, "Venue", venue.Label)
	assert.Equal(t, int64(7), *venue.FieldsetID)
}

func TestExpandLabelPrecedence(t *testing.T) {
	cat := eventCatalog()
	cat.FieldTypes = append(cat.FieldTypes,
		models.FieldTypeRow{ID: 4, Key: "venue_block", Name: "Where it happens", Items: []string{"[fieldset=7]"}},
		models.FieldTypeRow{ID: 5, Items: []string{"[fieldset=7]", "[field=9]"}},
	)
	e := NewExpander(cat, NewWarnings(nil))

	named := e.Expand([]int64{4}, nil)
	require.Len(t, named, 2)
	assert.Equal(t, "Where It Happens", named[0].Field.Label, "no item label: field type name")
	assert.Equal(t, "Where It Happens", named[1].Field.Label)
	assert.Equal(t, "Venue", named[0].Field.FieldsetLabel, "fieldset label falls back to the fieldset name")

	bare := e.Expand([]int64{5}, nil)
	require.Len(t, bare, 3)
	assert.Equal(t, "Address", bare[0].Field.Label, "no item label or type name: field key")
	assert.Equal(t, "Venue Name", bare[1].Field.Label)
	assert.Equal(t, "Venue Name", bare[2].Field.Label)
}

func TestExpandSkipsMissingReferences(t *testing.T) {
	e := NewExpander(eventCatalog(), NewWarnings(nil))
	results := e.Expand([]int64{99, 3}, nil)

	require.Len(t, results, 3)
	assert.Equal(t, SkipMissingFieldType, results[0].Skip)
	assert.Equal(t, SkipMissingField, results[1].Skip)
	assert.Equal(t, SkipMissingFieldset, results[2].Skip)
}

func TestExpandRawItemMatchesFieldKey(t *testing.T) {
	e := NewExpander(eventCatalog(), NewWarnings(nil))
	results := e.Expand([]int64{2}, nil)

	require.Len(t, results, 1)
	assert.Equal(t, "description", results[0].Field.Key)
	assert.Equal(t, "textarea", results[0].Field.Type)
	assert.Equal(t, "Description", results[0].Field.Label, "raw item label falls back to the field type name")
}

func TestPlaceholderPrecedence(t *testing.T) {
	e := NewExpander(eventCatalog(), NewWarnings(nil))

	hints := HintsFromMetadata(map[string]any{
		"placeholders": map[string]any{"venue": "Where is it?", "title": "Name your event"},
	})
	results := e.Expand([]int64{1}, hints)
	require.Len(t, results, 3)
	assert.Equal(t, "Name your event", results[0].Field.Placeholder)
	assert.Equal(t, "Where is it?", results[1].Field.Placeholder)

	hints = HintsFromMetadata(map[string]any{
		"placeholders": map[string]any{"event_details": "From the field type", "title": "From the field"},
	})
	results = e.Expand([]int64{1}, hints)
	assert.Equal(t, "From the field type", results[0].Field.Placeholder)
}

func TestFieldsFallsBackToMetadata(t *testing.T) {
	w := NewWarnings(nil)
	e := NewExpander(eventCatalog(), w)
	meta := map[string]any{
		"fields": []any{
			map[string]any{"type": "text", "name": "Title", "placeholder": "Inline", "required": true},
			map[string]any{"type": "location"},
			map[string]any{"name": "no type"},
		},
	}

	fields := e.Fields("Concerts", []int64{404}, meta)
	require.Len(t, fields, 2)
	assert.Equal(t, "Title", fields[0].Label)
	assert.Equal(t, "Inline", fields[0].Placeholder)
	assert.True(t, fields[0].Required)
	assert.Equal(t, "Location", fields[1].Label)
	assert.NotNil(t, fields[1].Location)

	assert.Equal(t, []string{`subcategory "Concerts": missing field type: field type 404`}, w.List())
}

func TestFieldTypesOrder(t *testing.T) {
	cat := &models.Catalog{FieldTypes: []models.FieldTypeRow{
		{ID: 1, Name: "zeta"},
		{ID: 2, Name: "Alpha"},
		{ID: 3, Name: "last", SortOrder: i64(1)},
	}}
	got := NewExpander(cat, nil).FieldTypes()
	require.Len(t, got, 3)
	assert.Equal(t, []string{"last", "Alpha", "zeta"}, []string{got[0].Name, got[1].Name, got[2].Name})
	assert.Equal(t, "alpha", got[1].Key)
}

func TestExpandPlaceholderHintTables(t *testing.T) {
	cat := eventCatalog()
	cat.PlaceholderHints = []models.PlaceholderHintRow{
		{Group: models.HintGroupField, Key: "title", Text: "From hint table"},
		{Group: models.HintGroupField, Key: "title", Text: "second row loses"},
		{Group: models.HintGroupFieldset, Key: "venue", Text: "Where is it?"},
	}
	e := NewExpander(cat, NewWarnings(nil))

	results := e.Expand([]int64{1}, nil)
	require.Len(t, results, 3)
	assert.Equal(t, "From hint table", results[0].Field.Placeholder, "hint table beats the field's stored placeholder")
	assert.Equal(t, "Where is it?", results[1].Field.Placeholder)
	assert.Equal(t, "Where is it?", results[2].Field.Placeholder)

	withMeta := e.Expand([]int64{1}, Hints{"title": "From metadata"})
	assert.Equal(t, "From metadata", withMeta[0].Field.Placeholder, "subcategory metadata beats hint tables")
	assert.Equal(t, "Where is it?", withMeta[1].Field.Placeholder)
}

func TestExpandPlaceholderHintTablesByType(t *testing.T) {
	cat := eventCatalog()
	cat.PlaceholderHints = []models.PlaceholderHintRow{
		{Group: models.HintGroupGeneral, Key: "event details", Text: "Tell us about the event"},
		{Group: models.HintGroupField, Key: "title", Text: "field hint"},
	}
	e := NewExpander(cat, NewWarnings(nil))

	results := e.Expand([]int64{1}, nil)
	require.Len(t, results, 3)
	for _, r := range results {
		assert.Equal(t, "Tell us about the event", r.Field.Placeholder, "type name hints come before field hints")
	}
}
