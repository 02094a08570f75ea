// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package snapshot

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/funmapco/funmap/models"
)

var itemPattern = regexp.MustCompile(`(?i)^(.*?)\s*\[(field|fieldset)=(\d+)\]\s*$`)

// ParseItem parses one field type item such as "Ticket price [field=12]".
// Text without a bracket annotation becomes a raw item. Blank input
// reports false.
func ParseItem(raw string) (models.FieldTypeItem, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return models.FieldTypeItem{}, false
	}

	m := itemPattern.FindStringSubmatch(s)
	if m == nil {
		return models.FieldTypeItem{Kind: models.ItemRaw, Label: s}, true
	}
	id, err := strconv.ParseInt(m[3], 10, 64)
	if err != nil {
		return models.FieldTypeItem{Kind: models.ItemRaw, Label: s}, true
	}

	kind := models.ItemField
	if strings.EqualFold(m[2], models.ItemFieldset) {
		kind = models.ItemFieldset
	}
	return models.FieldTypeItem{Kind: kind, RefID: &id, Label: strings.TrimSpace(m[1])}, true
}

// ParseIDList parses "1,2", "[1, 2 3]" and similar into ids. Tokens that
// are not non-negative integers are dropped with a warning. Duplicates are
// removed keeping the first occurrence.
func ParseIDList(value string, w *Warnings) []int64 {
	s := strings.TrimSpace(value)
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(s, "["), "]"))
	if s == "" {
		return []int64{}
	}

	tokens := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})

	ids := make([]int64, 0, len(tokens))
	seen := make(map[int64]struct{}, len(tokens))
	for _, tok := range tokens {
		tok = strings.Trim(tok, `"'`)
		if tok == "" {
			continue
		}
		id, err := strconv.ParseInt(tok, 10, 64)
		if err != nil || id < 0 {
			w.Add("ignoring non-numeric id %q", tok)
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

// idsFromAny reads an id list out of decoded JSON: an array of numbers or
// numeric strings, or a string in any form ParseIDList accepts.
func idsFromAny(v any, w *Warnings) []int64 {
	switch t := v.(type) {
	case string:
		return ParseIDList(t, w)
	case []any:
		parts := make([]string, 0, len(t))
		for _, e := range t {
			if s := scalarString(e); s != "" {
				parts = append(parts, s)
			}
		}
		return ParseIDList(strings.Join(parts, ","), w)
	}
	return []int64{}
}

// ParseOptions decodes a field's option list from a JSON array or a comma
// separated string. Object entries contribute their label, value or name.
func ParseOptions(raw string) []string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return []string{}
	}
	if strings.HasPrefix(s, "[") {
		var decoded []any
		if err := json.Unmarshal([]byte(s), &decoded); err == nil {
			return optionsFromAny(decoded)
		}
	}

	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func optionsFromAny(v any) []string {
	switch t := v.(type) {
	case string:
		return ParseOptions(t)
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			var candidate string
			if obj, ok := e.(map[string]any); ok {
				for _, k := range []string{"label", "value", "name"} {
					if candidate = stringField(obj, k); candidate != "" {
						break
					}
				}
			} else {
				candidate = scalarString(e)
			}
			if candidate != "" {
				out = append(out, candidate)
			}
		}
		return out
	}
	return []string{}
}

// decodeMetadata decodes a metadata column. Blank or invalid JSON yields
// an empty map; invalid JSON is also reported.
func decodeMetadata(raw, owner string, w *Warnings) map[string]any {
	meta := map[string]any{}
	s := strings.TrimSpace(raw)
	if s == "" {
		return meta
	}
	if err := json.Unmarshal([]byte(s), &meta); err != nil {
		w.Add("invalid metadata JSON for %s", owner)
		return map[string]any{}
	}
	if meta == nil {
		meta = map[string]any{}
	}
	return meta
}

// stringField returns obj[key] trimmed when it is a string or a number.
func stringField(obj map[string]any, key string) string {
	if obj == nil {
		return ""
	}
	return scalarString(obj[key])
}

func scalarString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	}
	return ""
}

func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "1", "true", "yes", "y", "on":
			return true
		}
	}
	return false
}
