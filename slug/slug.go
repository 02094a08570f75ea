// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package slug

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Slugify lowercases value, strips diacritics, and collapses every run of
// non-alphanumeric characters into a single hyphen. The result never starts
// or ends with a hyphen and may be empty.
func Slugify(value string) string {
	v := strings.TrimSpace(value)
	if v == "" {
		return ""
	}

	// Transformers carry state, so build one per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if stripped, _, err := transform.String(t, v); err == nil {
		v = stripped
	}
	v = strings.ToLower(v)

	var b strings.Builder
	b.Grow(len(v))
	pendingDash := false
	for _, r := range v {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}
	return b.String()
}

// Fallback derives a stable key for a value that slugifies to nothing,
// e.g. a name written entirely in a non-Latin script.
func Fallback(prefix, value string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(value)))
	return prefix + "-" + hex.EncodeToString(sum[:4])
}

// Key returns Slugify(value), or Fallback(prefix, value) when that is empty.
func Key(value, prefix string) string {
	if k := Slugify(value); k != "" {
		return k
	}
	return Fallback(prefix, value)
}

// Humanize turns a machine key such as "ticket_price" into "Ticket Price".
func Humanize(value string) string {
	v := strings.NewReplacer("_", " ", "-", " ").Replace(value)
	v = strings.Join(strings.Fields(v), " ")
	if v == "" {
		return ""
	}
	return cases.Title(language.Und, cases.NoLower).String(v)
}
