// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package slug derives URL-safe keys and display labels from free text.

	slug.Slugify("Café Bar!")        // "cafe-bar"
	slug.Key("!!!", "category")      // "category-<8 hex chars>"
	slug.Humanize("opening_hours")   // "Opening Hours"

Keys are lowercase ASCII letters, digits, and single hyphens. Diacritics
are removed by NFD decomposition; any other character becomes a separator.
*/
package slug
