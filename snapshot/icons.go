// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package snapshot

import (
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/spf13/afero"
)

// IconDir is the canonical icon directory. Every library path is
// normalized into it.
const IconDir = "assets/icons-30"

const maxIconPathLen = 255

var (
	srcDoubleQuoted = regexp.MustCompile(`(?i)src\s*=\s*"([^"]+)"`)
	srcSingleQuoted = regexp.MustCompile(`(?i)src\s*=\s*'([^']+)'`)
	slashRun        = regexp.MustCompile(`/+`)
	iconSizeDir     = regexp.MustCompile(`(?i)^assets/icons-\d+/`)
	iconSizeSuffix  = regexp.MustCompile(`(?i)-(\d{2,3})(\.[a-z0-9]+)$`)

	iconExtensions = map[string]bool{
		".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
		".svg": true, ".webp": true, ".avif": true,
	}
)

// ExtractIconSrc returns the src attribute of an <img> snippet, or "".
func ExtractIconSrc(html string) string {
	s := strings.TrimSpace(html)
	if s == "" {
		return ""
	}
	if m := srcDoubleQuoted.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := srcSingleQuoted.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// SanitizeIconPath accepts only relative paths under assets/icons-*. It
// normalizes separators and rejects anything containing "..".
func SanitizeIconPath(value string) string {
	p := strings.TrimSpace(value)
	if p == "" {
		return ""
	}
	p = strings.ReplaceAll(p, `\`, "/")
	p = slashRun.ReplaceAllString(p, "/")
	p = strings.TrimLeft(p, "/")
	if p == "" || strings.Contains(p, "..") {
		return ""
	}
	if !strings.HasPrefix(strings.ToLower(p), "assets/icons-") {
		return ""
	}
	return truncate(p, maxIconPathLen)
}

// NormalizeIconPath rewrites a sanitized path into IconDir with a -30 size
// suffix, so "assets/icons-20/bar-20.png" becomes "assets/icons-30/bar-30.png".
func NormalizeIconPath(sanitized string) string {
	if sanitized == "" {
		return ""
	}
	p := iconSizeDir.ReplaceAllString(sanitized, IconDir+"/")
	p = iconSizeSuffix.ReplaceAllString(p, "-30$2")
	return truncate(p, maxIconPathLen)
}

// LibraryPath is the icon library form of a path, or "" when the path is
// not an icon path.
func LibraryPath(value string) string {
	s := SanitizeIconPath(value)
	if s == "" {
		return ""
	}
	if n := NormalizeIconPath(s); n != "" {
		return n
	}
	return s
}

// DiscoverIcons walks dir on fsys and returns the library path of every
// image file below it, sorted. A missing dir is not an error.
func DiscoverIcons(fsys afero.Fs, dir string) ([]string, error) {
	dir = strings.Trim(filepath.ToSlash(dir), "/")
	if fsys == nil || dir == "" {
		return nil, nil
	}
	ok, err := afero.DirExists(fsys, dir)
	if err != nil || !ok {
		return nil, err
	}

	seen := map[string]struct{}{}
	err = afero.Walk(fsys, dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			// Unreadable entries are skipped, not fatal.
			return nil
		}
		if info.IsDir() || !iconExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		if p := LibraryPath(filepath.ToSlash(path)); p != "" {
			seen[p] = struct{}{}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	slices.Sort(out)
	return out, nil
}

// ListFiles returns the sanitized relative path of every image file under
// folder, sorted, without size normalization.
func ListFiles(fsys afero.Fs, folder string) ([]string, error) {
	dir := SanitizeIconPath(folder)
	if fsys == nil || dir == "" {
		return []string{}, nil
	}
	dir = strings.TrimRight(dir, "/")
	ok, err := afero.DirExists(fsys, dir)
	if err != nil || !ok {
		return []string{}, err
	}

	out := []string{}
	err = afero.Walk(fsys, dir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() || !iconExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		if p := SanitizeIconPath(filepath.ToSlash(path)); p != "" {
			out = append(out, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.Sort(out)
	return out, nil
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
