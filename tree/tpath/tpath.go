// Package tpath parses registry path strings into key segments.
//
// A path names a location in a registry tree by joining keys with a
// separator, "." unless configured otherwise:
//
//	Parse("a.b.c", ".")  → ["a", "b", "c"]
//	Parse("a..b", ".")   → ["a", "b"]
//	Parse(".a.b.", ".")  → ["a", "b"]
//	Parse(" a.b ", ".")  → ["a", "b"]
//
// Empty segments are dropped, so runs of separators collapse and
// leading or trailing separators are ignored. Every syntactically odd
// path therefore still names at most one location.
package tpath

import "strings"

// Default is the separator used when none is configured.
const Default = "."

// Parse splits path into its key segments. The raw path is trimmed of
// surrounding space first; an empty result returns nil. A path the
// separator never occurs in is a single segment.
func Parse(path, sep string) []string {
	if sep == "" {
		sep = Default
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}
	if !strings.Contains(path, sep) {
		return []string{path}
	}
	parts := strings.Split(path, sep)
	segs := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		segs = append(segs, p)
	}
	if len(segs) == 0 {
		return nil
	}
	return segs
}

// Join joins segments back into a path string.
//
// Examples:
//   - Join(["a", "b"], ".") → "a.b"
//   - Join(["a"], ".") → "a"
//   - Join(nil, ".") → ""
func Join(segs []string, sep string) string {
	if sep == "" {
		sep = Default
	}
	return strings.Join(segs, sep)
}

// Clean normalizes a path string: parse then re-join. Collapsed
// separators and surrounding noise disappear.
func Clean(path, sep string) string {
	return Join(Parse(path, sep), sep)
}
