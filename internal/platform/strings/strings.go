// Package strings provides string helpers shared by the catalog and CLI
package strings

import std "strings"

// IsBlank reports whether s has no non-whitespace content
func IsBlank(s string) bool { return std.TrimSpace(s) == "" }

// JoinNonEmpty joins the non-blank parts with single spaces, trimming each part.
// Used to build the combined searchable text of a record
func JoinNonEmpty(parts ...string) string {
	var b std.Builder
	for _, p := range parts {
		p = std.TrimSpace(p)
		if p == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(p)
	}
	return b.String()
}
