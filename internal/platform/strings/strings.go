// Package strings provides string helpers shared across services
package strings

import (
	std "strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// IfEmpty returns def if in is empty, otherwise returns in
func IfEmpty[T any](in []T, def []T) []T {
	if len(in) == 0 {
		return def
	}
	return in
}

// MustString returns s if it has non whitespace content otherwise panics
// name is used in the panic message so you can tell what was missing
func MustString(s string, name string) string {
	if std.TrimSpace(s) == "" {
		panic(name + " is required")
	}
	return s
}

// MustPrefix normalizes and asserts a root path like /lookup or /meta
// ensures a single leading slash and no trailing slash except for the root itself
// panics if the input is empty after trimming
func MustPrefix(s string) string {
	s = std.TrimSpace(s)
	s = "/" + std.Trim(s, " /")
	if s == "/" {
		panic("root path is required")
	}
	return s
}

// Ptr returns a pointer to s, or nil if s is empty
func Ptr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Deref returns "" if ps is nil, else *ps.
func Deref(ps *string) string {
	if ps == nil {
		return ""
	}
	return *ps
}

// foldChain strips diacritics: decompose, drop combining marks, recompose.
// Spanish planning vocabulary is full of accents and upstream payloads are
// inconsistent about them, so all domain matching goes through Fold
var foldChain = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold lowercases s, strips diacritics, and trims surrounding space.
// "Clasificación" and "CLASIFICACION  " both fold to "clasificacion"
func Fold(s string) string {
	out, _, err := transform.String(foldChain, s)
	if err != nil {
		out = s
	}
	return std.ToLower(std.TrimSpace(out))
}

// FoldContains reports whether the folded form of s contains the folded form of sub
func FoldContains(s, sub string) bool {
	return std.Contains(Fold(s), Fold(sub))
}

// FoldEqual reports whether s and t fold to the same string
func FoldEqual(s, t string) bool { return Fold(s) == Fold(t) }
