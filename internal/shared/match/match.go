// Package match holds the predicate helpers shared by the in-memory
// repositories and the relationship resolver.
package match

import "strings"

// Fold reports whether sub occurs anywhere in s, case-insensitively.
// An empty sub matches everything.
func Fold(s, sub string) bool {
	if sub == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// ContainsString reports whether values contains v.
func ContainsString(values []string, v string) bool {
	for _, existing := range values {
		if existing == v {
			return true
		}
	}
	return false
}

// HasAll reports whether every element of want is present in have
// (ALL semantics; an empty want matches everything).
func HasAll(have, want []string) bool {
	for _, w := range want {
		if !ContainsString(have, w) {
			return false
		}
	}
	return true
}

// Intersects reports whether the two slices share at least one element.
func Intersects(a, b []string) bool {
	for _, v := range a {
		if ContainsString(b, v) {
			return true
		}
	}
	return false
}

// Intersect returns the elements of a also present in b, preserving a's
// order. A nil a means "unconstrained" and returns b unchanged.
func Intersect(a, b []string) []string {
	if a == nil {
		return b
	}
	out := make([]string, 0, len(a))
	for _, v := range a {
		if ContainsString(b, v) {
			out = append(out, v)
		}
	}
	return out
}

// Dedupe removes duplicates preserving first-seen order.
func Dedupe(values []string) []string {
	if len(values) <= 1 {
		return append([]string(nil), values...)
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
