// Package vocabulary holds the static candidate lists (skills, domains)
// searched by the suggestion endpoints, and the incremental-search filter
// over them.
package vocabulary

import "strings"

// DefaultLimit caps suggestion results when the caller does not override it.
const DefaultLimit = 10

// Vocabulary is an immutable, ordered candidate list. Order is insertion
// order from the source data; duplicates are removed at construction.
type Vocabulary []string

// New builds a Vocabulary from terms, preserving first-occurrence order and
// dropping exact duplicates and empty strings.
func New(terms []string) Vocabulary {
	seen := make(map[string]struct{}, len(terms))
	v := make(Vocabulary, 0, len(terms))
	for _, t := range terms {
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		v = append(v, t)
	}
	return v
}

// Filter returns up to limit candidates whose lowercase form contains the
// lowercase query as a substring, preserving candidate order.
//
// Filter is a total function: an empty query matches every candidate (the
// empty string is a substring of everything) and the result is still capped
// at limit. Callers that want the observed "empty query shows nothing" UI
// behavior must gate on a non-empty query before calling.
func Filter(query string, candidates Vocabulary, limit int) []string {
	if limit <= 0 {
		limit = DefaultLimit
	}
	q := strings.ToLower(query)
	out := make([]string, 0, limit)
	for _, c := range candidates {
		if !strings.Contains(strings.ToLower(c), q) {
			continue
		}
		out = append(out, c)
		if len(out) == limit {
			break
		}
	}
	return out
}

// Filter searches the vocabulary itself.
func (v Vocabulary) Filter(query string, limit int) []string {
	return Filter(query, v, limit)
}

// Contains reports whether term is part of the vocabulary (exact match).
func (v Vocabulary) Contains(term string) bool {
	for _, c := range v {
		if c == term {
			return true
		}
	}
	return false
}
