// Package query parses raw search input into normalized terms and matches
// them against documentation fields.
//
// A term may carry a modifier prefix:
//
//	#name    matches instance methods only
//	.name    matches class methods, macros and constructors only
//	:name    matches at a namespace segment boundary
//	Type#m   matches method m on owners whose full name contains "type"
//
// Matching is exact, case-insensitive substring containment.
package query

import (
	"regexp"
	"strings"

	"github.com/kailas-cloud/docdex/internal/domain/search/kind"
)

// MaxLength is the maximum accepted raw query length in bytes.
const MaxLength = 4096

// Query is an immutable parsed search query.
type Query struct {
	original   string
	terms      []string
	normalized []string
	highlight  *regexp.Regexp
}

// New splits raw on whitespace and normalizes the terms.
// Terms consisting only of a modifier are dropped.
func New(raw string) Query {
	q := Query{original: raw}
	for _, word := range strings.Fields(raw) {
		if StripModifier(word) == "" {
			continue
		}
		q.terms = append(q.terms, word)
		q.normalized = append(q.normalized, normalize(word))
	}
	q.highlight = compileHighlight(q.normalized)
	return q
}

// Original returns the raw query string.
func (q *Query) Original() string { return q.original }

// Terms returns the kept terms as typed.
func (q *Query) Terms() []string { return q.terms }

// Normalized returns the lowercase terms, parallel to Terms.
func (q *Query) Normalized() []string { return q.normalized }

// IsEmpty reports whether the query has no terms.
func (q *Query) IsEmpty() bool { return len(q.normalized) == 0 }

// StripModifier removes a single leading '#', '.' or ':'.
func StripModifier(term string) string {
	if term == "" {
		return term
	}
	switch term[0] {
	case '#', '.', ':':
		return term[1:]
	}
	return term
}

// TrimColons removes one leading and one trailing ":" or "::".
func TrimColons(term string) string {
	switch {
	case strings.HasPrefix(term, "::"):
		term = term[2:]
	case strings.HasPrefix(term, ":"):
		term = term[1:]
	}
	switch {
	case strings.HasSuffix(term, "::"):
		term = term[:len(term)-2]
	case strings.HasSuffix(term, ":"):
		term = term[:len(term)-1]
	}
	return term
}

func normalize(s string) string {
	return strings.ToLower(s)
}

// runMatcher applies match to every normalized term and collects the hits.
func (q *Query) runMatcher(field string, match func(value, term string) bool) []string {
	if field == "" {
		return nil
	}
	value := normalize(field)

	var hits []string
	for _, term := range q.normalized {
		if match(value, term) {
			hits = append(hits, term)
		}
	}
	return hits
}

// Matches returns the terms contained in field. Kind-filtered terms
// ('#' or '.' prefix) never match here.
func (q *Query) Matches(field string) []string {
	return q.runMatcher(field, func(value, term string) bool {
		if term[0] == '#' || term[0] == '.' {
			return false
		}
		return strings.Contains(value, term)
	})
}

// MatchesNamespace returns the terms containing ':' that occur in fullName
// aligned to a namespace segment boundary.
func (q *Query) MatchesNamespace(fullName string) []string {
	return q.runMatcher(fullName, namespaceMatch)
}

// MatchesMethod returns the terms matching a method-like entity called name
// of kind k, owned by the type named ownerFullName.
func (q *Query) MatchesMethod(name string, k kind.Kind, ownerFullName string) []string {
	owner := normalize(ownerFullName)

	return q.runMatcher(name, func(value, term string) bool {
		sep := strings.IndexByte(term, '#')
		if sep >= 0 {
			if k != kind.InstanceMethod {
				return false
			}
		} else {
			sep = strings.IndexByte(term, '.')
			if sep >= 0 {
				if !k.IsTypeLevel() {
					return false
				}
			} else if namespaceMatch(owner, term) {
				return true
			}
		}

		methodName := term
		if sep >= 0 {
			qualifier := term[:sep]
			methodName = term[sep+1:]
			if qualifier != "" && !strings.Contains(owner, qualifier) {
				return false
			}
		}
		return strings.Contains(value, methodName)
	})
}

// namespaceMatch reports whether term (which must contain ':') occurs in
// value at index 0 or right after a ':'.
func namespaceMatch(value, term string) bool {
	if !strings.Contains(term, ":") {
		return false
	}
	term = TrimColons(term)
	if term == "" {
		return false
	}

	from := 0
	for {
		i := strings.Index(value[from:], term)
		if i < 0 {
			return false
		}
		i += from
		if i == 0 || value[i-1] == ':' {
			return true
		}
		from = i + 1
	}
}
