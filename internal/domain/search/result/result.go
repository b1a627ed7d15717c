package result

import "github.com/kailas-cloud/docdex/internal/domain/search/kind"

// Field names an entity attribute a term matched against.
type Field string

// Matched fields.
const (
	FieldName Field = "name"
	FieldDoc  Field = "doc"
	FieldArgs Field = "args"
	FieldType Field = "type"
)

// Result is a single match record.
type Result struct {
	Kind kind.Kind `json:"result_type"`
	ID   string    `json:"id"`
	// Name is the display name: short type name, method or constant name.
	Name     string `json:"name"`
	FullName string `json:"full_name"`
	// Type is the owning type's full name. Empty for type records.
	Type       string `json:"type,omitempty"`
	TypeKind   string `json:"kind,omitempty"`
	Href       string `json:"href"`
	Summary    string `json:"summary,omitempty"`
	ArgsString string `json:"args_string,omitempty"`
	Value      string `json:"value,omitempty"`

	MatchedTerms  []string `json:"matched_terms"`
	MatchedFields []Field  `json:"matched_fields"`
}

// AddMatch records terms matched against field. Terms keep duplicates,
// fields are kept as an ordered set.
func (r *Result) AddMatch(field Field, terms []string) {
	if len(terms) == 0 {
		return
	}
	r.MatchedTerms = append(r.MatchedTerms, terms...)
	if !r.HasField(field) {
		r.MatchedFields = append(r.MatchedFields, field)
	}
}

// HasMatches reports whether any term matched any field.
func (r *Result) HasMatches() bool {
	return len(r.MatchedTerms) > 0 && len(r.MatchedFields) > 0
}

// HasField reports whether field was matched.
func (r *Result) HasField(field Field) bool {
	for _, f := range r.MatchedFields {
		if f == field {
			return true
		}
	}
	return false
}

// OnlyDocs reports whether doc is the only matched field.
func (r *Result) OnlyDocs() bool {
	return len(r.MatchedFields) == 1 && r.MatchedFields[0] == FieldDoc
}

// UniqueTermCount returns the number of distinct matched terms.
func (r *Result) UniqueTermCount() int {
	seen := make(map[string]struct{}, len(r.MatchedTerms))
	for _, t := range r.MatchedTerms {
		seen[t] = struct{}{}
	}
	return len(seen)
}

// DisplayName returns the kind-prefixed name searched for name terms:
// "#name", ".name", or the full name for types.
func (r *Result) DisplayName() string {
	if r.Kind == kind.Type {
		return r.FullName
	}
	return r.Kind.Prefix() + r.Name
}

// Page is a ranked result list after the display cap.
type Page struct {
	Items []Result `json:"items"`
	// Total is the ranked result count before the cap was applied.
	Total int `json:"total"`
}
