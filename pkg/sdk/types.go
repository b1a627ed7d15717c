package docdex

// Kind is the category of a documented entity.
type Kind string

// Kind constants.
const (
	KindType           Kind = "type"
	KindInstanceMethod Kind = "instance_method"
	KindClassMethod    Kind = "class_method"
	KindMacro          Kind = "macro"
	KindConstructor    Kind = "constructor"
	KindConstant       Kind = "constant"
)

// Field names the entity attribute a query term matched.
type Field string

// Field constants.
const (
	FieldName Field = "name"
	FieldDoc  Field = "doc"
	FieldArgs Field = "args"
	FieldType Field = "type"
)

// Result is one ranked match.
type Result struct {
	Kind     Kind
	ID       string
	Name     string
	FullName string
	Type     string // owning type; empty for types
	TypeKind string // class, module, struct...; types only
	Href     string // relative to the docs root
	Summary  string // HTML
	Args     string
	Value    string // constants only

	MatchedTerms  []string
	MatchedFields []Field
}

// SearchResults is a ranked, capped result page.
type SearchResults struct {
	Query  string
	Terms  []string
	Items  []Result
	Total  int // matches before the cap
	Cached bool
}

// IndexStats describes the loaded index.
type IndexStats struct {
	Root         string
	Digest       string
	Types        int
	Methods      int
	Macros       int
	Constructors int
	Constants    int
}
