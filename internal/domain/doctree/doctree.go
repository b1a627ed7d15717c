// Package doctree holds the documentation tree decoded from a search index.
//
// The tree is read-only once decoded: the search engine walks it and builds
// fresh result records, it never writes back into it.
package doctree

import "strings"

// NamespaceSeparator separates segments of a fully-qualified type name.
const NamespaceSeparator = "::"

// Program is the root object of an index file.
type Program struct {
	Root Type `json:"program"`

	// Digest identifies the index content. Set by the loader, not part of the file.
	Digest string `json:"-"`
}

// Type is a documented type (class, module, struct, alias, enum, ...).
type Type struct {
	ID              string     `json:"id"`
	FullName        string     `json:"full_name"`
	Kind            string     `json:"kind"`
	Doc             string     `json:"doc"`
	Summary         string     `json:"summary"`
	Path            string     `json:"path"`
	InstanceMethods []Method   `json:"instance_methods"`
	ClassMethods    []Method   `json:"class_methods"`
	Constructors    []Method   `json:"constructors"`
	Macros          []Method   `json:"macros"`
	Constants       []Constant `json:"constants"`
	Types           []Type     `json:"types"`
}

// Method is a method, macro or constructor.
type Method struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Args       []Arg  `json:"args"`
	ArgsString string `json:"args_string"`
	Summary    string `json:"summary"`
	Doc        string `json:"doc"`
}

// Arg is a single method argument.
type Arg struct {
	ExternalName string `json:"external_name"`
}

// Constant is a documented constant.
type Constant struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Value   string `json:"value"`
	Summary string `json:"summary"`
	Doc     string `json:"doc"`
}

// ShortName returns the name after the last namespace separator.
// A leading separator is not treated as a namespace boundary.
func (t *Type) ShortName() string {
	name := t.FullName
	if i := strings.LastIndex(name, NamespaceSeparator); i > 0 {
		return name[i+len(NamespaceSeparator):]
	}
	return name
}

// Stats counts the entities of a tree.
type Stats struct {
	Types        int `json:"types"`
	Methods      int `json:"methods"`
	Macros       int `json:"macros"`
	Constructors int `json:"constructors"`
	Constants    int `json:"constants"`
}

// Count walks t and its descendants.
func (t *Type) Count() Stats {
	s := Stats{
		Types:        1,
		Methods:      len(t.InstanceMethods) + len(t.ClassMethods),
		Macros:       len(t.Macros),
		Constructors: len(t.Constructors),
		Constants:    len(t.Constants),
	}
	for i := range t.Types {
		sub := t.Types[i].Count()
		s.Types += sub.Types
		s.Methods += sub.Methods
		s.Macros += sub.Macros
		s.Constructors += sub.Constructors
		s.Constants += sub.Constants
	}
	return s
}
