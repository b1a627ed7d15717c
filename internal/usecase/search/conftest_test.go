package search

import (
	"fmt"

	"github.com/kailas-cloud/docdex/internal/domain/doctree"
	"github.com/kailas-cloud/docdex/internal/domain/search/result"
)

type fakeIndex struct {
	program *doctree.Program
}

func (f fakeIndex) Snapshot() (*doctree.Program, bool) {
	return f.program, f.program != nil
}

// scenarioTree: Foo::Bar (doc "Bar utility") with #baz(x) and MAX = 10.
func scenarioTree() *doctree.Type {
	bar := doctree.Type{
		ID:       "Foo::Bar",
		FullName: "Foo::Bar",
		Kind:     "class",
		Doc:      "Bar utility",
		Summary:  "<p>Bar utility</p>",
		Path:     "Foo/Bar.html",
		InstanceMethods: []doctree.Method{{
			ID:         "baz(x)-instance-method",
			Name:       "baz",
			Args:       []doctree.Arg{{ExternalName: "x"}},
			ArgsString: "(x)",
		}},
		Constants: []doctree.Constant{{ID: "MAX", Name: "MAX", Value: "10"}},
	}
	foo := doctree.Type{
		ID:       "Foo",
		FullName: "Foo",
		Kind:     "module",
		Path:     "Foo.html",
		Types:    []doctree.Type{bar},
	}
	return &doctree.Type{
		ID:       "toplevel",
		FullName: "Top Level Namespace",
		Kind:     "module",
		Path:     "toplevel.html",
		Types:    []doctree.Type{foo},
	}
}

// kindsTree has to_s and new in every method-like list.
func kindsTree() *doctree.Type {
	m := func(name, suffix string) doctree.Method {
		return doctree.Method{ID: name + suffix, Name: name}
	}
	return &doctree.Type{
		ID:              "Widget",
		FullName:        "Widget",
		Kind:            "class",
		Path:            "Widget.html",
		InstanceMethods: []doctree.Method{m("to_s", "-instance-method"), m("renew", "-instance-method")},
		ClassMethods:    []doctree.Method{m("to_s", "-class-method"), m("new", "-class-method")},
		Constructors:    []doctree.Method{m("new", "-constructor")},
		Macros:          []doctree.Method{m("to_s_macro", "-macro"), m("new_macro", "-macro")},
	}
}

// bigTree has n instance methods m0..m(n-1).
func bigTree(n int) *doctree.Type {
	t := &doctree.Type{ID: "Big", FullName: "Big", Kind: "class", Path: "Big.html"}
	for i := range n {
		t.InstanceMethods = append(t.InstanceMethods, doctree.Method{
			ID:   fmt.Sprintf("m%d-instance-method", i),
			Name: fmt.Sprintf("m%d", i),
		})
	}
	return t
}

func withTerms(name string, terms ...string) result.Result {
	r := result.Result{Name: name}
	r.AddMatch(result.FieldName, terms)
	return r
}
