package search

import (
	"github.com/kailas-cloud/docdex/internal/domain/doctree"
	"github.com/kailas-cloud/docdex/internal/domain/search/kind"
	"github.com/kailas-cloud/docdex/internal/domain/search/query"
	"github.com/kailas-cloud/docdex/internal/domain/search/result"
)

// RunQuery walks the type tree depth-first and returns one record per
// matching entity, in traversal order. The tree is never modified.
//
// Per type the order is: the type itself, instance methods, class methods,
// constructors, macros, constants, then nested types.
func RunQuery(root *doctree.Type, q *query.Query) []result.Result {
	if root == nil || q.IsEmpty() {
		return nil
	}
	return searchType(root, q, nil)
}

func searchType(t *doctree.Type, q *query.Query, out []result.Result) []result.Result {
	r := result.Result{
		Kind:     kind.Type,
		ID:       t.ID,
		Name:     t.ShortName(),
		FullName: t.FullName,
		TypeKind: t.Kind,
		Href:     t.Path,
		Summary:  t.Summary,
	}
	r.AddMatch(result.FieldName, q.Matches(r.Name))
	r.AddMatch(result.FieldName, q.MatchesNamespace(t.FullName))
	r.AddMatch(result.FieldDoc, q.Matches(t.Doc))
	if r.HasMatches() {
		out = append(out, r)
	}

	out = searchMethods(t, t.InstanceMethods, kind.InstanceMethod, q, out)
	out = searchMethods(t, t.ClassMethods, kind.ClassMethod, q, out)
	out = searchMethods(t, t.Constructors, kind.Constructor, q, out)
	out = searchMethods(t, t.Macros, kind.Macro, q, out)

	for i := range t.Constants {
		out = searchConstant(t, &t.Constants[i], q, out)
	}
	for i := range t.Types {
		out = searchType(&t.Types[i], q, out)
	}
	return out
}

func searchMethods(
	owner *doctree.Type, methods []doctree.Method, k kind.Kind,
	q *query.Query, out []result.Result,
) []result.Result {
	for i := range methods {
		m := &methods[i]
		r := result.Result{
			Kind:       k,
			ID:         m.ID,
			Name:       m.Name,
			FullName:   owner.FullName + k.Prefix() + m.Name,
			Type:       owner.FullName,
			Href:       owner.Path + "#" + m.ID,
			Summary:    m.Summary,
			ArgsString: m.ArgsString,
		}
		r.AddMatch(result.FieldName, q.MatchesMethod(m.Name, k, owner.FullName))
		for _, arg := range m.Args {
			r.AddMatch(result.FieldArgs, q.Matches(arg.ExternalName))
		}
		// Methods match against the owner's doc, not their own.
		r.AddMatch(result.FieldDoc, q.Matches(owner.Doc))
		if !r.HasMatches() {
			continue
		}
		// A method hit also credits terms that name its owner.
		r.AddMatch(result.FieldType, q.Matches(owner.FullName))
		out = append(out, r)
	}
	return out
}

func searchConstant(
	owner *doctree.Type, c *doctree.Constant, q *query.Query, out []result.Result,
) []result.Result {
	r := result.Result{
		Kind:     kind.Constant,
		ID:       c.ID,
		Name:     c.Name,
		FullName: owner.FullName + doctree.NamespaceSeparator + c.Name,
		Type:     owner.FullName,
		Href:     owner.Path + "#" + c.ID,
		Summary:  c.Summary,
		Value:    c.Value,
	}
	r.AddMatch(result.FieldName, q.Matches(c.Name))
	r.AddMatch(result.FieldDoc, q.Matches(c.Doc))
	if !r.HasMatches() {
		return out
	}
	r.AddMatch(result.FieldType, q.Matches(owner.FullName))
	return append(out, r)
}
