package docdex

import (
	"github.com/kailas-cloud/docdex/internal/domain/doctree"
	"github.com/kailas-cloud/docdex/internal/domain/search/result"
	searchuc "github.com/kailas-cloud/docdex/internal/usecase/search"
)

func resultFromDomain(r *result.Result) Result {
	fields := make([]Field, len(r.MatchedFields))
	for i, f := range r.MatchedFields {
		fields[i] = Field(f)
	}
	return Result{
		Kind:          Kind(r.Kind),
		ID:            r.ID,
		Name:          r.Name,
		FullName:      r.FullName,
		Type:          r.Type,
		TypeKind:      r.TypeKind,
		Href:          r.Href,
		Summary:       r.Summary,
		Args:          r.ArgsString,
		Value:         r.Value,
		MatchedTerms:  append([]string(nil), r.MatchedTerms...),
		MatchedFields: fields,
	}
}

func searchResultsFromOutcome(raw string, out *searchuc.Outcome) SearchResults {
	items := make([]Result, len(out.Page.Items))
	for i := range out.Page.Items {
		items[i] = resultFromDomain(&out.Page.Items[i])
	}
	terms := out.Query.Terms()
	if terms == nil {
		terms = []string{}
	}
	return SearchResults{
		Query:  raw,
		Terms:  terms,
		Items:  items,
		Total:  out.Page.Total,
		Cached: out.Cached,
	}
}

func statsFromProgram(p *doctree.Program) IndexStats {
	s := p.Root.Count()
	return IndexStats{
		Root:         p.Root.FullName,
		Digest:       p.Digest,
		Types:        s.Types,
		Methods:      s.Methods,
		Macros:       s.Macros,
		Constructors: s.Constructors,
		Constants:    s.Constants,
	}
}
