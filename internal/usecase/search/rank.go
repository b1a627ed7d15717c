package search

import (
	"sort"
	"strings"

	"github.com/kailas-cloud/docdex/internal/domain/search/kind"
	"github.com/kailas-cloud/docdex/internal/domain/search/query"
	"github.com/kailas-cloud/docdex/internal/domain/search/result"
)

// Rank sorts results in place with a stable, deterministic comparator and
// drops records that matched noticeably fewer distinct terms than the best one.
func Rank(results []result.Result, q *query.Query) []result.Result {
	nameTerms := make([]string, len(q.Normalized()))
	for i, term := range q.Normalized() {
		nameTerms[i] = query.TrimColons(term)
	}
	argTerms := q.Normalized()

	sort.SliceStable(results, func(i, j int) bool {
		return compare(&results[i], &results[j], nameTerms, argTerms) < 0
	})

	return keepTopTier(results)
}

// compare orders a before b when it returns a negative value.
func compare(a, b *result.Result, nameTerms, argTerms []string) int {
	// Types first, unless one side only matched through documentation.
	if !a.OnlyDocs() && !b.OnlyDocs() {
		aType, bType := a.Kind == kind.Type, b.Kind == kind.Type
		if aType != bType {
			if aType {
				return -1
			}
			return 1
		}
	}

	aName, bName := a.HasField(result.FieldName), b.HasField(result.FieldName)
	switch {
	case aName && !bName:
		return -1
	case bName && !aName:
		return 1
	case aName && bName:
		aDisplay := strings.ToLower(a.DisplayName())
		bDisplay := strings.ToLower(b.DisplayName())
		if c := compareTermIndexes(aDisplay, bDisplay, nameTerms); c != 0 {
			return c
		}
	}

	if c := b.UniqueTermCount() - a.UniqueTermCount(); c != 0 {
		return c
	}
	if c := len(b.MatchedFields) - len(a.MatchedFields); c != 0 {
		return c
	}

	if c := strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)); c != 0 {
		return c
	}

	if a.HasField(result.FieldArgs) && b.HasField(result.FieldArgs) {
		return compareTermIndexes(strings.ToLower(a.ArgsString), strings.ToLower(b.ArgsString), argTerms)
	}
	return 0
}

// compareTermIndexes walks terms in order; the first term found in only one
// of the strings, or at different positions, decides. Earlier wins.
func compareTermIndexes(a, b string, terms []string) int {
	for _, term := range terms {
		ai, bi := strings.Index(a, term), strings.Index(b, term)
		switch {
		case ai < 0 && bi < 0, ai == bi:
			continue
		case bi < 0:
			return -1
		case ai < 0:
			return 1
		default:
			return ai - bi
		}
	}
	return 0
}

// keepTopTier drops records whose unique term count + 1 is below the count
// of the first record.
func keepTopTier(results []result.Result) []result.Result {
	if len(results) <= 1 {
		return results
	}
	best := results[0].UniqueTermCount()

	filtered := results[:0]
	for _, r := range results {
		if r.UniqueTermCount()+1 >= best {
			filtered = append(filtered, r)
		}
	}
	return filtered
}
