package search

import (
	"reflect"
	"testing"

	"github.com/kailas-cloud/docdex/internal/domain/search/kind"
	"github.com/kailas-cloud/docdex/internal/domain/search/query"
	"github.com/kailas-cloud/docdex/internal/domain/search/result"
)

func runAndRank(t *testing.T, raw string) []result.Result {
	t.Helper()
	q := query.New(raw)
	return Rank(RunQuery(scenarioTree(), &q), &q)
}

func TestScenario_Bar(t *testing.T) {
	results := runAndRank(t, "bar")
	if len(results) == 0 {
		t.Fatal("expected results")
	}
	top := results[0]
	if top.Kind != kind.Type || top.FullName != "Foo::Bar" {
		t.Fatalf("top = %s %q, want type Foo::Bar", top.Kind, top.FullName)
	}
	if !top.HasField(result.FieldName) {
		t.Errorf("expected name match, got %v", top.MatchedFields)
	}
}

func TestScenario_Baz(t *testing.T) {
	for _, raw := range []string{"baz", "#baz"} {
		t.Run(raw, func(t *testing.T) {
			results := runAndRank(t, raw)
			if len(results) != 1 {
				t.Fatalf("expected 1 result, got %d", len(results))
			}
			r := results[0]
			if r.Kind != kind.InstanceMethod || r.Name != "baz" {
				t.Errorf("got %s %q", r.Kind, r.Name)
			}
			if !reflect.DeepEqual(r.MatchedFields, []result.Field{result.FieldName}) {
				t.Errorf("MatchedFields = %v, want [name]", r.MatchedFields)
			}
			if r.FullName != "Foo::Bar#baz" {
				t.Errorf("FullName = %q", r.FullName)
			}
			if r.Href != "Foo/Bar.html#baz(x)-instance-method" {
				t.Errorf("Href = %q", r.Href)
			}
			if r.Type != "Foo::Bar" {
				t.Errorf("Type = %q", r.Type)
			}
		})
	}
}

func TestScenario_DotBaz(t *testing.T) {
	if results := runAndRank(t, ".baz"); len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestScenario_Utility(t *testing.T) {
	results := runAndRank(t, "utility")

	var found bool
	for _, r := range results {
		if r.Kind == kind.Type && r.FullName == "Foo::Bar" {
			found = true
			if !r.OnlyDocs() {
				t.Errorf("MatchedFields = %v, want [doc]", r.MatchedFields)
			}
		}
	}
	if !found {
		t.Error("expected Foo::Bar to match via doc")
	}
}

func TestRunQuery_Constant(t *testing.T) {
	results := runAndRank(t, "max")
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	r := results[0]
	if r.Kind != kind.Constant || r.Value != "10" {
		t.Errorf("got %s value %q", r.Kind, r.Value)
	}
	if r.FullName != "Foo::Bar::MAX" {
		t.Errorf("FullName = %q", r.FullName)
	}
	if r.Href != "Foo/Bar.html#MAX" {
		t.Errorf("Href = %q", r.Href)
	}
}

func TestRunQuery_TypeAugmentation(t *testing.T) {
	q := query.New("baz foo")
	results := RunQuery(scenarioTree(), &q)

	for _, r := range results {
		if r.Kind != kind.InstanceMethod {
			continue
		}
		if !r.HasField(result.FieldType) {
			t.Errorf("expected type field on method, got %v", r.MatchedFields)
		}
		if r.UniqueTermCount() != 2 {
			t.Errorf("UniqueTermCount() = %d, want 2", r.UniqueTermCount())
		}
		return
	}
	t.Fatal("method record not found")
}

func TestRunQuery_ArgsMatch(t *testing.T) {
	q := query.New("x")
	results := RunQuery(scenarioTree(), &q)

	var found bool
	for _, r := range results {
		if r.Kind == kind.InstanceMethod {
			found = true
			if !r.HasField(result.FieldArgs) {
				t.Errorf("MatchedFields = %v, want args", r.MatchedFields)
			}
		}
	}
	if !found {
		t.Error("expected baz to match by argument name")
	}
}

func TestRunQuery_EveryRecordHasMatches(t *testing.T) {
	queries := []string{"bar", "baz", "foo", "utility", "#baz", "::bar", "a", "x max", "Foo::Bar#baz"}
	for _, raw := range queries {
		q := query.New(raw)
		for _, r := range RunQuery(scenarioTree(), &q) {
			if len(r.MatchedTerms) == 0 || len(r.MatchedFields) == 0 {
				t.Errorf("query %q: record %q has empty matches", raw, r.FullName)
			}
		}
	}
}

func TestRunQuery_EmptyQuery(t *testing.T) {
	for _, raw := range []string{"", "   ", "# . :"} {
		q := query.New(raw)
		if results := RunQuery(scenarioTree(), &q); len(results) != 0 {
			t.Errorf("query %q: expected no results, got %d", raw, len(results))
		}
	}
}

func TestRunQuery_DoesNotMutateTree(t *testing.T) {
	tree := scenarioTree()
	before := scenarioTree()

	q := query.New("bar baz max")
	RunQuery(tree, &q)

	if !reflect.DeepEqual(tree, before) {
		t.Error("tree was modified by the walk")
	}
}

func TestRunQuery_KindFilters(t *testing.T) {
	count := func(results []result.Result) map[kind.Kind]int {
		m := map[kind.Kind]int{}
		for _, r := range results {
			m[r.Kind]++
		}
		return m
	}

	tests := []struct {
		raw  string
		want map[kind.Kind]int
	}{
		{"#to_s", map[kind.Kind]int{kind.InstanceMethod: 1}},
		{".new", map[kind.Kind]int{kind.ClassMethod: 1, kind.Constructor: 1, kind.Macro: 1}},
		{"to_s", map[kind.Kind]int{kind.InstanceMethod: 1, kind.ClassMethod: 1, kind.Macro: 1}},
		{"widget#to_s", map[kind.Kind]int{kind.InstanceMethod: 1}},
		{"gadget#to_s", map[kind.Kind]int{}},
		{"#new", map[kind.Kind]int{kind.InstanceMethod: 1}},
	}
	for _, tc := range tests {
		t.Run(tc.raw, func(t *testing.T) {
			q := query.New(tc.raw)
			got := count(RunQuery(kindsTree(), &q))
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("kinds = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestRunQuery_Order(t *testing.T) {
	q := query.New("to_s new")
	results := RunQuery(kindsTree(), &q)

	var got []kind.Kind
	for _, r := range results {
		got = append(got, r.Kind)
	}
	want := []kind.Kind{
		kind.InstanceMethod, kind.InstanceMethod,
		kind.ClassMethod, kind.ClassMethod,
		kind.Constructor,
		kind.Macro, kind.Macro,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}
