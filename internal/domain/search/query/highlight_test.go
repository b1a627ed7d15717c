package query

import (
	"strings"
	"testing"
)

func TestHighlight(t *testing.T) {
	tests := []struct {
		raw, text, want string
	}{
		{"bar", "Foo::Bar", "Foo::<mark>Bar</mark>"},
		{"o", "Foo", "F<mark>o</mark><mark>o</mark>"},
		{"#to_s", "to_s", "<mark>to_s</mark>"},
		{".new", "new(x)", "<mark>new</mark>(x)"},
		{"::io", "Foo::IO", "Foo::<mark>IO</mark>"},
		{"a+b", "x a+b y", "x <mark>a+b</mark> y"},
		{"(x)", "baz(x)", "baz<mark>(x)</mark>"},
		{"foo bar", "bar foo", "<mark>bar</mark> <mark>foo</mark>"},
	}
	for _, tc := range tests {
		q := New(tc.raw)
		if got := q.Highlight(tc.text); got != tc.want {
			t.Errorf("New(%q).Highlight(%q) = %q, want %q", tc.raw, tc.text, got, tc.want)
		}
	}
}

func TestHighlight_EmptyInput(t *testing.T) {
	q := New("foo")
	if got := q.Highlight(""); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestHighlight_NoTerms(t *testing.T) {
	q := New("")
	if got := q.Highlight("Foo"); got != "Foo" {
		t.Errorf("expected text unchanged, got %q", got)
	}
}

func TestHighlightFunc_CustomMarker(t *testing.T) {
	q := New("bar")
	got := q.HighlightFunc("Foo::Bar", strings.ToUpper)
	if got != "Foo::BAR" {
		t.Errorf("HighlightFunc = %q", got)
	}
}

func TestSanitizeSummary(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"<p>Returns <code>nil</code> when empty.</p>", "Returns <code>nil</code> when empty."},
		{`<a href="x">link</a>`, "link"},
		{`<code class="c">x</code>`, `<code class="c">x</code>`},
		{"plain", "plain"},
		{"", ""},
	}
	for _, tc := range tests {
		if got := SanitizeSummary(tc.in); got != tc.want {
			t.Errorf("SanitizeSummary(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
