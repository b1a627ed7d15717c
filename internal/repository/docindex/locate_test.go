package docindex

import "testing"

func TestLocate(t *testing.T) {
	tests := []struct {
		base string
		want string
	}{
		{"https://crystal-lang.org/api/1.0.0/js/doc.js", "https://crystal-lang.org/api/1.0.0/index.json"},
		{"https://crystal-lang.org/api/1.0.0/", "https://crystal-lang.org/api/1.0.0/index.json"},
		{"http://localhost:8000", "http://localhost:8000/index.json"},
		{"file:///home/u/docs/js/doc.js", "file:///home/u/docs/search-index.js"},
		{"docs/js/doc.js", "docs/search-index.js"},
		{"docs", "docs/search-index.js"},
		{"docs/", "docs/search-index.js"},
		{"docs/index.json", "docs/index.json"},
		{"https://example.com/api/index.json", "https://example.com/api/index.json"},
		{"docs/search-index.js", "docs/search-index.js"},
		{"", "search-index.js"},
	}
	for _, tc := range tests {
		if got := Locate(tc.base); got != tc.want {
			t.Errorf("Locate(%q) = %q, want %q", tc.base, got, tc.want)
		}
	}
}
