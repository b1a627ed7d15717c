package query

import (
	"regexp"
	"strings"
)

var tagPattern = regexp.MustCompile(`<[^>]+>`)

// compileHighlight builds a case-insensitive alternation of the terms with
// leading modifiers removed. Returns nil when nothing is left to highlight.
func compileHighlight(normalized []string) *regexp.Regexp {
	seen := make(map[string]struct{}, len(normalized))
	parts := make([]string, 0, len(normalized))
	for _, term := range normalized {
		term = strings.TrimLeft(term, "#.:")
		if term == "" {
			continue
		}
		if _, ok := seen[term]; ok {
			continue
		}
		seen[term] = struct{}{}
		parts = append(parts, regexp.QuoteMeta(term))
	}
	if len(parts) == 0 {
		return nil
	}
	return regexp.MustCompile("(?i)(" + strings.Join(parts, "|") + ")")
}

// Highlight wraps every occurrence of a query term in <mark></mark>.
func (q *Query) Highlight(text string) string {
	return q.HighlightFunc(text, func(s string) string {
		return "<mark>" + s + "</mark>"
	})
}

// HighlightFunc replaces every occurrence of a query term with mark(occurrence).
func (q *Query) HighlightFunc(text string, mark func(string) string) string {
	if text == "" {
		return ""
	}
	if q.highlight == nil {
		return text
	}
	return q.highlight.ReplaceAllStringFunc(text, mark)
}

// SanitizeSummary strips HTML tags from a rendered summary, keeping <code> tags.
func SanitizeSummary(html string) string {
	return tagPattern.ReplaceAllStringFunc(html, func(tag string) string {
		if strings.HasPrefix(tag, "<code") || strings.HasPrefix(tag, "</code") {
			return tag
		}
		return ""
	})
}
