package search

import (
	"context"

	"github.com/kailas-cloud/docdex/internal/domain/doctree"
	"github.com/kailas-cloud/docdex/internal/domain/search/result"
)

// IndexReader exposes the installed index snapshot.
type IndexReader interface {
	Snapshot() (*doctree.Program, bool)
}

// Cache stores ranked pages keyed by index digest and normalized terms.
type Cache interface {
	Get(ctx context.Context, digest string, terms []string) (result.Page, bool)
	Set(ctx context.Context, digest string, terms []string, page result.Page)
}

// Searcher runs a query against the current index.
type Searcher interface {
	Search(ctx context.Context, raw string) (Outcome, error)
}

// LoadNotifier calls fn once the index snapshot is installed.
// The returned func cancels the subscription.
type LoadNotifier interface {
	OnLoaded(fn func()) (unsubscribe func())
}
