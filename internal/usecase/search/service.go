package search

import (
	"context"

	"go.uber.org/zap"

	"github.com/kailas-cloud/docdex/internal/domain"
	"github.com/kailas-cloud/docdex/internal/domain/search/query"
	"github.com/kailas-cloud/docdex/internal/domain/search/result"
)

// MaxResults is the display cap applied after ranking.
const MaxResults = 140

// Outcome is the parsed query together with its ranked page.
type Outcome struct {
	Query  query.Query
	Page   result.Page
	Cached bool
}

// Service runs documentation searches against the installed index snapshot.
type Service struct {
	index      IndexReader
	cache      Cache
	maxResults int
	logger     *zap.Logger
}

// New creates a search service. cache may be nil. maxResults outside
// 1..MaxResults falls back to MaxResults.
func New(index IndexReader, cache Cache, maxResults int, logger *zap.Logger) *Service {
	if maxResults <= 0 || maxResults > MaxResults {
		maxResults = MaxResults
	}
	return &Service{index: index, cache: cache, maxResults: maxResults, logger: logger}
}

// Search parses raw, walks the index, ranks and caps the matches.
// It fails only with domain.ErrIndexNotLoaded.
func (s *Service) Search(ctx context.Context, raw string) (Outcome, error) {
	program, ok := s.index.Snapshot()
	if !ok {
		return Outcome{}, domain.ErrIndexNotLoaded
	}

	out := Outcome{Query: query.New(raw)}
	if out.Query.IsEmpty() {
		return out, nil
	}

	terms := out.Query.Normalized()
	if s.cache != nil {
		if page, hit := s.cache.Get(ctx, program.Digest, terms); hit {
			out.Page = page
			out.Cached = true
			return out, nil
		}
	}

	ranked := Rank(RunQuery(&program.Root, &out.Query), &out.Query)

	out.Page = result.Page{Items: ranked, Total: len(ranked)}
	if len(ranked) > s.maxResults {
		out.Page.Items = ranked[:s.maxResults]
	}

	if s.cache != nil {
		s.cache.Set(ctx, program.Digest, terms, out.Page)
	}

	s.logger.Debug("Search completed",
		zap.Strings("terms", terms),
		zap.Int("total", out.Page.Total),
		zap.Int("returned", len(out.Page.Items)),
	)

	return out, nil
}
