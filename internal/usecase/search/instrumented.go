package search

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/docdex/internal/domain"
	"github.com/kailas-cloud/docdex/internal/metrics"
)

// InstrumentedSearcher wraps a Searcher with search metrics and logging.
// HTTP metrics are recorded by the transport middleware.
type InstrumentedSearcher struct {
	inner  Searcher
	logger *zap.Logger
}

// NewInstrumentedSearcher wraps inner with observability.
func NewInstrumentedSearcher(inner Searcher, logger *zap.Logger) *InstrumentedSearcher {
	return &InstrumentedSearcher{inner: inner, logger: logger}
}

// Search delegates to the inner searcher and records the outcome.
func (p *InstrumentedSearcher) Search(ctx context.Context, raw string) (Outcome, error) {
	start := time.Now()

	out, err := p.inner.Search(ctx, raw)

	duration := time.Since(start)
	metrics.SearchDuration.Observe(duration.Seconds())

	if err != nil {
		status := "error"
		if errors.Is(err, domain.ErrIndexNotLoaded) {
			status = "not_loaded"
		}
		metrics.SearchRequestsTotal.WithLabelValues(status).Inc()
		p.logger.Warn("Search failed",
			zap.Int("query_length", len(raw)),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return Outcome{}, err
	}

	status := "ok"
	if len(out.Page.Items) == 0 {
		status = "empty"
	}
	metrics.SearchRequestsTotal.WithLabelValues(status).Inc()
	metrics.SearchResults.Observe(float64(len(out.Page.Items)))

	p.logger.Debug("Search request completed",
		zap.Int("terms", len(out.Query.Terms())),
		zap.Int("results", len(out.Page.Items)),
		zap.Bool("cached", out.Cached),
		zap.Duration("duration", duration),
	)

	return out, nil
}
