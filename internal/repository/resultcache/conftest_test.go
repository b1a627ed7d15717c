package resultcache

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/docdex/internal/db"
	"github.com/kailas-cloud/docdex/internal/domain/search/result"
)

// mockKVStore implements the consumer interface for tests.
type mockKVStore struct {
	getFn func(ctx context.Context, key string) ([]byte, error)
	setFn func(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

func (m *mockKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockKVStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value, ttl)
	}
	return nil
}

func newTestCounter() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{Name: "test_result_cache_total"}, []string{"layer", "result"})
}

func newTestCache(t *testing.T, s store) (*Cache, *prometheus.CounterVec) {
	t.Helper()
	counter := newTestCounter()
	return New(Config{Size: 8, TTL: time.Minute}, s, counter, zap.NewNop()), counter
}

func samplePage() result.Page {
	r := result.Result{Kind: "instance_method", Name: "baz", FullName: "Foo::Bar#baz"}
	r.AddMatch(result.FieldName, []string{"baz"})
	return result.Page{Items: []result.Result{r}, Total: 1}
}
