package resultcache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"

	"github.com/kailas-cloud/docdex/internal/domain/search/result"
)

func TestGet_LocalOnly(t *testing.T) {
	c, counter := newTestCache(t, nil)
	ctx := context.Background()

	if _, ok := c.Get(ctx, "d1", []string{"baz"}); ok {
		t.Fatal("expected miss on empty cache")
	}

	c.Set(ctx, "d1", []string{"baz"}, samplePage())

	page, ok := c.Get(ctx, "d1", []string{"baz"})
	if !ok {
		t.Fatal("expected hit")
	}
	if page.Total != 1 || page.Items[0].Name != "baz" {
		t.Errorf("unexpected page: %+v", page)
	}

	if v := testutil.ToFloat64(counter.WithLabelValues(LayerLocal, "hit")); v != 1 {
		t.Errorf("local hit = %v, want 1", v)
	}
	if v := testutil.ToFloat64(counter.WithLabelValues(LayerLocal, "miss")); v != 1 {
		t.Errorf("local miss = %v, want 1", v)
	}
}

func TestGet_KeyedByDigestAndTerms(t *testing.T) {
	c, _ := newTestCache(t, nil)
	ctx := context.Background()

	c.Set(ctx, "d1", []string{"a", "b"}, samplePage())

	if _, ok := c.Get(ctx, "d2", []string{"a", "b"}); ok {
		t.Error("different digest must miss")
	}
	if _, ok := c.Get(ctx, "d1", []string{"b", "a"}); ok {
		t.Error("term order is significant")
	}
	if _, ok := c.Get(ctx, "d1", []string{"ab"}); ok {
		t.Error("terms must not collide when concatenated")
	}
}

func TestGet_StoreHitFillsLocal(t *testing.T) {
	data, _ := json.Marshal(samplePage())
	var gets int
	ms := &mockKVStore{
		getFn: func(_ context.Context, key string) ([]byte, error) {
			gets++
			if !strings.HasPrefix(key, DefaultKeyPrefix) {
				t.Errorf("key %q missing prefix", key)
			}
			return data, nil
		},
	}
	c, counter := newTestCache(t, ms)
	ctx := context.Background()

	for range 2 {
		page, ok := c.Get(ctx, "d1", []string{"baz"})
		if !ok || page.Items[0].FullName != "Foo::Bar#baz" {
			t.Fatalf("unexpected: %+v %v", page, ok)
		}
	}
	if gets != 1 {
		t.Errorf("store gets = %d, want 1 (second read served locally)", gets)
	}
	if v := testutil.ToFloat64(counter.WithLabelValues(LayerStore, "hit")); v != 1 {
		t.Errorf("store hit = %v, want 1", v)
	}
}

func TestGet_StoreErrorIsMiss(t *testing.T) {
	ms := &mockKVStore{
		getFn: func(context.Context, string) ([]byte, error) {
			return nil, errors.New("connection refused")
		},
	}
	c, counter := newTestCache(t, ms)

	if _, ok := c.Get(context.Background(), "d1", []string{"baz"}); ok {
		t.Fatal("expected miss on store error")
	}
	if v := testutil.ToFloat64(counter.WithLabelValues(LayerStore, "miss")); v != 1 {
		t.Errorf("store miss = %v, want 1", v)
	}
}

func TestGet_CorruptPayloadIsMiss(t *testing.T) {
	ms := &mockKVStore{
		getFn: func(context.Context, string) ([]byte, error) { return []byte("{not json"), nil },
	}
	c, _ := newTestCache(t, ms)

	if _, ok := c.Get(context.Background(), "d1", []string{"baz"}); ok {
		t.Error("expected miss on corrupt payload")
	}
}

func TestSet_WritesStoreWithTTL(t *testing.T) {
	var (
		gotTTL  time.Duration
		gotData []byte
	)
	ms := &mockKVStore{
		setFn: func(_ context.Context, _ string, value []byte, ttl time.Duration) error {
			gotTTL, gotData = ttl, value
			return nil
		},
	}
	c, _ := newTestCache(t, ms)

	c.Set(context.Background(), "d1", []string{"baz"}, samplePage())

	if gotTTL != time.Minute {
		t.Errorf("ttl = %v, want 1m", gotTTL)
	}
	var page result.Page
	if err := json.Unmarshal(gotData, &page); err != nil {
		t.Fatalf("stored payload is not JSON: %v", err)
	}
	if page.Total != 1 {
		t.Errorf("stored Total = %d", page.Total)
	}
}

func TestSet_StoreErrorIgnored(t *testing.T) {
	ms := &mockKVStore{
		setFn: func(context.Context, string, []byte, time.Duration) error {
			return errors.New("readonly replica")
		},
	}
	c, _ := newTestCache(t, ms)
	ctx := context.Background()

	c.Set(ctx, "d1", []string{"baz"}, samplePage())

	if _, ok := c.Get(ctx, "d1", []string{"baz"}); !ok {
		t.Error("local layer must still hold the page")
	}
}

func TestLocal_Evicts(t *testing.T) {
	c := New(Config{Size: 2, TTL: time.Minute}, nil, nil, zap.NewNop())
	ctx := context.Background()

	for _, term := range []string{"a", "b", "c"} {
		c.Set(ctx, "d1", []string{term}, samplePage())
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
	if _, ok := c.Get(ctx, "d1", []string{"a"}); ok {
		t.Error("oldest entry should be evicted")
	}
}
