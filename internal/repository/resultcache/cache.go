package resultcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/docdex/internal/db"
	"github.com/kailas-cloud/docdex/internal/domain"
	"github.com/kailas-cloud/docdex/internal/domain/search/result"
)

// DefaultKeyPrefix namespaces result pages in the shared store.
const DefaultKeyPrefix = domain.KeyPrefix + "results:"

// Layer labels for the cache counter.
const (
	LayerLocal = "local"
	LayerStore = "store"
)

// store is the consumer interface for the shared cache layer (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Config configures both cache layers.
type Config struct {
	Size      int
	TTL       time.Duration
	KeyPrefix string
}

// Cache is a two-layer cache of ranked result pages: an in-process
// expirable LRU in front of an optional shared key-value store.
// Pages are keyed by index digest and normalized terms, so a new index
// never sees stale entries. Store failures are logged and treated as misses.
type Cache struct {
	local      *expirable.LRU[string, result.Page]
	store      store
	ttl        time.Duration
	prefix     string
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a result cache. s may be nil for a local-only cache.
// cacheTotal is a counter vec with labels "layer" and "result" ("hit"/"miss"),
// passed explicitly.
func New(cfg Config, s store, cacheTotal *prometheus.CounterVec, logger *zap.Logger) *Cache {
	if cfg.Size <= 0 {
		cfg.Size = 1024
	}
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = DefaultKeyPrefix
	}
	return &Cache{
		local:      expirable.NewLRU[string, result.Page](cfg.Size, nil, cfg.TTL),
		store:      s,
		ttl:        cfg.TTL,
		prefix:     cfg.KeyPrefix,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Get returns the cached page for (digest, terms).
func (c *Cache) Get(ctx context.Context, digest string, terms []string) (result.Page, bool) {
	key := c.cacheKey(digest, terms)

	if page, ok := c.local.Get(key); ok {
		c.incCache(LayerLocal, "hit")
		return page, true
	}
	c.incCache(LayerLocal, "miss")

	if c.store == nil {
		return result.Page{}, false
	}

	page, ok := c.getFromStore(ctx, key)
	if !ok {
		c.incCache(LayerStore, "miss")
		return result.Page{}, false
	}
	c.incCache(LayerStore, "hit")
	c.local.Add(key, page)
	return page, true
}

// Set stores page in both layers.
func (c *Cache) Set(ctx context.Context, digest string, terms []string, page result.Page) {
	key := c.cacheKey(digest, terms)
	c.local.Add(key, page)

	if c.store == nil {
		return
	}
	data, err := json.Marshal(page)
	if err != nil {
		c.logger.Warn("Failed to encode result page", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.store.SetWithTTL(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("Failed to cache result page", zap.String("key", key), zap.Error(err))
	}
}

// Len returns the number of pages held in the local layer.
func (c *Cache) Len() int {
	return c.local.Len()
}

func (c *Cache) incCache(layer, res string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(layer, res).Inc()
	}
}

func (c *Cache) cacheKey(digest string, terms []string) string {
	h := sha256.New()
	h.Write([]byte(digest))
	for _, t := range terms {
		h.Write([]byte{0})
		h.Write([]byte(t))
	}
	return c.prefix + hex.EncodeToString(h.Sum(nil))
}

func (c *Cache) getFromStore(ctx context.Context, key string) (result.Page, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached result page", zap.String("key", key), zap.Error(err))
		}
		return result.Page{}, false
	}
	if len(data) == 0 {
		return result.Page{}, false
	}

	var page result.Page
	if err := json.Unmarshal(data, &page); err != nil {
		c.logger.Warn("Failed to parse cached result page", zap.String("key", key), zap.Error(err))
		return result.Page{}, false
	}
	return page, true
}
