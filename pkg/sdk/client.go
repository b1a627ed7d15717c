package docdex

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/docdex/internal/db"
	dbRedis "github.com/kailas-cloud/docdex/internal/db/redis"
	"github.com/kailas-cloud/docdex/internal/domain"
	"github.com/kailas-cloud/docdex/internal/domain/doctree"
	"github.com/kailas-cloud/docdex/internal/domain/search/query"
	"github.com/kailas-cloud/docdex/internal/repository/docindex"
	"github.com/kailas-cloud/docdex/internal/repository/resultcache"
	healthuc "github.com/kailas-cloud/docdex/internal/usecase/health"
	searchuc "github.com/kailas-cloud/docdex/internal/usecase/search"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultCacheSize        = 1024
	defaultCacheTTL         = 10 * time.Minute
)

// Internal interfaces, replaced in tests.
type searchUseCase interface {
	Search(ctx context.Context, raw string) (searchuc.Outcome, error)
}

type indexLoader interface {
	Load(ctx context.Context, location string) (*doctree.Program, error)
}

// Client is the docdex SDK entry point.
type Client struct {
	store     db.Store
	holder    *docindex.Holder
	loader    indexLoader
	searchSvc searchUseCase
	healthSvc healthUseCase
	obs       *observer
}

// New creates a Client. Without WithRedis or WithValkey no connection is
// made; otherwise ctx bounds the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		cacheSize: defaultCacheSize,
		cacheTTL:  defaultCacheTTL,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	var store db.Store
	if cfg.driver != "" {
		store, err = createStore(cfg)
		if err != nil {
			return nil, err
		}
		if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
			store.Close()
			return nil, fmt.Errorf("docdex: cache store not ready: %w", err)
		}
	}

	return wireClient(store, cfg, obs), nil
}

func createStore(cfg *clientConfig) (db.Store, error) {
	switch cfg.driver {
	case "valkey", "redis":
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:      cfg.addrs,
			Password:   cfg.password,
			ClientName: "docdex-sdk",
		})
		if err != nil {
			return nil, fmt.Errorf("docdex: create %s store: %w", cfg.driver, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("docdex: unknown driver %q", cfg.driver)
	}
}

func wireClient(store db.Store, cfg *clientConfig, obs *observer) *Client {
	nop := zap.NewNop()
	holder := docindex.NewHolder()

	// A nil interface, not a typed nil pointer, means a local-only cache.
	var kv db.KVStore
	var pinger healthuc.DBPinger
	if store != nil {
		kv = store
		pinger = store
	}
	cache := resultcache.New(resultcache.Config{
		Size: cfg.cacheSize,
		TTL:  cfg.cacheTTL,
	}, kv, nil, nop)

	return &Client{
		store:     store,
		holder:    holder,
		loader:    docindex.NewLoader(cfg.httpClient, nop),
		searchSvc: searchuc.New(holder, cache, cfg.maxResults, nop),
		healthSvc: healthuc.New(holder, pinger),
		obs:       obs,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks the shared cache store. Without one it always succeeds.
func (c *Client) Ping(ctx context.Context) (err error) {
	if c.store == nil {
		return nil
	}
	start := time.Now()
	defer func() { c.obs.observe(ctx, opPing, start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Load fetches the index for source and installs it. source is a docs
// site URL, a local docs directory, the URL of js/doc.js or the index
// file itself. The index is write-once: a second Load returns
// ErrAlreadyLoaded.
func (c *Client) Load(ctx context.Context, source string) (err error) {
	start := time.Now()
	location := docindex.Locate(source)
	defer func() { c.obs.observe(ctx, opLoad, start, err, slog.String("location", location)) }()

	program, err := c.loader.Load(ctx, location)
	if err != nil {
		return err
	}
	return c.holder.Install(program)
}

// LoadData installs an index from its raw JSON or JSONP content.
func (c *Client) LoadData(data []byte) error {
	program, err := docindex.Decode(data)
	if err != nil {
		return domain.NewIndexLoadError("<data>", err)
	}
	return c.holder.Install(program)
}

// Loaded reports whether an index is installed.
func (c *Client) Loaded() bool {
	return c.holder.IsLoaded()
}

// WaitLoaded blocks until an index is installed or ctx is done.
func (c *Client) WaitLoaded(ctx context.Context) error {
	select {
	case <-c.holder.Loaded():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stats describes the installed index.
func (c *Client) Stats() (IndexStats, bool) {
	program, ok := c.holder.Snapshot()
	if !ok {
		return IndexStats{}, false
	}
	return statsFromProgram(program), true
}

// Search runs q against the installed index and returns at most 140
// ranked results. It returns ErrNotLoaded before Load completes.
func (c *Client) Search(ctx context.Context, q string) (res SearchResults, err error) {
	start := time.Now()
	defer func() {
		c.obs.observe(ctx, opSearch, start, err,
			slog.String("query", q),
			slog.Int("results", len(res.Items)),
			slog.Bool("cached", res.Cached),
		)
		if err == nil {
			c.obs.observeResults(len(res.Items))
		}
	}()

	if len(q) > query.MaxLength {
		return SearchResults{}, fmt.Errorf("%w: query exceeds %d bytes", ErrInvalidQuery, query.MaxLength)
	}

	out, err := c.searchSvc.Search(ctx, q)
	if err != nil {
		return SearchResults{}, fmt.Errorf("search: %w", err)
	}
	return searchResultsFromOutcome(q, &out), nil
}
