package docdex

import (
	"context"

	"github.com/kailas-cloud/docdex/internal/domain/doctree"
	searchuc "github.com/kailas-cloud/docdex/internal/usecase/search"
)

const sampleIndex = `{
  "program": {
    "id": "toplevel", "full_name": "Top Level Namespace", "kind": "module",
    "path": "toplevel.html",
    "types": [{
      "id": "Foo::Bar", "full_name": "Foo::Bar", "kind": "class",
      "doc": "Bar utility", "summary": "<p>Bar utility</p>", "path": "Foo/Bar.html",
      "instance_methods": [{
        "id": "baz(x)-instance-method", "name": "baz",
        "args": [{"external_name": "x"}], "args_string": "(x)"
      }],
      "constants": [{"id": "MAX", "name": "MAX", "value": "10"}]
    }]
  }
}`

func newTestClient(opts ...Option) *Client {
	cfg := &clientConfig{cacheSize: defaultCacheSize, cacheTTL: defaultCacheTTL}
	for _, o := range opts {
		o.apply(cfg)
	}
	obs, _ := newObserver(cfg.logger, cfg.metricsReg)
	return wireClient(nil, cfg, obs)
}

type mockLoader struct {
	fn       func(ctx context.Context, location string) (*doctree.Program, error)
	location string
}

func (m *mockLoader) Load(ctx context.Context, location string) (*doctree.Program, error) {
	m.location = location
	return m.fn(ctx, location)
}

type mockSearcher struct {
	fn func(ctx context.Context, raw string) (searchuc.Outcome, error)
}

func (m *mockSearcher) Search(ctx context.Context, raw string) (searchuc.Outcome, error) {
	return m.fn(ctx, raw)
}
