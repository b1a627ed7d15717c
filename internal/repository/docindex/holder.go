package docindex

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/kailas-cloud/docdex/internal/domain"
	"github.com/kailas-cloud/docdex/internal/domain/doctree"
	"github.com/kailas-cloud/docdex/internal/metrics"
)

// Holder keeps the installed index snapshot. It is written once; readers
// share the snapshot and must not modify it.
type Holder struct {
	program atomic.Pointer[doctree.Program]

	mu        sync.Mutex
	nextID    int
	listeners []listener
	loaded    chan struct{}
}

type listener struct {
	id int
	fn func()
}

// NewHolder creates an empty holder.
func NewHolder() *Holder {
	return &Holder{loaded: make(chan struct{})}
}

// Install stores p and notifies OnLoaded listeners in registration order.
// A second call returns domain.ErrIndexAlreadyLoaded.
func (h *Holder) Install(p *doctree.Program) error {
	if p == nil {
		return errors.New("install: nil program")
	}

	h.mu.Lock()
	if !h.program.CompareAndSwap(nil, p) {
		h.mu.Unlock()
		return domain.ErrIndexAlreadyLoaded
	}
	close(h.loaded)
	metrics.IndexLoaded.Set(1)
	pending := h.listeners
	h.listeners = nil
	h.mu.Unlock()

	for _, l := range pending {
		l.fn()
	}
	return nil
}

// Snapshot returns the installed program, if any.
func (h *Holder) Snapshot() (*doctree.Program, bool) {
	p := h.program.Load()
	return p, p != nil
}

// IsLoaded reports whether a snapshot is installed.
func (h *Holder) IsLoaded() bool {
	return h.program.Load() != nil
}

// Loaded is closed once a snapshot is installed.
func (h *Holder) Loaded() <-chan struct{} {
	return h.loaded
}

// OnLoaded registers fn to run after Install. If the index is already
// installed fn runs immediately. The returned func removes a pending fn.
func (h *Holder) OnLoaded(fn func()) func() {
	h.mu.Lock()
	if h.program.Load() != nil {
		h.mu.Unlock()
		fn()
		return func() {}
	}
	h.nextID++
	id := h.nextID
	h.listeners = append(h.listeners, listener{id: id, fn: fn})
	h.mu.Unlock()

	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		for i, l := range h.listeners {
			if l.id == id {
				h.listeners = append(h.listeners[:i], h.listeners[i+1:]...)
				return
			}
		}
	}
}
