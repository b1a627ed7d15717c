package search

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/kailas-cloud/docdex/internal/domain"
)

// DefaultQuietPeriod is how long input must stay unchanged before a search runs.
const DefaultQuietPeriod = 200 * time.Millisecond

// State is the lifecycle state of an interactive search session.
type State string

// Session states.
const (
	StateIdle       State = "idle"
	StateDebouncing State = "debouncing"
	StateSearching  State = "searching"
	StateDone       State = "done"
)

// Event reports a session state transition.
type Event struct {
	State State
	Text  string
	// Outcome is set when State is StateDone and the search ran.
	Outcome Outcome
	// Unchanged is set when the text equals the last searched text and the
	// previous results still stand.
	Unchanged bool
	Err       error
}

// Listener receives session events. It must not block for long.
type Listener func(Event)

// Session debounces text input and runs searches on behalf of an
// interactive caller. Safe for concurrent use.
type Session struct {
	searcher Searcher
	listener Listener
	quiet    time.Duration

	mu          sync.Mutex
	state       State
	gen         uint64
	timer       *time.Timer
	pending     string
	last        string
	searched    bool
	waiting     bool
	closed      bool
	unsubscribe func()
}

// NewSession creates a session. When loaded is non-nil, a search deferred
// because the index was missing is retried once the index is installed.
func NewSession(searcher Searcher, loaded LoadNotifier, quiet time.Duration, listener Listener) *Session {
	if quiet <= 0 {
		quiet = DefaultQuietPeriod
	}
	s := &Session{
		searcher: searcher,
		listener: listener,
		quiet:    quiet,
		state:    StateIdle,
	}
	if loaded != nil {
		unsubscribe := loaded.OnLoaded(s.retry)
		s.mu.Lock()
		s.unsubscribe = unsubscribe
		s.mu.Unlock()
	}
	return s
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Input records new text and restarts the quiet period.
func (s *Session) Input(text string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.pending = text
	s.gen++
	gen := s.gen
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.quiet, func() { s.run(gen) })
	s.state = StateDebouncing
	s.mu.Unlock()

	s.emit(Event{State: StateDebouncing, Text: text})
}

// Close stops the pending timer and detaches from the load notifier.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
	}
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
}

func (s *Session) retry() {
	s.mu.Lock()
	if s.closed || !s.waiting {
		s.mu.Unlock()
		return
	}
	s.waiting = false
	gen := s.gen
	s.mu.Unlock()

	s.run(gen)
}

// run performs the search for generation gen. A newer Input supersedes it.
func (s *Session) run(gen uint64) {
	s.mu.Lock()
	if s.closed || gen != s.gen {
		s.mu.Unlock()
		return
	}
	text := s.pending

	if text == "" {
		s.last = ""
		s.searched = false
		s.state = StateDone
		s.mu.Unlock()
		s.emit(Event{State: StateDone})
		return
	}
	if s.searched && text == s.last {
		s.state = StateDone
		s.mu.Unlock()
		s.emit(Event{State: StateDone, Text: text, Unchanged: true})
		return
	}
	s.state = StateSearching
	s.mu.Unlock()

	s.emit(Event{State: StateSearching, Text: text})

	out, err := s.searcher.Search(context.Background(), text)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	if gen != s.gen {
		s.mu.Unlock()
		return
	}
	if errors.Is(err, domain.ErrIndexNotLoaded) {
		s.waiting = true
		s.state = StateIdle
		s.mu.Unlock()
		s.emit(Event{State: StateIdle, Text: text, Err: err})
		return
	}
	s.last = text
	s.searched = err == nil
	s.state = StateDone
	s.mu.Unlock()

	s.emit(Event{State: StateDone, Text: text, Outcome: out, Err: err})
}

func (s *Session) emit(e Event) {
	if s.listener != nil {
		s.listener(e)
	}
}
