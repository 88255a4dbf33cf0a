package client

import (
	"context"
	"encoding/json"
	"sync"
)

// Store is the shared read cache: one entry per (built path + canonical
// query) key, holding the last known good response body. It is an explicit,
// constructible object rather than a package-level singleton, so tests and
// app roots own their cache lifecycle.
//
// Guarantees:
//   - at most one in-flight fetch per key; concurrent readers share it
//   - an invalidation bumps the entry's generation, so a fetch that started
//     before the invalidation can never install its (now stale) result
type Store struct {
	mu      sync.Mutex
	entries map[string]*entry
}

type entry struct {
	template string // descriptor path the key was derived from
	gen      int    // bumped on invalidation
	stale    bool
	fetched  bool
	value    json.RawMessage
	flight   *flight
}

// flight is one in-flight fetch; waiters block on done and share the result.
type flight struct {
	done chan struct{}
	val  json.RawMessage
	err  error
}

func NewStore() *Store {
	return &Store{entries: make(map[string]*entry)}
}

// Get returns the cached body for key, fetching it when absent or stale.
// template is the descriptor path the key was built from; it is what
// Invalidate matches against. Errors are shared with concurrent waiters of
// the same fetch but are not cached: the next access retries.
func (s *Store) Get(ctx context.Context, template, key string, fetch func(context.Context) (json.RawMessage, error)) (json.RawMessage, error) {
	s.mu.Lock()
	e, ok := s.entries[key]
	if !ok {
		e = &entry{template: template}
		s.entries[key] = e
	}

	if e.fetched && !e.stale {
		val := e.value
		s.mu.Unlock()
		return val, nil
	}

	if e.flight != nil { // attach to the in-flight fetch
		f := e.flight
		s.mu.Unlock()
		select {
		case <-f.done:
			return f.val, f.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	f := &flight{done: make(chan struct{})}
	e.flight = f
	gen := e.gen
	s.mu.Unlock()

	f.val, f.err = fetch(ctx)
	close(f.done)

	s.mu.Lock()
	if e.flight == f {
		e.flight = nil
	}
	if f.err == nil && e.gen == gen {
		e.value = f.val
		e.fetched = true
		e.stale = false
	}
	s.mu.Unlock()
	return f.val, f.err
}

// Invalidate marks stale every entry whose key was derived from one of the
// given path templates. The next access to a stale key refetches.
func (s *Store) Invalidate(templates ...string) {
	if len(templates) == 0 {
		return
	}
	match := make(map[string]struct{}, len(templates))
	for _, t := range templates {
		match[t] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.entries {
		if _, ok := match[e.template]; ok {
			e.stale = true
			e.gen++
		}
	}
}

// Stale reports whether the entry for key exists and is marked stale.
func (s *Store) Stale(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	return ok && e.stale
}

// Len returns the number of cached entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Clear drops every entry. In-flight fetches complete against orphaned
// entries and their results are discarded. Intended for test isolation and
// logout.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]*entry)
}
