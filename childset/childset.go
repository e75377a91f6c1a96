// Package childset implements the child container every folder node owns:
// a name-to-node map with deterministic sorted iteration, used by `List` to
// produce a stable snapshot string.
//
// This is plumbing, not the protocol: the hard concurrency work lives in
// nodesync/pathlock, and this package assumes its caller already holds
// whatever lock is appropriate before calling any method. Modeled on the
// map[string]*T shape winfsp-go-winfsp's memfs package uses for its own
// directory entries (memDir.dentries), generalized with a generic value
// type and sorted-name iteration.
package childset

import "sort"

// Set is an unordered map of child name to value, exposing sorted
// iteration for deterministic listings.
type Set[T any] struct {
	m map[string]T
}

// New returns an empty Set.
func New[T any]() *Set[T] {
	return &Set[T]{m: make(map[string]T)}
}

// Get returns the value stored under name, if any.
func (s *Set[T]) Get(name string) (T, bool) {
	v, ok := s.m[name]
	return v, ok
}

// Has reports whether name is present.
func (s *Set[T]) Has(name string) bool {
	_, ok := s.m[name]
	return ok
}

// Put inserts or overwrites the value stored under name.
func (s *Set[T]) Put(name string, v T) {
	s.m[name] = v
}

// Delete removes name, if present.
func (s *Set[T]) Delete(name string) {
	delete(s.m, name)
}

// Len returns the number of entries.
func (s *Set[T]) Len() int {
	return len(s.m)
}

// Names returns every key in the set, sorted lexicographically.
func (s *Set[T]) Names() []string {
	names := make([]string, 0, len(s.m))
	for name := range s.m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Each calls fn once for every entry, in sorted-name order.
func (s *Set[T]) Each(fn func(name string, v T)) {
	for _, name := range s.Names() {
		fn(name, s.m[name])
	}
}
