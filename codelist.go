package iati

import (
	"sort"
	"sync"
)

// Codelist is an opaque handle to a codelist attached to a schema. Two
// handles denote the same codelist when their names are equal.
type Codelist struct {
	Name string
}

// CodelistSet is a set of codelists keyed by name. Adding a codelist whose
// name is already present is a no-op. There is no remove operation.
//
// The set is the only mutable state a schema carries after construction and
// is safe for concurrent use.
type CodelistSet struct {
	mu     sync.Mutex
	byName map[string]Codelist
}

// NewCodelistSet returns an empty codelist set.
func NewCodelistSet() *CodelistSet {
	return &CodelistSet{byName: make(map[string]Codelist)}
}

// Add inserts codelist into the set.
func (s *CodelistSet) Add(codelist Codelist) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byName[codelist.Name]; ok {
		return
	}
	s.byName[codelist.Name] = codelist
}

// Contains reports whether a codelist with the same name is in the set.
func (s *CodelistSet) Contains(codelist Codelist) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.byName[codelist.Name]
	return ok
}

// Len returns the number of codelists in the set.
func (s *CodelistSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byName)
}

// Names returns the names of the contained codelists, sorted.
func (s *CodelistSet) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.byName))
	for name := range s.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
