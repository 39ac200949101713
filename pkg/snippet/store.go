package snippet

import (
	"regexp"
	"sort"
	"sync"

	"github.com/arthur-debert/snipper/pkg/errors"
)

// Store holds the snippets collected during a run. It is safe for
// concurrent use.
type Store struct {
	mu       sync.RWMutex
	snippets map[string]*Snippet
}

// NewStore creates a store containing only the empty snippet
func NewStore() *Store {
	return &Store{
		snippets: map[string]*Snippet{
			Epsilon: {Name: Epsilon, Lines: []string{}},
		},
	}
}

// Put adds a snippet. Defining a name again with the same lines is
// accepted, which keeps repeated runs over the same tree stable; any
// other redefinition is an error naming both locations.
func (s *Store) Put(sn *Snippet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.snippets[sn.Name]; ok {
		if existing.Equal(sn) {
			return nil
		}
		return errors.Newf(errors.ErrSnippetDuplicate,
			"snippet %q is defined in %s:%d and again differently in %s:%d",
			sn.Name, existing.Source, existing.Line, sn.Source, sn.Line).
			WithDetail("snippet", sn.Name).
			WithDetail("first", existing.Source).
			WithDetail("second", sn.Source)
	}
	s.snippets[sn.Name] = sn.Copy()
	return nil
}

// Get returns a copy of the named snippet
func (s *Store) Get(name string) (*Snippet, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sn, ok := s.snippets[name]
	if !ok {
		return nil, false
	}
	return sn.Copy(), true
}

// Names returns all snippet names sorted
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.snippets))
	for name := range s.snippets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Match returns the sorted names fully matched by re
func (s *Store) Match(re *regexp.Regexp) []string {
	var names []string
	for _, name := range s.Names() {
		if loc := re.FindStringIndex(name); loc != nil && loc[0] == 0 && loc[1] == len(name) {
			names = append(names, name)
		}
	}
	return names
}

// All returns copies of every snippet sorted by name
func (s *Store) All() []*Snippet {
	names := s.Names()
	out := make([]*Snippet, 0, len(names))
	for _, name := range names {
		if sn, ok := s.Get(name); ok {
			out = append(out, sn)
		}
	}
	return out
}

// Len returns the number of snippets, epsilon included
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.snippets)
}
