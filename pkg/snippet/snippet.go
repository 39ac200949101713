// Package snippet collects named blocks of lines from source files and
// keeps them in a run-wide store.
//
// A snippet is delimited in source code by
//
//	// snippet NAME key="value"
//	...
//	// end snippet
//
// Writers copy snippets out of the store, so handlers transforming a
// region never alter the stored lines.
package snippet

import (
	"slices"

	"github.com/arthur-debert/snipper/pkg/params"
)

// Epsilon is the name of the empty snippet present in every store
const Epsilon = "epsilon"

// Snippet is a named list of lines
type Snippet struct {
	Name   string
	Lines  []string
	Params *params.Params

	// Source is the relative path of the defining file
	Source string
	// Line is the 1-based line number of the start marker
	Line int
}

// Copy returns a deep copy of the lines. Params are shared; they are
// never modified after collection.
func (s *Snippet) Copy() *Snippet {
	c := *s
	c.Lines = slices.Clone(s.Lines)
	return &c
}

// Equal reports whether both snippets have the same lines
func (s *Snippet) Equal(other *Snippet) bool {
	return slices.Equal(s.Lines, other.Lines)
}
