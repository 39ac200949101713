package types

import (
	"sort"
	"strconv"
	"strings"
)

// PassSet is the sorted, duplicate free list of passes a handler runs in.
type PassSet []int

// NewPassSet builds a PassSet from the given pass numbers.
func NewPassSet(passes ...int) PassSet {
	if len(passes) == 0 {
		return PassSet{}
	}
	seen := make(map[int]struct{}, len(passes))
	set := make(PassSet, 0, len(passes))
	for _, p := range passes {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		set = append(set, p)
	}
	sort.Ints(set)
	return set
}

// Contains reports whether pass is part of the set
func (p PassSet) Contains(pass int) bool {
	i := sort.SearchInts(p, pass)
	return i < len(p) && p[i] == pass
}

// String renders the set as "[1 3 4]"
func (p PassSet) String() string {
	parts := make([]string, len(p))
	for i, n := range p {
		parts[i] = strconv.Itoa(n)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// MergePasses returns the sorted union of the given sets.
func MergePasses(sets ...PassSet) []int {
	var all []int
	for _, s := range sets {
		all = append(all, s...)
	}
	return NewPassSet(all...)
}
