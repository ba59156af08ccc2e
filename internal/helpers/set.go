package helpers

import "sort"

// Set is an unordered set of identities or tags.
type Set map[string]struct{}

func NewSet(items ...string) Set {
	s := make(Set, len(items))
	for _, item := range items {
		s[item] = struct{}{}
	}
	return s
}

func (s Set) Has(item string) bool {
	_, ok := s[item]
	return ok
}

// Add reports whether item was newly inserted.
func (s Set) Add(item string) bool {
	if s.Has(item) {
		return false
	}
	s[item] = struct{}{}
	return true
}

// Remove reports whether item was present.
func (s Set) Remove(item string) bool {
	if !s.Has(item) {
		return false
	}
	delete(s, item)
	return true
}

// Slice returns the members sorted, so persisted arrays are stable. Never nil.
func (s Set) Slice() []string {
	out := make([]string, 0, len(s))
	for item := range s {
		out = append(out, item)
	}
	sort.Strings(out)
	return out
}
