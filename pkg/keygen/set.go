package keygen

import "sort"

// Set is an identifier exclusion set. It is owned by the caller and grows as
// identifiers are generated or imported. A Set is not safe for concurrent use.
type Set struct {
	keys map[string]struct{}
}

// NewSet creates a Set pre-loaded with existing identifiers.
func NewSet(existing ...string) *Set {
	s := &Set{keys: make(map[string]struct{}, len(existing))}
	s.Add(existing...)
	return s
}

// Add registers identifiers. Empty strings are ignored.
func (s *Set) Add(keys ...string) {
	if s == nil {
		return
	}
	if s.keys == nil {
		s.keys = make(map[string]struct{}, len(keys))
	}
	for _, key := range keys {
		if key == "" {
			continue
		}
		s.keys[key] = struct{}{}
	}
}

// Contains reports whether key is registered.
func (s *Set) Contains(key string) bool {
	if s == nil {
		return false
	}
	_, ok := s.keys[key]
	return ok
}

// Len returns the number of registered identifiers.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.keys)
}

// Keys returns the registered identifiers in sorted order.
func (s *Set) Keys() []string {
	if s == nil {
		return nil
	}
	keys := make([]string, 0, len(s.keys))
	for key := range s.keys {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns an independent copy of the set.
func (s *Set) Clone() *Set {
	if s == nil {
		return NewSet()
	}
	return NewSet(s.Keys()...)
}
