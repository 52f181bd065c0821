package sorter

import "sortlog/pkg/logcat"

// Store accumulates log lines grouped by sort key. It remembers the order
// in which keys were first seen and the insertion order of lines within
// each key, so a later merge is fully deterministic.
type Store struct {
	keys   []logcat.Key
	groups map[logcat.Key][]string
}

// NewStore creates an empty line store.
func NewStore() *Store {
	return &Store{
		groups: make(map[logcat.Key][]string),
	}
}

// Append records a line under the given key. A duplicate of a line already
// recorded under the same key is dropped; the same text under a different
// key is kept.
func (s *Store) Append(key logcat.Key, line string) {
	group, ok := s.groups[key]
	if !ok {
		s.keys = append(s.keys, key)
	}

	for _, existing := range group {
		if existing == line {
			return
		}
	}

	s.groups[key] = append(group, line)
}

// Keys returns the distinct keys in the order they were first seen.
func (s *Store) Keys() []logcat.Key {
	keys := make([]logcat.Key, len(s.keys))
	copy(keys, s.keys)
	return keys
}

// Lines returns the lines recorded under key in insertion order.
func (s *Store) Lines(key logcat.Key) []string {
	return s.groups[key]
}

// Len returns the number of distinct keys.
func (s *Store) Len() int {
	return len(s.keys)
}

// LineCount returns the total number of stored lines.
func (s *Store) LineCount() int {
	total := 0
	for _, group := range s.groups {
		total += len(group)
	}
	return total
}
