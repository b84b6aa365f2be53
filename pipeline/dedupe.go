package pipeline

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// OrderedSet keeps the first-seen spelling of each name, keyed
// case-insensitively, in insertion order. The index grows instead of
// evicting, so no name is ever forgotten.
type OrderedSet struct {
	index    *lru.Cache[string, string]
	capacity int
}

// NewOrderedSet allocates a set with an initial capacity hint.
func NewOrderedSet(capacity int) (*OrderedSet, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("ordered set capacity must be positive")
	}
	index, err := lru.New[string, string](capacity)
	if err != nil {
		return nil, fmt.Errorf("create ordered set index: %w", err)
	}
	return &OrderedSet{index: index, capacity: capacity}, nil
}

// Key returns the lowercased dedup key for a name. Lowercasing maps each
// letter on its own, so "Straße" and "STRASSE" stay distinct.
func Key(name string) string {
	return cases.Lower(language.Und).String(name)
}

// Add records name unless a case-insensitive equal was seen before.
// It reports whether the name was new.
func (s *OrderedSet) Add(name string) bool {
	key := Key(name)
	// Contains and Peek do not touch recency, so key order stays insertion order.
	if s.index.Contains(key) {
		return false
	}
	if s.index.Len() >= s.capacity {
		s.capacity *= 2
		s.index.Resize(s.capacity)
	}
	s.index.Add(key, name)
	return true
}

// Contains reports whether a case-insensitive equal of name was added.
func (s *OrderedSet) Contains(name string) bool {
	return s.index.Contains(Key(name))
}

// Len returns the number of unique names.
func (s *OrderedSet) Len() int {
	return s.index.Len()
}

// Values returns the first-seen names in insertion order.
func (s *OrderedSet) Values() []string {
	keys := s.index.Keys()
	out := make([]string, 0, len(keys))
	for _, key := range keys {
		if name, ok := s.index.Peek(key); ok {
			out = append(out, name)
		}
	}
	return out
}
