package disease

import "strings"

// Store exposes knowledge-base lookups for the QA pipeline and HTTP handlers.
type Store interface {
	List() []Entry
	Match(question string) (Entry, bool)
}

// MemoryStore implements Store over an in-memory slice. A slice, not a map:
// Match must honor declaration order.
type MemoryStore struct {
	items []Entry
}

// NewMemoryStore returns a MemoryStore preloaded with the supplied entries.
func NewMemoryStore(items []Entry) *MemoryStore {
	return &MemoryStore{items: append([]Entry(nil), items...)}
}

// List returns the configured knowledge-base entries.
func (s *MemoryStore) List() []Entry {
	return append([]Entry(nil), s.items...)
}

// Match lower-cases the question and returns the first entry whose keyword
// appears in it as a substring. First match wins even when a later keyword is
// longer or more specific; "narrow brown spot" questions therefore resolve to
// "brown spot", which mirrors the behavior of the shipped knowledge base.
func (s *MemoryStore) Match(question string) (Entry, bool) {
	normalized := strings.ToLower(question)
	for _, item := range s.items {
		if strings.Contains(normalized, item.Keyword) {
			return item, true
		}
	}
	return Entry{}, false
}
