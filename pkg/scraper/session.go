package scraper

import "sort"

// Session holds the records collected during one interactive session.
// Records are unique by page ID; the zero value is not usable, use NewSession.
type Session struct {
	records []Record
	seen    map[int]bool
}

// NewSession creates an empty session
func NewSession() *Session {
	return &Session{seen: make(map[int]bool)}
}

// Seen reports whether a record with this page ID was already stored
func (s *Session) Seen(pageID int) bool {
	return s.seen[pageID]
}

// Add stores r unless its page ID is already present. It reports whether r was added.
func (s *Session) Add(r Record) bool {
	if s.seen[r.PageID] {
		return false
	}
	s.seen[r.PageID] = true
	s.records = append(s.records, r)
	return true
}

// Records returns a copy of the stored records sorted by page ID
func (s *Session) Records() []Record {
	out := make([]Record, len(s.records))
	copy(out, s.records)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PageID < out[j].PageID
	})
	return out
}

// Len returns the number of stored records
func (s *Session) Len() int {
	return len(s.records)
}

// Clear drops every stored record
func (s *Session) Clear() {
	s.records = nil
	s.seen = make(map[int]bool)
}
