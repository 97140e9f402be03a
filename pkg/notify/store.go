// Package notify keeps notification ticker entries and activity notifications
package notify

import (
	"errors"
	"sync"

	"github.com/samber/lo"

	"github.com/umputun/pixelsocial/pkg/domain"
)

// ErrNotFound is returned for operations on unknown notification ids
var ErrNotFound = errors.New("notification not found")

// DefaultMaxRetained is the default capacity of the ticker store
const DefaultMaxRetained = 10

// Store is a bounded list of ticker notifications, the oldest entry is evicted on overflow
type Store struct {
	max int

	mu      sync.RWMutex
	entries []domain.Notification // insertion order, oldest first
}

// NewStore makes a store retaining at most max entries, non-positive max means default
func NewStore(maxRetained int) *Store {
	if maxRetained <= 0 {
		maxRetained = DefaultMaxRetained
	}
	return &Store{max: maxRetained}
}

// Add appends notification and evicts the oldest ones beyond capacity.
// An entry with an id already kept is ignored.
func (s *Store) Add(n domain.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if lo.ContainsBy(s.entries, func(e domain.Notification) bool { return e.ID == n.ID }) {
		return
	}
	s.entries = append(s.entries, n)
	if extra := len(s.entries) - s.max; extra > 0 {
		s.entries = append([]domain.Notification(nil), s.entries[extra:]...)
	}
}

// List returns entries in insertion order
func (s *Store) List() []domain.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := make([]domain.Notification, len(s.entries))
	copy(res, s.entries)
	return res
}

// Newest returns entries newest first, the way the ticker shows them
func (s *Store) Newest() []domain.Notification {
	return lo.Reverse(s.List())
}

// Remove deletes entry by id, returns ErrNotFound for unknown id
func (s *Store) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, idx, ok := lo.FindIndexOf(s.entries, func(n domain.Notification) bool { return n.ID == id })
	if !ok {
		return ErrNotFound
	}
	s.entries = append(s.entries[:idx], s.entries[idx+1:]...)
	return nil
}

// Len returns number of retained entries
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
