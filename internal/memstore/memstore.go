// Package memstore provides a mutex-guarded, slice-backed collection for a
// single resource type. It preserves insertion order and assigns identifiers
// from a monotonic counter that never reuses values, even across deletions.
package memstore

import "sync"

// Store holds the authoritative collection for one in-memory resource.
// The id/setID accessors tell the store how to read and assign the entity's
// numeric identifier.
type Store[E any] struct {
	mu     sync.RWMutex
	items  []E
	nextID int64
	id     func(E) int64
	setID  func(*E, int64)
}

// New creates an empty Store. The counter starts at 1; Seed moves it past the
// highest seeded identifier.
func New[E any](id func(E) int64, setID func(*E, int64)) *Store[E] {
	return &Store[E]{
		nextID: 1,
		id:     id,
		setID:  setID,
	}
}

// Seed appends pre-identified entities and advances the counter beyond the
// highest seeded ID. Intended for process-start seeding only.
func (s *Store[E]) Seed(items ...E) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range items {
		s.items = append(s.items, item)
		if id := s.id(item); id >= s.nextID {
			s.nextID = id + 1
		}
	}
}

// List returns all entities in insertion order.
func (s *Store[E]) List() []E {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]E, len(s.items))
	copy(list, s.items)
	return list
}

// FindByID returns the entity with the given identifier.
func (s *Store[E]) FindByID(id int64) (E, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.items {
		if s.id(item) == id {
			return item, true
		}
	}
	var zero E
	return zero, false
}

// Exists reports whether an entity with the given identifier is present.
func (s *Store[E]) Exists(id int64) bool {
	_, ok := s.FindByID(id)
	return ok
}

// Filter returns all entities matching the predicate, in insertion order.
// An empty result is a normal outcome, not an error.
func (s *Store[E]) Filter(pred func(E) bool) []E {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]E, 0)
	for _, item := range s.items {
		if pred(item) {
			list = append(list, item)
		}
	}
	return list
}

// Create assigns the next identifier to the entity, appends it and returns it.
// The counter is never derived from the collection size, so deleted IDs are
// not reused.
func (s *Store[E]) Create(item E) E {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.setID(&item, s.nextID)
	s.nextID++
	s.items = append(s.items, item)
	return item
}

// CreateGuarded appends the entity only when no existing entity matches the
// conflict predicate. The check and the insert happen under one write lock,
// so two racing calls with the same conflicting value cannot both succeed.
func (s *Store[E]) CreateGuarded(item E, conflict func(E) bool) (E, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.items {
		if conflict(existing) {
			var zero E
			return zero, false
		}
	}
	s.setID(&item, s.nextID)
	s.nextID++
	s.items = append(s.items, item)
	return item, true
}

// Update applies fn to the entity with the given identifier in place and
// returns the mutated entity. Returns false if no entity has that identifier.
func (s *Store[E]) Update(id int64, fn func(*E)) (E, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.id(s.items[i]) == id {
			fn(&s.items[i])
			return s.items[i], true
		}
	}
	var zero E
	return zero, false
}

// DeleteByID removes the entity with the given identifier.
// Returns false if no entity had that identifier.
func (s *Store[E]) DeleteByID(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.id(s.items[i]) == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of stored entities.
func (s *Store[E]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
