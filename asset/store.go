package asset

import (
	"slices"
	"sync"
)

// Store holds assets of type T behind handles and records lifecycle events.
//
// Store is safe for concurrent use.
type Store[T any] struct {
	mu     sync.RWMutex
	items  map[ID]T
	nextID ID

	// prev and cur are the two event buffers; seq is the sequence number
	// the next emitted event receives.
	prev []sequenced[T]
	cur  []sequenced[T]
	seq  uint64
}

// NewStore creates an empty store.
func NewStore[T any]() *Store[T] {
	return &Store[T]{
		items: make(map[ID]T),
	}
}

// Reserve allocates a handle without storing a value behind it.
// Get reports false for the handle until Set is called.
func (s *Store[T]) Reserve() Handle[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reserveLocked()
}

func (s *Store[T]) reserveLocked() Handle[T] {
	s.nextID++
	return Handle[T]{id: s.nextID}
}

// Add stores v behind a fresh handle and emits Created.
func (s *Store[T]) Add(v T) Handle[T] {
	s.mu.Lock()
	defer s.mu.Unlock()

	h := s.reserveLocked()
	s.items[h.id] = v
	s.emitLocked(Created, h)
	return h
}

// Set stores v behind h. It emits Created if h had no value and Modified
// otherwise. Set reports false and does nothing for an invalid handle or a
// handle this store never allocated.
func (s *Store[T]) Set(h Handle[T], v T) bool {
	if !h.IsValid() {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if h.id > s.nextID {
		return false
	}
	_, existed := s.items[h.id]
	s.items[h.id] = v
	if existed {
		s.emitLocked(Modified, h)
	} else {
		s.emitLocked(Created, h)
	}
	return true
}

// Get returns the value behind h.
func (s *Store[T]) Get(h Handle[T]) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.items[h.id]
	return v, ok
}

// Contains reports whether a value is stored behind h.
func (s *Store[T]) Contains(h Handle[T]) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.items[h.id]
	return ok
}

// MarkModified emits Modified for a value that was changed in place through
// a pointer obtained from Get. It reports false if h has no value.
func (s *Store[T]) MarkModified(h Handle[T]) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[h.id]; !ok {
		return false
	}
	s.emitLocked(Modified, h)
	return true
}

// Remove deletes the value behind h and emits Removed.
// The handle itself stays allocated and may be Set again.
func (s *Store[T]) Remove(h Handle[T]) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.items[h.id]
	if !ok {
		var zero T
		return zero, false
	}
	delete(s.items, h.id)
	s.emitLocked(Removed, h)
	return v, true
}

// Len returns the number of stored values.
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Handles returns the handles of all stored values in allocation order.
func (s *Store[T]) Handles() []Handle[T] {
	s.mu.RLock()
	ids := make([]ID, 0, len(s.items))
	for id := range s.items {
		ids = append(ids, id)
	}
	s.mu.RUnlock()

	slices.Sort(ids)
	out := make([]Handle[T], len(ids))
	for i, id := range ids {
		out[i] = Handle[T]{id: id}
	}
	return out
}

// Update advances the event buffers. Call it once per tick after every
// consumer had the chance to read. Events emitted before the previous
// Update are dropped.
func (s *Store[T]) Update() {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Reuse the older buffer to avoid reallocating every tick.
	old := s.prev
	s.prev = s.cur
	s.cur = old[:0]
}

// NewReader returns a reader positioned at the oldest buffered event.
func (s *Store[T]) NewReader() *EventReader {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.prev) > 0 {
		return &EventReader{next: s.prev[0].seq}
	}
	if len(s.cur) > 0 {
		return &EventReader{next: s.cur[0].seq}
	}
	return &EventReader{next: s.seq}
}

// Read returns the buffered events r has not seen yet, oldest first,
// and advances r past them.
func (s *Store[T]) Read(r *EventReader) []Event[T] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Event[T]
	for _, buf := range [2][]sequenced[T]{s.prev, s.cur} {
		for _, e := range buf {
			if e.seq >= r.next {
				out = append(out, e.event)
			}
		}
	}
	r.next = s.seq
	return out
}

// emitLocked appends an event to the current buffer. Caller must hold s.mu.
func (s *Store[T]) emitLocked(kind EventKind, h Handle[T]) {
	s.cur = append(s.cur, sequenced[T]{
		seq:   s.seq,
		event: Event[T]{Kind: kind, Handle: h},
	})
	s.seq++
}
