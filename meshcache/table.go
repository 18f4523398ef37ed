package meshcache

import (
	"sync"
	"sync/atomic"
)

// numShards is the number of shards per table.
const numShards = 16

// entry is a node of a shard's LRU list.
type entry[K comparable, V any] struct {
	key   K
	value V

	prev *entry[K, V]
	next *entry[K, V]

	// lastAccessFrame drives frame-based eviction in maintain.
	lastAccessFrame uint64
}

// shard is one lock domain of a table.
type shard[K comparable, V any] struct {
	mu sync.Mutex

	entries map[K]*entry[K, V]

	// head is the most recently used entry, tail the least.
	head *entry[K, V]
	tail *entry[K, V]

	maxEntries int
}

// table is a sharded LRU map.
type table[K comparable, V any] struct {
	shards [numShards]*shard[K, V]
	hash   func(K) uint64
	frame  *atomic.Uint64
	stats  *counters
}

func newTable[K comparable, V any](maxEntries int, hash func(K) uint64, frame *atomic.Uint64, stats *counters) *table[K, V] {
	t := &table[K, V]{hash: hash, frame: frame, stats: stats}
	perShard := max((maxEntries+numShards-1)/numShards, 1)
	for i := range t.shards {
		t.shards[i] = &shard[K, V]{
			entries:    make(map[K]*entry[K, V], perShard),
			maxEntries: perShard,
		}
	}
	return t
}

func (t *table[K, V]) shardFor(key K) *shard[K, V] {
	return t.shards[t.hash(key)%numShards]
}

func (t *table[K, V]) get(key K) (V, bool) {
	s := t.shardFor(key)
	frame := t.frame.Load()

	s.mu.Lock()
	e, ok := s.entries[key]
	if !ok {
		s.mu.Unlock()
		t.stats.misses.Add(1)
		var zero V
		return zero, false
	}
	e.lastAccessFrame = frame
	s.moveToFront(e)
	v := e.value
	s.mu.Unlock()

	t.stats.hits.Add(1)
	return v, true
}

func (t *table[K, V]) set(key K, value V) {
	s := t.shardFor(key)
	frame := t.frame.Load()

	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[key]; ok {
		e.value = value
		e.lastAccessFrame = frame
		s.moveToFront(e)
		return
	}

	for len(s.entries) >= s.maxEntries && s.tail != nil {
		delete(s.entries, s.tail.key)
		s.remove(s.tail)
		t.stats.evictions.Add(1)
	}

	e := &entry[K, V]{key: key, value: value, lastAccessFrame: frame}
	s.entries[key] = e
	s.addToFront(e)
	t.stats.insertions.Add(1)
}

// maintain evicts entries last used before threshold.
func (t *table[K, V]) maintain(threshold uint64) {
	for _, s := range t.shards {
		s.mu.Lock()
		e := s.tail
		for e != nil && e.lastAccessFrame < threshold {
			prev := e.prev
			delete(s.entries, e.key)
			s.remove(e)
			t.stats.evictions.Add(1)
			e = prev
		}
		s.mu.Unlock()
	}
}

func (t *table[K, V]) len() int {
	total := 0
	for _, s := range t.shards {
		s.mu.Lock()
		total += len(s.entries)
		s.mu.Unlock()
	}
	return total
}

func (t *table[K, V]) clear() {
	for _, s := range t.shards {
		s.mu.Lock()
		s.entries = make(map[K]*entry[K, V], s.maxEntries)
		s.head = nil
		s.tail = nil
		s.mu.Unlock()
	}
}

func (s *shard[K, V]) addToFront(e *entry[K, V]) {
	e.prev = nil
	e.next = s.head
	if s.head != nil {
		s.head.prev = e
	}
	s.head = e
	if s.tail == nil {
		s.tail = e
	}
}

func (s *shard[K, V]) moveToFront(e *entry[K, V]) {
	if e == s.head {
		return
	}
	s.remove(e)
	s.addToFront(e)
}

// remove unlinks e from the list; the map is left alone.
func (s *shard[K, V]) remove(e *entry[K, V]) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		s.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		s.tail = e.prev
	}
	e.prev = nil
	e.next = nil
}
