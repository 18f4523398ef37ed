package world

import "fmt"

// Entity is a stable identifier for one scene object. The low 32 bits are a
// slot index, the high 32 bits the slot generation, so an id is never reused
// for a different object even after its slot is recycled.
type Entity uint64

// newEntity packs an index and generation.
func newEntity(index, generation uint32) Entity {
	return Entity(uint64(generation)<<32 | uint64(index))
}

// Index returns the slot index.
func (e Entity) Index() uint32 { return uint32(e) } //nolint:gosec // low 32 bits by construction

// Generation returns the slot generation.
func (e Entity) Generation() uint32 { return uint32(e >> 32) } //nolint:gosec // high 32 bits by construction

// String returns a debug form such as "4v2".
func (e Entity) String() string {
	return fmt.Sprintf("%dv%d", e.Index(), e.Generation())
}

// Entities allocates entity ids with slot reuse.
//
// Entities is not safe for concurrent use.
type Entities struct {
	generations []uint32
	alive       []bool
	free        []uint32
	count       int
}

// Spawn allocates a new entity id.
func (es *Entities) Spawn() Entity {
	es.count++
	if n := len(es.free); n > 0 {
		idx := es.free[n-1]
		es.free = es.free[:n-1]
		es.alive[idx] = true
		return newEntity(idx, es.generations[idx])
	}
	idx := uint32(len(es.generations)) //nolint:gosec // entity count stays far below 2^32
	es.generations = append(es.generations, 1)
	es.alive = append(es.alive, true)
	return newEntity(idx, 1)
}

// Despawn releases e. It reports false if e is not alive.
func (es *Entities) Despawn(e Entity) bool {
	if !es.Alive(e) {
		return false
	}
	idx := e.Index()
	es.alive[idx] = false
	es.generations[idx]++
	es.free = append(es.free, idx)
	es.count--
	return true
}

// Alive reports whether e is a live entity.
func (es *Entities) Alive(e Entity) bool {
	idx := e.Index()
	if int(idx) >= len(es.generations) {
		return false
	}
	return es.alive[idx] && es.generations[idx] == e.Generation()
}

// Len returns the number of live entities.
func (es *Entities) Len() int { return es.count }
