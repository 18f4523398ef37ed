package world

// Tick is a point on a Clock. Zero means "never".
type Tick uint64

// Clock hands out change ticks.
//
// Clock is not safe for concurrent use.
type Clock struct {
	now Tick
}

// Now returns the most recently issued tick.
func (c *Clock) Now() Tick { return c.now }

// Advance issues and returns a new tick.
func (c *Clock) Advance() Tick {
	c.now++
	return c.now
}

// Tracked is a value together with the tick of its last write.
type Tracked[T any] struct {
	value   T
	changed Tick
}

// NewTracked returns a cell holding v, stamped as freshly written.
func NewTracked[T any](c *Clock, v T) Tracked[T] {
	return Tracked[T]{value: v, changed: c.Advance()}
}

// Get returns the current value.
func (t *Tracked[T]) Get() T { return t.value }

// Changed returns the tick of the last write.
func (t *Tracked[T]) Changed() Tick { return t.changed }

// ChangedSince reports whether the cell was written after tick.
func (t *Tracked[T]) ChangedSince(tick Tick) bool { return t.changed > tick }

// Set writes v and stamps the cell, even if v equals the current value.
func (t *Tracked[T]) Set(c *Clock, v T) {
	t.value = v
	t.changed = c.Advance()
}

// Mutate applies fn to the value in place and stamps the cell.
func (t *Tracked[T]) Mutate(c *Clock, fn func(*T)) {
	fn(&t.value)
	t.changed = c.Advance()
}

// SetIfChanged writes v only if it differs from the current value and
// reports whether it did. Identical writes leave the stamp untouched, so
// repeated notifications do not look like changes.
func SetIfChanged[T comparable](t *Tracked[T], c *Clock, v T) bool {
	if t.value == v {
		return false
	}
	t.Set(c, v)
	return true
}
