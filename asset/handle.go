package asset

import "strconv"

// ID identifies an asset within one Store. The zero ID is never allocated.
type ID uint64

// Handle is a typed reference to an asset of type T.
// The zero Handle is invalid and never resolves.
type Handle[T any] struct {
	id ID
}

// NewHandle wraps a raw ID. It is mostly useful for tests and for
// deserializing references; stores allocate handles with Reserve or Add.
func NewHandle[T any](id ID) Handle[T] {
	return Handle[T]{id: id}
}

// ID returns the raw identifier.
func (h Handle[T]) ID() ID { return h.id }

// IsValid reports whether the handle was allocated by a store.
func (h Handle[T]) IsValid() bool { return h.id != 0 }

// String returns a short debug form such as "asset#12".
func (h Handle[T]) String() string {
	if h.id == 0 {
		return "asset#none"
	}
	return "asset#" + strconv.FormatUint(uint64(h.id), 10)
}
