package asset

// EventKind is the kind of lifecycle change an Event reports.
type EventKind uint8

const (
	// Created reports that a value was stored behind a handle that had none.
	Created EventKind = iota + 1

	// Modified reports that a stored value was replaced or changed in place.
	Modified

	// Removed reports that a stored value was removed.
	Removed
)

// String returns the event kind name.
func (k EventKind) String() string {
	switch k {
	case Created:
		return "Created"
	case Modified:
		return "Modified"
	case Removed:
		return "Removed"
	default:
		return "Unknown"
	}
}

// Event is a lifecycle notification for one asset.
type Event[T any] struct {
	Kind   EventKind
	Handle Handle[T]
}

// sequenced is an event with its position in the store's event stream.
type sequenced[T any] struct {
	seq   uint64
	event Event[T]
}

// EventReader is a cursor into a store's event stream.
// A reader must only be used with the store that created it.
type EventReader struct {
	next uint64
}
