package mesh

import "errors"

var (
	// ErrMismatchedBuffers is returned when per-vertex buffers differ in length.
	ErrMismatchedBuffers = errors.New("mesh: per-vertex buffers differ in length")

	// ErrIndexCount is returned when the index count is not a multiple of 3.
	ErrIndexCount = errors.New("mesh: index count is not a multiple of 3")

	// ErrIndexRange is returned when an index points past the vertex buffers.
	ErrIndexRange = errors.New("mesh: index out of range")
)
