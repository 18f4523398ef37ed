package mesh

import "fmt"

// Data is generated triangle-list geometry.
//
// Positions, Normals and UVs are per-vertex and must have equal length.
// Indices refer to vertices, three per triangle.
type Data struct {
	Positions [][3]float32
	Normals   [][3]float32
	UVs       [][2]float32
	Indices   []uint32
}

// VertexCount returns the number of vertices.
func (d *Data) VertexCount() int { return len(d.Positions) }

// TriangleCount returns the number of triangles.
func (d *Data) TriangleCount() int { return len(d.Indices) / 3 }

// IsEmpty reports whether d has no triangles.
func (d *Data) IsEmpty() bool { return len(d.Indices) == 0 }

// Validate checks buffer lengths and index ranges.
func (d *Data) Validate() error {
	n := len(d.Positions)
	if len(d.Normals) != n || len(d.UVs) != n {
		return fmt.Errorf("%w: positions=%d normals=%d uvs=%d",
			ErrMismatchedBuffers, n, len(d.Normals), len(d.UVs))
	}
	if len(d.Indices)%3 != 0 {
		return fmt.Errorf("%w: %d", ErrIndexCount, len(d.Indices))
	}
	for i, idx := range d.Indices {
		if int(idx) >= n {
			return fmt.Errorf("%w: indices[%d]=%d, vertices=%d", ErrIndexRange, i, idx, n)
		}
	}
	return nil
}

// Bounds returns the axis-aligned bounding box of the positions.
// ok is false when there are no vertices.
func (d *Data) Bounds() (lo, hi [3]float32, ok bool) {
	return bounds(d.Positions)
}

func bounds(ps [][3]float32) (lo, hi [3]float32, ok bool) {
	if len(ps) == 0 {
		return lo, hi, false
	}
	lo, hi = ps[0], ps[0]
	for _, p := range ps[1:] {
		for k := range 3 {
			lo[k] = min(lo[k], p[k])
			hi[k] = max(hi[k], p[k])
		}
	}
	return lo, hi, true
}
