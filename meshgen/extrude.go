package meshgen

import (
	"math"

	"github.com/gogpu/textmesh/meshcache"
)

// probeDistance is how far beside an outline edge the fill is sampled to
// decide which way the side wall faces, in em units.
const probeDistance = 1e-4

// buildGlyphMesh triangulates the fill of cs and, for depth > 0, adds a back
// face and side walls. All coordinates are em units.
func buildGlyphMesh(cs []contour, depth float64) *meshcache.GlyphMesh {
	m := &meshcache.GlyphMesh{}
	if len(cs) == 0 {
		return m
	}

	fill := fillTriangles(cs)

	// Front face, shared vertices.
	index := make(map[vec2]uint32, len(fill))
	var front []uint32
	for _, p := range fill {
		idx, ok := index[p]
		if !ok {
			idx = uint32(len(m.Positions)) //nolint:gosec // glyph vertex counts are small
			index[p] = idx
			m.Positions = append(m.Positions, [3]float32{float32(p.x), float32(p.y), 0})
			m.Normals = append(m.Normals, [3]float32{0, 0, 1})
		}
		front = append(front, idx)
	}
	m.Indices = append(m.Indices, front...)

	if depth <= 0 {
		return m
	}

	// Back face mirrors the front with reversed winding.
	z := float32(-depth)
	base := uint32(len(m.Positions)) //nolint:gosec // glyph vertex counts are small
	n := len(m.Positions)
	for i := range n {
		p := m.Positions[i]
		m.Positions = append(m.Positions, [3]float32{p[0], p[1], z})
		m.Normals = append(m.Normals, [3]float32{0, 0, -1})
	}
	for i := 0; i+2 < len(front); i += 3 {
		m.Indices = append(m.Indices, base+front[i], base+front[i+2], base+front[i+1])
	}

	for _, c := range cs {
		for i, a := range c {
			appendSideWall(m, cs, a, c[(i+1)%len(c)], z)
		}
	}
	return m
}

// appendSideWall adds the quad extruded from outline edge a->b with its own
// four vertices so that the wall has flat shading.
func appendSideWall(m *meshcache.GlyphMesh, cs []contour, a, b vec2, z float32) {
	dx, dy := b.x-a.x, b.y-a.y
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}
	// Right-hand normal of a->b, flipped if it points into the fill.
	nx, ny := dy/l, -dx/l
	mx, my := 0.5*(a.x+b.x), 0.5*(a.y+b.y)
	outward := winding(cs, vec2{mx + nx*probeDistance, my + ny*probeDistance}) == 0
	if !outward {
		nx, ny = -nx, -ny
	}

	normal := [3]float32{float32(nx), float32(ny), 0}
	f0 := uint32(len(m.Positions)) //nolint:gosec // glyph vertex counts are small
	f1, b1, b0 := f0+1, f0+2, f0+3
	m.Positions = append(m.Positions,
		[3]float32{float32(a.x), float32(a.y), 0},
		[3]float32{float32(b.x), float32(b.y), 0},
		[3]float32{float32(b.x), float32(b.y), z},
		[3]float32{float32(a.x), float32(a.y), z},
	)
	m.Normals = append(m.Normals, normal, normal, normal, normal)

	// (f0, b0, f1) faces along the right-hand normal.
	if outward {
		m.Indices = append(m.Indices, f0, b0, f1, f1, b0, b1)
	} else {
		m.Indices = append(m.Indices, f0, f1, b0, f1, b1, b0)
	}
}
