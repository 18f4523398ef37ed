package mesh

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/gputypes"
)

// Vertex attribute locations used by VertexLayout.
const (
	LocationPosition = 0
	LocationNormal   = 1
	LocationUV       = 2
)

// VertexStride is the byte size of one interleaved vertex:
// position (3 x f32) + normal (3 x f32) + uv (2 x f32).
const VertexStride = 32

// Mesh is a renderable triangle mesh.
//
// The zero value is not usable; create meshes with New.
type Mesh struct {
	Topology    gputypes.PrimitiveTopology
	IndexFormat gputypes.IndexFormat

	Positions [][3]float32
	Normals   [][3]float32
	UVs       [][2]float32
	Indices   []uint32

	revision uint64
}

// New returns an empty triangle-list mesh with uint32 indices.
func New() *Mesh {
	return &Mesh{
		Topology:    gputypes.PrimitiveTopologyTriangleList,
		IndexFormat: gputypes.IndexFormatUint32,
	}
}

// Apply replaces the four vertex buffers with d. The mesh keeps its identity,
// topology and index format; only the buffers and the revision change.
func (m *Mesh) Apply(d Data) {
	m.Positions = d.Positions
	m.Normals = d.Normals
	m.UVs = d.UVs
	m.Indices = d.Indices
	m.revision++
}

// Data returns the current buffers. The slices are shared with the mesh.
func (m *Mesh) Data() Data {
	return Data{
		Positions: m.Positions,
		Normals:   m.Normals,
		UVs:       m.UVs,
		Indices:   m.Indices,
	}
}

// Revision counts Apply calls. Renderers compare it to skip re-uploads.
func (m *Mesh) Revision() uint64 { return m.revision }

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int { return len(m.Positions) }

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int { return len(m.Indices) / 3 }

// Bounds returns the axis-aligned bounding box. ok is false for an empty mesh.
func (m *Mesh) Bounds() (lo, hi [3]float32, ok bool) {
	return bounds(m.Positions)
}

// VertexLayout describes the buffer produced by Interleaved.
func (m *Mesh) VertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: VertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x3, Offset: 0, ShaderLocation: LocationPosition},
				{Format: gputypes.VertexFormatFloat32x3, Offset: 12, ShaderLocation: LocationNormal},
				{Format: gputypes.VertexFormatFloat32x2, Offset: 24, ShaderLocation: LocationUV},
			},
		},
	}
}

// Interleaved packs the vertex buffers little-endian in VertexLayout order.
// Missing normals or uvs are written as zero.
func (m *Mesh) Interleaved() []byte {
	buf := make([]byte, len(m.Positions)*VertexStride)
	put := func(off int, v float32) {
		binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(v))
	}
	for i, p := range m.Positions {
		off := i * VertexStride
		put(off, p[0])
		put(off+4, p[1])
		put(off+8, p[2])
		if i < len(m.Normals) {
			n := m.Normals[i]
			put(off+12, n[0])
			put(off+16, n[1])
			put(off+20, n[2])
		}
		if i < len(m.UVs) {
			uv := m.UVs[i]
			put(off+24, uv[0])
			put(off+28, uv[1])
		}
	}
	return buf
}
