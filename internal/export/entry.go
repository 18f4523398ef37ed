package export

import (
	"math"
	"slices"

	"github.com/gogpu/textmesh"
	"github.com/gogpu/textmesh/mesh"
	"github.com/gogpu/textmesh/world"
)

// Entry is the exported geometry of one text object.
type Entry struct {
	Entity  uint64
	Text    string
	Font    string
	Visible bool
	Data    mesh.Data
}

// Collect returns the entries of every object with a resolved mesh, in
// entity order. Geometry is transformed into world space.
func Collect(app *textmesh.App) []Entry {
	var out []Entry
	for _, e := range app.Scene.Entities() {
		o, _ := app.Scene.Get(e)
		m, ok := app.Meshes.Get(o.Mesh)
		if !ok {
			continue
		}

		tm := o.Text()
		name := ""
		if f, ok := app.Fonts.Get(tm.Style.Font); ok {
			name = f.Name()
		}

		out = append(out, Entry{
			Entity:  uint64(e),
			Text:    tm.Text,
			Font:    name,
			Visible: o.Visibility != world.VisibilityHidden,
			Data:    place(m.Data(), o.Global),
		})
	}
	return out
}

// place returns a world-space copy of d; the mesh buffers are shared and
// must not be written.
func place(d mesh.Data, g world.GlobalTransform) mesh.Data {
	out := mesh.Data{
		Positions: make([][3]float32, len(d.Positions)),
		Normals:   make([][3]float32, len(d.Normals)),
		UVs:       slices.Clone(d.UVs),
		Indices:   slices.Clone(d.Indices),
	}
	for i, p := range d.Positions {
		out.Positions[i] = g.TransformPoint(p)
	}
	for i, n := range d.Normals {
		out.Normals[i] = normalize(g.TransformNormal(n))
	}
	return out
}

func normalize(v [3]float32) [3]float32 {
	l := v[0]*v[0] + v[1]*v[1] + v[2]*v[2]
	if l == 0 {
		return v
	}
	inv := float32(1 / math.Sqrt(float64(l)))
	return [3]float32{v[0] * inv, v[1] * inv, v[2] * inv}
}
