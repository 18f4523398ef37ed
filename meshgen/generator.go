package meshgen

import (
	"math"
	"strings"
	"sync"

	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/textmesh/font"
	"github.com/gogpu/textmesh/internal/logging"
	"github.com/gogpu/textmesh/mesh"
	"github.com/gogpu/textmesh/meshcache"
)

// Params describe the text to generate.
type Params struct {
	Text string

	// Size is the em height in world units.
	Size float32

	// Depth is the extrusion depth in world units. Zero produces a single
	// front face.
	Depth float32

	Quality Quality

	// LineSpacing multiplies the font line height. Non-positive means 1.
	LineSpacing float32
}

// Generator builds text meshes.
//
// Generator is safe for concurrent use.
type Generator struct {
	shapers sync.Pool
	buffers sync.Pool
}

// New creates a generator.
func New() *Generator {
	return &Generator{
		shapers: sync.Pool{New: func() any { return &shaping.HarfbuzzShaper{} }},
		buffers: sync.Pool{New: func() any { return &sfnt.Buffer{} }},
	}
}

// Generate builds the mesh for p using f. c may be nil, in which case
// nothing is cached.
func (g *Generator) Generate(p Params, f *font.Font, c *meshcache.Cache) (mesh.Data, error) {
	if f == nil {
		return mesh.Data{}, ErrNilFont
	}
	if !(p.Size > 0) || math.IsInf(float64(p.Size), 0) {
		return mesh.Data{}, ErrInvalidSize
	}
	if !(p.Depth >= 0) || math.IsInf(float64(p.Depth), 0) {
		return mesh.Data{}, ErrInvalidDepth
	}

	spacing := p.LineSpacing
	if !(spacing > 0) {
		spacing = 1
	}
	tol := p.Quality.Tolerance()
	depthEm := p.Depth / p.Size
	lineHeight := f.Metrics().LineHeight * spacing

	var out mesh.Data
	text := norm.NFC.String(p.Text)
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		shaped := g.line(f, line, c)
		baseline := -float32(i) * lineHeight
		for _, sg := range shaped.Glyphs {
			gm, err := g.glyph(f, sg.GID, depthEm, tol, c)
			if err != nil {
				return mesh.Data{}, err
			}
			appendGlyph(&out, gm, sg.X, baseline+sg.Y, p.Size)
		}
	}
	planarUVs(&out)

	logging.Logger().Debug("text mesh generated",
		"font", f.Name(),
		"chars", len(p.Text),
		"vertices", out.VertexCount(),
		"triangles", out.TriangleCount())
	return out, nil
}

func (g *Generator) line(f *font.Font, text string, c *meshcache.Cache) *meshcache.ShapedLine {
	key := meshcache.LineKey{FontID: f.ID(), Text: text}
	if c != nil {
		if l, ok := c.Line(key); ok {
			return l
		}
	}

	hb := g.shapers.Get().(*shaping.HarfbuzzShaper)
	l := shapeLine(hb, f, text)
	g.shapers.Put(hb)

	if c != nil {
		c.SetLine(key, l)
	}
	return l
}

func (g *Generator) glyph(f *font.Font, gid uint16, depthEm, tol float32, c *meshcache.Cache) (*meshcache.GlyphMesh, error) {
	key := meshcache.NewGlyphKey(f.ID(), gid, depthEm, tol)
	if c != nil {
		if m, ok := c.Glyph(key); ok {
			return m, nil
		}
	}

	buf := g.buffers.Get().(*sfnt.Buffer)
	cs, err := glyphContours(f.Outlines(), buf, gid, f.UnitsPerEm(), float64(tol))
	g.buffers.Put(buf)
	if err != nil {
		return nil, err
	}

	m := buildGlyphMesh(cs, float64(depthEm))
	if c != nil {
		c.SetGlyph(key, m)
	}
	return m, nil
}

// appendGlyph places an em-unit glyph mesh at (x, y) em and scales it to
// world units. Depth is scaled too, so the back face lands at -Depth.
func appendGlyph(out *mesh.Data, gm *meshcache.GlyphMesh, x, y, size float32) {
	if len(gm.Indices) == 0 {
		return
	}
	base := uint32(len(out.Positions)) //nolint:gosec // mesh vertex counts fit uint32
	for _, p := range gm.Positions {
		out.Positions = append(out.Positions, [3]float32{
			(p[0] + x) * size,
			(p[1] + y) * size,
			p[2] * size,
		})
	}
	out.Normals = append(out.Normals, gm.Normals...)
	for _, idx := range gm.Indices {
		out.Indices = append(out.Indices, base+idx)
	}
}

// planarUVs projects positions onto the xy bounds of the whole text.
func planarUVs(d *mesh.Data) {
	lo, hi, ok := d.Bounds()
	if !ok {
		return
	}
	w, h := hi[0]-lo[0], hi[1]-lo[1]
	d.UVs = make([][2]float32, len(d.Positions))
	for i, p := range d.Positions {
		var u, v float32
		if w > 0 {
			u = (p[0] - lo[0]) / w
		}
		if h > 0 {
			v = (p[1] - lo[1]) / h
		}
		d.UVs[i] = [2]float32{u, v}
	}
}
