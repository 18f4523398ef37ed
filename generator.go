package textmesh

import (
	"github.com/gogpu/textmesh/asset"
	"github.com/gogpu/textmesh/font"
	"github.com/gogpu/textmesh/mesh"
	"github.com/gogpu/textmesh/meshcache"
	"github.com/gogpu/textmesh/meshgen"
)

// FontStore resolves font handles. *asset.Store[*font.Font] implements it.
type FontStore interface {
	Get(h asset.Handle[*font.Font]) (*font.Font, bool)
}

// FontEvents is the event side of a font store.
// *asset.Store[*font.Font] implements it.
type FontEvents interface {
	NewReader() *asset.EventReader
	Read(r *asset.EventReader) []asset.Event[*font.Font]
}

// Generator turns a declaration and a resolved font into mesh buffers.
// The cache is shared by every call of a pass.
type Generator interface {
	Generate(tm TextMesh, f *font.Font, c *meshcache.Cache) (mesh.Data, error)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(tm TextMesh, f *font.Font, c *meshcache.Cache) (mesh.Data, error)

// Generate calls fn.
func (fn GeneratorFunc) Generate(tm TextMesh, f *font.Font, c *meshcache.Cache) (mesh.Data, error) {
	return fn(tm, f, c)
}

// MeshGenerator is the default Generator, backed by meshgen.
type MeshGenerator struct {
	gen *meshgen.Generator
}

// NewMeshGenerator creates a MeshGenerator.
func NewMeshGenerator() *MeshGenerator {
	return &MeshGenerator{gen: meshgen.New()}
}

// Generate implements Generator.
func (g *MeshGenerator) Generate(tm TextMesh, f *font.Font, c *meshcache.Cache) (mesh.Data, error) {
	size := tm.Style.Size
	if size == 0 {
		size = 1
	}
	return g.gen.Generate(meshgen.Params{
		Text:        tm.Text,
		Size:        size,
		Depth:       tm.Style.Depth,
		Quality:     tm.Style.Quality,
		LineSpacing: tm.Style.LineSpacing,
	}, f, c)
}
