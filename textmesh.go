package textmesh

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/textmesh/asset"
	"github.com/gogpu/textmesh/font"
	"github.com/gogpu/textmesh/meshgen"
)

// Style describes how a text object is turned into geometry.
type Style struct {
	// Font references a font in the font store.
	Font asset.Handle[*font.Font]

	// Color is the base color of the material created with the mesh.
	Color gputypes.Color

	// Size is the em height in world units. Zero means 1.
	Size float32

	// Depth is the extrusion depth in world units. Zero gives flat text.
	Depth float32

	// Quality is the curve flattening tolerance.
	Quality meshgen.Quality

	// LineSpacing multiplies the font line height. Zero means 1.
	LineSpacing float32
}

// DefaultStyle returns white, one unit high, flat text in f.
func DefaultStyle(f asset.Handle[*font.Font]) Style {
	return Style{
		Font:        f,
		Color:       gputypes.Color{R: 1, G: 1, B: 1, A: 1},
		Size:        1,
		Quality:     meshgen.QualityMedium,
		LineSpacing: 1,
	}
}

// TextMesh is the declared content of a text object.
type TextMesh struct {
	Text  string
	Style Style
}

// NewTextMesh returns text in the default style of f.
func NewTextMesh(text string, f asset.Handle[*font.Font]) TextMesh {
	return TextMesh{Text: text, Style: DefaultStyle(f)}
}
