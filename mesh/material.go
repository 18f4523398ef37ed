package mesh

import "github.com/gogpu/gputypes"

// AlphaMode selects how a material's alpha is treated.
type AlphaMode uint8

const (
	// AlphaOpaque ignores alpha.
	AlphaOpaque AlphaMode = iota

	// AlphaMask discards fragments below a cutoff.
	AlphaMask

	// AlphaBlend blends with what is behind.
	AlphaBlend
)

// String returns the mode name.
func (a AlphaMode) String() string {
	switch a {
	case AlphaOpaque:
		return "Opaque"
	case AlphaMask:
		return "Mask"
	case AlphaBlend:
		return "Blend"
	default:
		return "Unknown"
	}
}

// Material is the surface description attached to a mesh.
type Material struct {
	BaseColor gputypes.Color
	Unlit     bool
	AlphaMode AlphaMode
}

// NewTextMaterial returns an unlit, alpha-blended material of the given color.
func NewTextMaterial(c gputypes.Color) *Material {
	return &Material{BaseColor: c, Unlit: true, AlphaMode: AlphaBlend}
}
