package font

import "strings"

// LabelMesh is the reference label that publishes a font for mesh text.
const LabelMesh = "mesh"

// Ref is a parsed asset reference "path#label".
type Ref struct {
	Path  string
	Label string
}

// ParseRef splits s at its last '#'. A reference without '#' has an empty
// label.
func ParseRef(s string) Ref {
	i := strings.LastIndexByte(s, '#')
	if i < 0 {
		return Ref{Path: s}
	}
	return Ref{Path: s[:i], Label: s[i+1:]}
}

// IsMesh reports whether the reference carries the mesh label.
func (r Ref) IsMesh() bool { return r.Label == LabelMesh }

// String reassembles the reference.
func (r Ref) String() string {
	if r.Label == "" {
		return r.Path
	}
	return r.Path + "#" + r.Label
}
