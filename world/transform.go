package world

// Transform places an object: translation, rotation as a unit quaternion
// (x, y, z, w) and per-axis scale.
type Transform struct {
	Translation [3]float32
	Rotation    [4]float32
	Scale       [3]float32
}

// IdentityTransform returns a transform that leaves points unchanged.
func IdentityTransform() Transform {
	return Transform{
		Rotation: [4]float32{0, 0, 0, 1},
		Scale:    [3]float32{1, 1, 1},
	}
}

// FromTranslation returns an identity transform moved to (x, y, z).
func FromTranslation(x, y, z float32) Transform {
	t := IdentityTransform()
	t.Translation = [3]float32{x, y, z}
	return t
}

// Matrix returns the column-major 4x4 matrix T * R * S.
func (t Transform) Matrix() [16]float32 {
	x, y, z, w := t.Rotation[0], t.Rotation[1], t.Rotation[2], t.Rotation[3]
	sx, sy, sz := t.Scale[0], t.Scale[1], t.Scale[2]

	xx, yy, zz := x*x, y*y, z*z
	xy, xz, yz := x*y, x*z, y*z
	wx, wy, wz := w*x, w*y, w*z

	return [16]float32{
		(1 - 2*(yy+zz)) * sx, 2 * (xy + wz) * sx, 2 * (xz - wy) * sx, 0,
		2 * (xy - wz) * sy, (1 - 2*(xx+zz)) * sy, 2 * (yz + wx) * sy, 0,
		2 * (xz + wy) * sz, 2 * (yz - wx) * sz, (1 - 2*(xx+yy)) * sz, 0,
		t.Translation[0], t.Translation[1], t.Translation[2], 1,
	}
}

// GlobalTransform is the resolved world matrix of an object (column-major).
type GlobalTransform struct {
	Matrix [16]float32
}

// IdentityGlobal returns the identity world matrix.
func IdentityGlobal() GlobalTransform {
	return GlobalTransform{Matrix: [16]float32{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}}
}

// GlobalFrom resolves a root-level transform.
func GlobalFrom(t Transform) GlobalTransform {
	return GlobalTransform{Matrix: t.Matrix()}
}

// TransformPoint maps p from object space to world space.
func (g GlobalTransform) TransformPoint(p [3]float32) [3]float32 {
	m := &g.Matrix
	return [3]float32{
		m[0]*p[0] + m[4]*p[1] + m[8]*p[2] + m[12],
		m[1]*p[0] + m[5]*p[1] + m[9]*p[2] + m[13],
		m[2]*p[0] + m[6]*p[1] + m[10]*p[2] + m[14],
	}
}

// TransformVector maps direction v without translation. The result is not
// renormalized.
func (g GlobalTransform) TransformVector(v [3]float32) [3]float32 {
	m := &g.Matrix
	return [3]float32{
		m[0]*v[0] + m[4]*v[1] + m[8]*v[2],
		m[1]*v[0] + m[5]*v[1] + m[9]*v[2],
		m[2]*v[0] + m[6]*v[1] + m[10]*v[2],
	}
}

// TransformNormal maps surface normal n by the inverse transpose of the
// linear part, so normals stay perpendicular under non-uniform scale. The
// result is not renormalized and is zero for a singular transform.
func (g GlobalTransform) TransformNormal(n [3]float32) [3]float32 {
	m := &g.Matrix
	a := [3]float32{m[0], m[1], m[2]}
	b := [3]float32{m[4], m[5], m[6]}
	c := [3]float32{m[8], m[9], m[10]}

	// Columns of the cofactor matrix, which is det times the inverse transpose.
	bc, ca, ab := cross(b, c), cross(c, a), cross(a, b)
	out := [3]float32{
		bc[0]*n[0] + ca[0]*n[1] + ab[0]*n[2],
		bc[1]*n[0] + ca[1]*n[1] + ab[1]*n[2],
		bc[2]*n[0] + ca[2]*n[1] + ab[2]*n[2],
	}
	if a[0]*bc[0]+a[1]*bc[1]+a[2]*bc[2] < 0 {
		out = [3]float32{-out[0], -out[1], -out[2]}
	}
	return out
}

func cross(u, v [3]float32) [3]float32 {
	return [3]float32{
		u[1]*v[2] - u[2]*v[1],
		u[2]*v[0] - u[0]*v[2],
		u[0]*v[1] - u[1]*v[0],
	}
}

// Visibility controls whether an object is drawn.
type Visibility uint8

const (
	// VisibilityInherited follows the parent; root objects are visible.
	VisibilityInherited Visibility = iota

	// VisibilityVisible forces the object visible.
	VisibilityVisible

	// VisibilityHidden hides the object.
	VisibilityHidden
)

// String returns the visibility name.
func (v Visibility) String() string {
	switch v {
	case VisibilityInherited:
		return "Inherited"
	case VisibilityVisible:
		return "Visible"
	case VisibilityHidden:
		return "Hidden"
	default:
		return "Unknown"
	}
}
