package meshgen

import (
	"math"
	"testing"
)

func TestQuality_Tolerance(t *testing.T) {
	tests := []struct {
		q    Quality
		want float32
	}{
		{QualityLow, 1.0 / 64},
		{QualityHigh, 1.0 / 1024},
		{0, float32(QualityMedium)},
		{-1, float32(QualityMedium)},
		{Quality(math.NaN()), float32(QualityMedium)},
		{0.01, 0.01},
	}
	for _, tt := range tests {
		if got := tt.q.Tolerance(); got != tt.want {
			t.Errorf("Quality(%v).Tolerance() = %v, want %v", float32(tt.q), got, tt.want)
		}
	}
}

func TestParseQuality(t *testing.T) {
	tests := []struct {
		in      string
		want    Quality
		wantErr bool
	}{
		{"", QualityMedium, false},
		{"low", QualityLow, false},
		{"High", QualityHigh, false},
		{"0.5", 0.5, false},
		{"-1", 0, true},
		{"fine", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseQuality(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseQuality(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseQuality(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
	if QualityLow.String() != "low" || Quality(0.5).String() != "0.5" {
		t.Error("unexpected Quality names")
	}
}

func TestFlattenQuad(t *testing.T) {
	p0, c, p1 := vec2{0, 0}, vec2{0.5, 0}, vec2{1, 0}
	got := flattenQuad(nil, p0, c, p1, 0.01, 0)
	if len(got) != 1 || got[0] != p1 {
		t.Errorf("straight quad flattened to %v, want [p1]", got)
	}

	c = vec2{0.5, 1}
	tol := 0.001
	got = flattenQuad(nil, p0, c, p1, tol, 0)
	if len(got) < 8 {
		t.Errorf("curved quad flattened to only %d points", len(got))
	}
	if got[len(got)-1] != p1 {
		t.Error("flattening must end at the curve end point")
	}
	// The apex of the parabola is at y = 0.5.
	apex := 0.0
	for _, p := range got {
		apex = max(apex, p.y)
	}
	if math.Abs(apex-0.5) > 4*tol {
		t.Errorf("apex = %v, want about 0.5", apex)
	}
}

func TestFlattenCubic_DepthBound(t *testing.T) {
	got := flattenCubic(nil, vec2{0, 0}, vec2{0, 1}, vec2{1, 1}, vec2{1, 0}, 0, 0)
	if len(got) != 1<<maxFlattenDepth {
		t.Errorf("zero tolerance produced %d points, want %d", len(got), 1<<maxFlattenDepth)
	}
}

func TestCleanContour(t *testing.T) {
	c := contour{{0, 0}, {0, 0}, {1, 0}, {1, 1}, {0, 0}}
	got := cleanContour(c)
	want := contour{{0, 0}, {1, 0}, {1, 1}}
	if len(got) != len(want) {
		t.Fatalf("cleanContour = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("cleanContour = %v, want %v", got, want)
		}
	}
}

func square(x0, y0, x1, y1 float64) contour {
	return contour{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}
}

func reversed(c contour) contour {
	out := make(contour, len(c))
	for i, p := range c {
		out[len(c)-1-i] = p
	}
	return out
}

func fillArea(tris []vec2) float64 {
	var a float64
	for i := 0; i+2 < len(tris); i += 3 {
		a += area2(tris[i], tris[i+1], tris[i+2]) / 2
	}
	return a
}

func TestFillTriangles(t *testing.T) {
	tests := []struct {
		name string
		cs   []contour
		want float64
	}{
		{"square", []contour{square(0, 0, 1, 1)}, 1},
		{"clockwise square", []contour{reversed(square(0, 0, 1, 1))}, 1},
		{"square with hole", []contour{square(0, 0, 1, 1), reversed(square(0.25, 0.25, 0.75, 0.75))}, 0.75},
		{"overlapping squares", []contour{square(0, 0, 2, 2), square(1, 1, 3, 3)}, 7},
		{"bowtie", []contour{{{0, 0}, {1, 1}, {1, 0}, {0, 1}}}, 0.5},
		{"triangle", []contour{{{0, 0}, {2, 0}, {1, 2}}}, 2},
		{"degenerate", []contour{{{0, 0}, {1, 0}, {2, 0}}}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tris := fillTriangles(tt.cs)
			if len(tris)%3 != 0 {
				t.Fatalf("vertex count %d not a multiple of 3", len(tris))
			}
			for i := 0; i+2 < len(tris); i += 3 {
				if area2(tris[i], tris[i+1], tris[i+2]) <= 0 {
					t.Fatalf("triangle %d is not counter-clockwise", i/3)
				}
			}
			if got := fillArea(tris); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("area = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWinding(t *testing.T) {
	cs := []contour{square(0, 0, 1, 1), reversed(square(0.25, 0.25, 0.75, 0.75))}
	tests := []struct {
		p    vec2
		want int
	}{
		{vec2{0.1, 0.1}, 1},
		{vec2{0.5, 0.5}, 0},
		{vec2{2, 0.5}, 0},
		{vec2{-1, 0.5}, 0},
	}
	for _, tt := range tests {
		if got := winding(cs, tt.p); got != tt.want {
			t.Errorf("winding(%v) = %d, want %d", tt.p, got, tt.want)
		}
	}
	if got := winding([]contour{reversed(square(0, 0, 1, 1))}, vec2{0.5, 0.5}); got != -1 {
		t.Errorf("clockwise winding = %d, want -1", got)
	}
}

func TestBuildGlyphMesh_Square(t *testing.T) {
	for _, cs := range [][]contour{
		{square(0, 0, 1, 1)},
		{reversed(square(0, 0, 1, 1))},
	} {
		m := buildGlyphMesh(cs, 0.5)
		// 2 front + 2 back + 4 walls x 2 triangles.
		if got := len(m.Indices) / 3; got != 12 {
			t.Errorf("triangles = %d, want 12", got)
		}
		for i, p := range m.Positions {
			n := m.Normals[i]
			if n[2] != 0 {
				if (n[2] > 0) != (p[2] == 0) {
					t.Errorf("vertex %v has cap normal %v on the wrong face", p, n)
				}
				continue
			}
			// Wall normals point away from the square center.
			dx, dy := p[0]-0.5, p[1]-0.5
			if dx*n[0]+dy*n[1] <= 0 {
				t.Errorf("wall vertex %v has inward normal %v", p, n)
			}
		}
		checkOrientation(t, m.Positions, m.Normals, m.Indices)
	}
}

func TestBuildGlyphMesh_Flat(t *testing.T) {
	m := buildGlyphMesh([]contour{square(0, 0, 1, 1)}, 0)
	if len(m.Positions) != 4 || len(m.Indices) != 6 {
		t.Errorf("flat square: %d vertices %d indices, want 4 and 6", len(m.Positions), len(m.Indices))
	}
	if empty := buildGlyphMesh(nil, 1); len(empty.Indices) != 0 {
		t.Error("no contours should give an empty mesh")
	}
}

// checkOrientation verifies that every triangle of noticeable area winds
// counter-clockwise around the normal of its first vertex. Slivers are
// skipped: float32 rounding can flip them.
func checkOrientation(t *testing.T, pos, normals [][3]float32, idx []uint32) {
	t.Helper()
	for i := 0; i+2 < len(idx); i += 3 {
		a, b, c := pos[idx[i]], pos[idx[i+1]], pos[idx[i+2]]
		u := [3]float64{float64(b[0] - a[0]), float64(b[1] - a[1]), float64(b[2] - a[2])}
		v := [3]float64{float64(c[0] - a[0]), float64(c[1] - a[1]), float64(c[2] - a[2])}
		cr := [3]float64{
			u[1]*v[2] - u[2]*v[1],
			u[2]*v[0] - u[0]*v[2],
			u[0]*v[1] - u[1]*v[0],
		}
		l := math.Sqrt(cr[0]*cr[0] + cr[1]*cr[1] + cr[2]*cr[2])
		if l < 1e-5 {
			continue
		}
		n := normals[idx[i]]
		dot := (cr[0]*float64(n[0]) + cr[1]*float64(n[1]) + cr[2]*float64(n[2])) / l
		if dot < 0.99 {
			t.Fatalf("triangle %d faces %v, normal is %v", i/3, cr, n)
		}
	}
}
