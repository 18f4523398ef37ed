package meshgen

import (
	"errors"
	"fmt"

	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// maxFlattenDepth bounds curve subdivision.
const maxFlattenDepth = 16

type vec2 struct {
	x, y float64
}

// contour is a closed polyline; the last point connects back to the first.
type contour []vec2

// glyphContours returns the flattened outline of gid in em units, y up.
// Glyphs without an outline (spaces) yield no contours.
func glyphContours(sf *sfnt.Font, buf *sfnt.Buffer, gid uint16, upem int, tol float64) ([]contour, error) {
	segs, err := sf.LoadGlyph(buf, sfnt.GlyphIndex(gid), fixed.I(upem), nil)
	if err != nil {
		if errors.Is(err, sfnt.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("meshgen: load glyph %d: %w", gid, err)
	}

	// Segment coordinates are 26.6 font units, y down.
	scale := 1 / (64 * float64(upem))
	pt := func(p fixed.Point26_6) vec2 {
		return vec2{float64(p.X) * scale, -float64(p.Y) * scale}
	}

	var (
		out []contour
		cur contour
	)
	closeContour := func() {
		if c := cleanContour(cur); len(c) >= 3 {
			out = append(out, c)
		}
		cur = nil
	}

	for _, seg := range segs {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			closeContour()
			cur = append(cur, pt(seg.Args[0]))
		case sfnt.SegmentOpLineTo:
			cur = append(cur, pt(seg.Args[0]))
		case sfnt.SegmentOpQuadTo:
			if len(cur) == 0 {
				continue
			}
			cur = flattenQuad(cur, cur[len(cur)-1], pt(seg.Args[0]), pt(seg.Args[1]), tol, 0)
		case sfnt.SegmentOpCubeTo:
			if len(cur) == 0 {
				continue
			}
			cur = flattenCubic(cur, cur[len(cur)-1], pt(seg.Args[0]), pt(seg.Args[1]), pt(seg.Args[2]), tol, 0)
		}
	}
	closeContour()
	return out, nil
}

// flattenQuad appends points approximating the quadratic p0-c-p1, excluding
// p0, by recursive de Casteljau subdivision.
func flattenQuad(dst contour, p0, c, p1 vec2, tol float64, depth int) contour {
	// Deviation of the curve midpoint from the chord midpoint.
	dx := 0.25*p0.x + 0.5*c.x + 0.25*p1.x - 0.5*(p0.x+p1.x)
	dy := 0.25*p0.y + 0.5*c.y + 0.25*p1.y - 0.5*(p0.y+p1.y)
	if dx*dx+dy*dy <= tol*tol || depth >= maxFlattenDepth {
		return append(dst, p1)
	}

	a := mid(p0, c)
	b := mid(c, p1)
	m := mid(a, b)
	dst = flattenQuad(dst, p0, a, m, tol, depth+1)
	return flattenQuad(dst, m, b, p1, tol, depth+1)
}

// flattenCubic appends points approximating the cubic p0-c1-c2-p1,
// excluding p0.
func flattenCubic(dst contour, p0, c1, c2, p1 vec2, tol float64, depth int) contour {
	ux := 3*c1.x - 2*p0.x - p1.x
	uy := 3*c1.y - 2*p0.y - p1.y
	vx := 3*c2.x - p0.x - 2*p1.x
	vy := 3*c2.y - p0.y - 2*p1.y
	if max(ux*ux+uy*uy, vx*vx+vy*vy) <= 16*tol*tol || depth >= maxFlattenDepth {
		return append(dst, p1)
	}

	ab1 := mid(p0, c1)
	ab2 := mid(c1, c2)
	ab3 := mid(c2, p1)
	bc1 := mid(ab1, ab2)
	bc2 := mid(ab2, ab3)
	m := mid(bc1, bc2)
	dst = flattenCubic(dst, p0, ab1, bc1, m, tol, depth+1)
	return flattenCubic(dst, m, bc2, ab3, p1, tol, depth+1)
}

func mid(a, b vec2) vec2 {
	return vec2{0.5 * (a.x + b.x), 0.5 * (a.y + b.y)}
}

// cleanContour drops repeated points, including a closing point equal to
// the first.
func cleanContour(c contour) contour {
	if len(c) == 0 {
		return nil
	}
	out := c[:1]
	for _, p := range c[1:] {
		if p != out[len(out)-1] {
			out = append(out, p)
		}
	}
	for len(out) > 1 && out[len(out)-1] == out[0] {
		out = out[:len(out)-1]
	}
	return out
}

// winding returns the nonzero winding number of p with respect to cs.
func winding(cs []contour, p vec2) int {
	w := 0
	for _, c := range cs {
		for i, a := range c {
			b := c[(i+1)%len(c)]
			if a.y <= p.y {
				if b.y > p.y && side(a, b, p) > 0 {
					w++
				}
			} else if b.y <= p.y && side(a, b, p) < 0 {
				w--
			}
		}
	}
	return w
}

// side is positive when p lies left of the directed line a->b.
func side(a, b, p vec2) float64 {
	return (b.x-a.x)*(p.y-a.y) - (p.x-a.x)*(b.y-a.y)
}
