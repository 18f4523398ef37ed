package meshgen

import (
	"cmp"
	"math"
	"slices"
)

// minBand is the thinnest band the sweep triangulates.
const minBand = 1e-12

// edge is a non-horizontal outline segment stored bottom to top.
type edge struct {
	x0, y0, x1, y1 float64
	// dir is +1 for an upward segment in the outline, -1 for downward.
	dir int
}

func (e *edge) xAt(y float64) float64 {
	t := (y - e.y0) / (e.y1 - e.y0)
	return e.x0 + t*(e.x1-e.x0)
}

// bandEdge is an edge clipped to one band.
type bandEdge struct {
	xa, xb, xm float64
	dir        int
}

// fillTriangles triangulates the nonzero-winding interior of cs by sweeping
// horizontal bands between every vertex height and every edge crossing.
// Inside each band the active edges do not cross, so the filled spans are
// trapezoids. Triangles are returned as consecutive vertex triples,
// counter-clockwise with y up.
func fillTriangles(cs []contour) []vec2 {
	var edges []edge
	var ys []float64
	for _, c := range cs {
		for i, a := range c {
			b := c[(i+1)%len(c)]
			ys = append(ys, a.y)
			switch {
			case a.y < b.y:
				edges = append(edges, edge{a.x, a.y, b.x, b.y, 1})
			case a.y > b.y:
				edges = append(edges, edge{b.x, b.y, a.x, a.y, -1})
			}
		}
	}
	if len(edges) == 0 {
		return nil
	}
	ys = append(ys, crossings(edges)...)
	slices.Sort(ys)
	ys = slices.CompactFunc(ys, func(a, b float64) bool { return math.Abs(a-b) < minBand })

	var (
		tris   []vec2
		active []bandEdge
	)
	for i := 0; i+1 < len(ys); i++ {
		ya, yb := ys[i], ys[i+1]
		if yb-ya < minBand {
			continue
		}
		ym := 0.5 * (ya + yb)

		active = active[:0]
		for k := range edges {
			e := &edges[k]
			if e.y0 > ym || e.y1 < ym {
				continue
			}
			active = append(active, bandEdge{
				xa:  e.xAt(ya),
				xb:  e.xAt(yb),
				xm:  e.xAt(ym),
				dir: e.dir,
			})
		}
		slices.SortFunc(active, func(a, b bandEdge) int {
			if c := cmp.Compare(a.xm, b.xm); c != 0 {
				return c
			}
			return cmp.Compare(a.dir, b.dir)
		})

		w := 0
		var left bandEdge
		for _, e := range active {
			prev := w
			w += e.dir
			switch {
			case prev == 0 && w != 0:
				left = e
			case prev != 0 && w == 0:
				tris = appendTrapezoid(tris, left, e, ya, yb)
			}
		}
	}
	return tris
}

// appendTrapezoid emits the span between l and r as up to two triangles,
// skipping degenerate ones.
func appendTrapezoid(tris []vec2, l, r bandEdge, ya, yb float64) []vec2 {
	bl := vec2{l.xa, ya}
	br := vec2{r.xa, ya}
	tr := vec2{r.xb, yb}
	tl := vec2{l.xb, yb}
	if area2(bl, br, tr) > minBand*minBand {
		tris = append(tris, bl, br, tr)
	}
	if area2(bl, tr, tl) > minBand*minBand {
		tris = append(tris, bl, tr, tl)
	}
	return tris
}

// crossings returns the heights at which two edges cross strictly inside
// their common vertical range.
func crossings(edges []edge) []float64 {
	var ys []float64
	for i := range edges {
		a := &edges[i]
		for j := i + 1; j < len(edges); j++ {
			b := &edges[j]
			lo := max(a.y0, b.y0)
			hi := min(a.y1, b.y1)
			if hi-lo < minBand {
				continue
			}
			dlo := a.xAt(lo) - b.xAt(lo)
			dhi := a.xAt(hi) - b.xAt(hi)
			if (dlo < 0 && dhi > 0) || (dlo > 0 && dhi < 0) {
				t := dlo / (dlo - dhi)
				ys = append(ys, lo+t*(hi-lo))
			}
		}
	}
	return ys
}

// area2 is twice the signed area of abc, positive when counter-clockwise.
func area2(a, b, c vec2) float64 {
	return (b.x-a.x)*(c.y-a.y) - (c.x-a.x)*(b.y-a.y)
}
