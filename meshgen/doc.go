// Package meshgen turns text into extruded triangle meshes.
//
// The pipeline per line of text is: HarfBuzz shaping (go-text/typesetting),
// glyph outline extraction (sfnt), curve flattening by de Casteljau
// subdivision, nonzero-winding fill triangulation by trapezoid sweep and,
// for a positive depth, extrusion of side walls along the outline.
//
// Coordinates are y up. The first baseline starts at the origin and later
// lines move down by the font line height times the line spacing. The front
// face lies at z = 0 facing +Z; the back face at z = -depth faces -Z.
//
// Shaped lines and per-glyph meshes are cached in a [meshcache.Cache]
// shared across calls. Output is deterministic for equal inputs whether or
// not the cache is warm.
package meshgen
