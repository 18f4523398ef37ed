// Package meshcache caches intermediate text geometry between passes.
//
// Two tables are kept: per-glyph extruded meshes in em units, keyed by
// font, glyph, relative depth and flattening tolerance, and shaped lines
// keyed by font and text. Both are sharded LRUs with frame-based eviction:
// call [Cache.Maintain] once per pass and entries unused for
// Config.FrameLifetime passes are dropped.
//
// Cache is safe for concurrent use. Concurrent inserts of the same key are
// last-write-wins; since generation is deterministic the values are equal.
package meshcache
