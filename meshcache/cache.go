package meshcache

import (
	"hash/fnv"
	"math"
	"sync/atomic"
)

// Config holds configuration for Cache.
type Config struct {
	// MaxGlyphs is the maximum number of cached glyph meshes.
	// Default: 4096
	MaxGlyphs int

	// MaxLines is the maximum number of cached shaped lines.
	// Default: 1024
	MaxLines int

	// FrameLifetime is the number of passes an entry may go unused before
	// Maintain evicts it.
	// Default: 120
	FrameLifetime int
}

// DefaultConfig returns the default cache configuration.
func DefaultConfig() Config {
	return Config{
		MaxGlyphs:     4096,
		MaxLines:      1024,
		FrameLifetime: 120,
	}
}

// GlyphKey identifies one extruded glyph mesh.
type GlyphKey struct {
	FontID uint64
	GID    uint16

	// Depth and Tolerance are float32 bit patterns of the extrusion depth
	// and flattening tolerance, both in em units.
	Depth     uint32
	Tolerance uint32
}

// NewGlyphKey builds a key from em-relative depth and tolerance.
func NewGlyphKey(fontID uint64, gid uint16, depth, tolerance float32) GlyphKey {
	return GlyphKey{
		FontID:    fontID,
		GID:       gid,
		Depth:     math.Float32bits(depth),
		Tolerance: math.Float32bits(tolerance),
	}
}

// GlyphMesh is the geometry of one glyph in em units, origin at the pen
// position, y up. The front face lies at z = 0.
type GlyphMesh struct {
	Positions [][3]float32
	Normals   [][3]float32
	Indices   []uint32
}

// LineKey identifies one shaped line.
type LineKey struct {
	FontID uint64
	Text   string
}

// ShapedGlyph is one positioned glyph of a shaped line, in em units.
type ShapedGlyph struct {
	GID     uint16
	X, Y    float32
	Advance float32
}

// ShapedLine is the shaping result for one line of text.
type ShapedLine struct {
	Glyphs  []ShapedGlyph
	Advance float32
}

// Stats is a snapshot of cache counters.
type Stats struct {
	Hits       uint64
	Misses     uint64
	Evictions  uint64
	Insertions uint64
}

// HitRate returns hits as a percentage of lookups, or 0 with no lookups.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total) * 100
}

type counters struct {
	hits       atomic.Uint64
	misses     atomic.Uint64
	evictions  atomic.Uint64
	insertions atomic.Uint64
}

// Cache is the shared mesh cache handed to generators.
//
// Cache is safe for concurrent use.
type Cache struct {
	config Config
	frame  atomic.Uint64
	stats  counters

	glyphs *table[GlyphKey, *GlyphMesh]
	lines  *table[LineKey, *ShapedLine]
}

// New creates a cache with the default configuration.
func New() *Cache {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates a cache. Non-positive fields take their defaults.
func NewWithConfig(config Config) *Cache {
	def := DefaultConfig()
	if config.MaxGlyphs <= 0 {
		config.MaxGlyphs = def.MaxGlyphs
	}
	if config.MaxLines <= 0 {
		config.MaxLines = def.MaxLines
	}
	if config.FrameLifetime <= 0 {
		config.FrameLifetime = def.FrameLifetime
	}

	c := &Cache{config: config}
	c.glyphs = newTable[GlyphKey, *GlyphMesh](config.MaxGlyphs, hashGlyphKey, &c.frame, &c.stats)
	c.lines = newTable[LineKey, *ShapedLine](config.MaxLines, hashLineKey, &c.frame, &c.stats)
	return c
}

// Config returns the effective configuration.
func (c *Cache) Config() Config { return c.config }

// Glyph returns a cached glyph mesh.
func (c *Cache) Glyph(key GlyphKey) (*GlyphMesh, bool) {
	return c.glyphs.get(key)
}

// SetGlyph stores a glyph mesh. Nil meshes are ignored.
func (c *Cache) SetGlyph(key GlyphKey, m *GlyphMesh) {
	if m == nil {
		return
	}
	c.glyphs.set(key, m)
}

// Line returns a cached shaped line.
func (c *Cache) Line(key LineKey) (*ShapedLine, bool) {
	return c.lines.get(key)
}

// SetLine stores a shaped line. Nil lines are ignored.
func (c *Cache) SetLine(key LineKey, l *ShapedLine) {
	if l == nil {
		return
	}
	c.lines.set(key, l)
}

// Maintain advances the frame counter and evicts entries not used for
// FrameLifetime frames. Call it once per pass.
func (c *Cache) Maintain() {
	frame := c.frame.Add(1)
	lifetime := uint64(c.config.FrameLifetime) //nolint:gosec // validated positive in NewWithConfig
	if frame < lifetime {
		return
	}
	threshold := frame - lifetime
	c.glyphs.maintain(threshold)
	c.lines.maintain(threshold)
}

// Frame returns the current frame number.
func (c *Cache) Frame() uint64 { return c.frame.Load() }

// Len returns the number of cached glyphs and lines.
func (c *Cache) Len() (glyphs, lines int) {
	return c.glyphs.len(), c.lines.len()
}

// Clear drops every entry. Statistics are kept.
func (c *Cache) Clear() {
	c.glyphs.clear()
	c.lines.clear()
}

// Stats returns a snapshot of the counters of both tables.
func (c *Cache) Stats() Stats {
	return Stats{
		Hits:       c.stats.hits.Load(),
		Misses:     c.stats.misses.Load(),
		Evictions:  c.stats.evictions.Load(),
		Insertions: c.stats.insertions.Load(),
	}
}

// ResetStats zeroes the counters.
func (c *Cache) ResetStats() {
	c.stats.hits.Store(0)
	c.stats.misses.Store(0)
	c.stats.evictions.Store(0)
	c.stats.insertions.Store(0)
}

func hashGlyphKey(k GlyphKey) uint64 {
	h := k.FontID
	h = h*31 + uint64(k.GID)
	h = h*31 + uint64(k.Depth)
	h = h*31 + uint64(k.Tolerance)
	return h
}

func hashLineKey(k LineKey) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(k.Text))
	return h.Sum64()*31 + k.FontID
}
