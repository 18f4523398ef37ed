package font

import (
	"bytes"
	"fmt"
	"sync/atomic"

	gotext "github.com/go-text/typesetting/font"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// nextID hands out font ids. Ids are never reused, so caches keyed by id
// cannot confuse a replaced font with its predecessor.
var nextID atomic.Uint64

// Metrics are vertical font metrics in em units.
type Metrics struct {
	Ascent  float32
	Descent float32
	// LineHeight is the recommended baseline-to-baseline distance.
	LineHeight float32
}

// Font is a parsed font ready for shaping and outline extraction.
//
// Font is immutable and safe for concurrent use.
type Font struct {
	id      uint64
	name    string
	data    []byte
	sfnt    *opentype.Font
	shaping *gotext.Font
	upem    int
	metrics Metrics
}

// Parse parses TrueType or OpenType data. name is used for diagnostics;
// when empty the family name from the font is used.
func Parse(name string, data []byte) (*Font, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}

	sf, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("font: parse %q: %w", name, err)
	}
	face, err := gotext.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("font: parse %q for shaping: %w", name, err)
	}

	upem := int(sf.UnitsPerEm())
	if upem <= 0 {
		return nil, fmt.Errorf("font: parse %q: invalid units per em %d", name, upem)
	}

	if name == "" {
		if family, err := sf.Name(nil, sfnt.NameIDFamily); err == nil {
			name = family
		}
	}

	f := &Font{
		id:      nextID.Add(1),
		name:    name,
		data:    data,
		sfnt:    sf,
		shaping: face.Font,
		upem:    upem,
	}

	var buf sfnt.Buffer
	m, err := sf.Metrics(&buf, fixed.I(upem), xfont.HintingNone)
	if err != nil {
		return nil, fmt.Errorf("font: metrics %q: %w", name, err)
	}
	em := float32(upem)
	f.metrics = Metrics{
		Ascent:     fixedToFloat(m.Ascent) / em,
		Descent:    fixedToFloat(m.Descent) / em,
		LineHeight: fixedToFloat(m.Height) / em,
	}
	if f.metrics.LineHeight <= 0 {
		f.metrics.LineHeight = f.metrics.Ascent + f.metrics.Descent
	}
	return f, nil
}

// ID returns the process-unique font id.
func (f *Font) ID() uint64 { return f.id }

// Name returns the name given to Parse or the family name.
func (f *Font) Name() string { return f.name }

// Data returns the raw font bytes. Callers must not modify them.
func (f *Font) Data() []byte { return f.data }

// UnitsPerEm returns the design units per em.
func (f *Font) UnitsPerEm() int { return f.upem }

// Metrics returns vertical metrics in em units.
func (f *Font) Metrics() Metrics { return f.metrics }

// NumGlyphs returns the number of glyphs in the font.
func (f *Font) NumGlyphs() int { return f.sfnt.NumGlyphs() }

// Outlines returns the sfnt view used for glyph outlines. Each goroutine
// must pass its own sfnt.Buffer to its methods.
func (f *Font) Outlines() *sfnt.Font { return f.sfnt }

// Shaping returns the go-text view used for shaping. Faces created from it
// with gotext.NewFace are not safe for concurrent use.
func (f *Font) Shaping() *gotext.Font { return f.shaping }

// String returns a debug form.
func (f *Font) String() string {
	return fmt.Sprintf("font#%d(%s)", f.id, f.name)
}

func fixedToFloat(x fixed.Int26_6) float32 {
	return float32(x) / 64
}
