package meshgen

import (
	"github.com/go-text/typesetting/di"
	gotext "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/textmesh/font"
	"github.com/gogpu/textmesh/meshcache"
)

// shapeLine shapes one line left to right. Positions and advances are in em
// units. Shaping runs at a size of one em per font unit so that HarfBuzz
// output maps directly back to design units.
func shapeLine(hb *shaping.HarfbuzzShaper, f *font.Font, text string) *meshcache.ShapedLine {
	runes := []rune(text)
	if len(runes) == 0 {
		return &meshcache.ShapedLine{}
	}

	upem := f.UnitsPerEm()
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      gotext.NewFace(f.Shaping()),
		Size:      fixed.I(upem),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	}
	out := hb.Shape(input)

	scale := float32(1) / (64 * float32(upem))
	line := &meshcache.ShapedLine{Glyphs: make([]meshcache.ShapedGlyph, 0, len(out.Glyphs))}
	var pen float32
	for _, g := range out.Glyphs {
		adv := float32(g.Advance) * scale
		line.Glyphs = append(line.Glyphs, meshcache.ShapedGlyph{
			GID:     uint16(g.GlyphID), //nolint:gosec // sfnt glyph ids are 16-bit
			X:       pen + float32(g.XOffset)*scale,
			Y:       float32(g.YOffset) * scale,
			Advance: adv,
		})
		pen += adv
	}
	line.Advance = pen
	return line
}

// detectScript returns the script of the first non-space rune.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}
