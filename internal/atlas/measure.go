package atlas

import (
	"fmt"
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Glyph is the measurement of a single codepoint at the atlas scale.
type Glyph struct {
	Rune  rune
	Index sfnt.GlyphIndex

	// Box is the pixel bounding box of the rendered outline relative to the
	// baseline origin, with y growing downwards: Min.Y is non-positive for
	// ink above the baseline, Max.Y positive for descenders. The zero box
	// marks a blank glyph.
	Box image.Rectangle

	// Advance is the horizontal advance width. Cell placement does not use
	// it, but consumers laying out text from the atlas do.
	Advance fixed.Int26_6
}

// Metrics holds the maxima over all measured glyphs. Cell geometry derives
// from MaxWidth, MaxAscent and MaxDescent; MaxHeight is the largest single
// glyph height, which the ascent/descent sum always covers.
type Metrics struct {
	MaxWidth   int
	MaxHeight  int
	MaxAscent  int
	MaxDescent int
}

func (cvt *Converter) measureGlyph(r rune) (Glyph, error) {
	x, err := cvt.glyphIndex(r)
	if err != nil {
		return Glyph{}, err
	}
	adv, err := cvt.font.GlyphAdvance(&cvt.buf, x, cvt.ppem, font.HintingNone)
	if err != nil {
		return Glyph{}, fmt.Errorf("advance of %q: %w", r, err)
	}
	segments, err := cvt.font.LoadGlyph(&cvt.buf, x, cvt.ppem, nil)
	if err != nil {
		return Glyph{}, fmt.Errorf("load glyph %q: %w", r, err)
	}
	g := Glyph{Rune: r, Index: x, Advance: adv}
	bounds := segments.Bounds()
	if bounds.Empty() {
		return g, nil
	}
	// Snap the fractional outline bounds outwards to whole pixels.
	g.Box = image.Rect(
		bounds.Min.X.Floor(), bounds.Min.Y.Floor(),
		bounds.Max.X.Ceil(), bounds.Max.Y.Ceil(),
	)
	return g, nil
}

// Measure resolves and measures every configured codepoint and reduces the
// per-glyph boxes to the font-wide maxima.
func (cvt *Converter) Measure() ([]Glyph, Metrics, error) {
	glyphs := make([]Glyph, 0, len(cvt.cfg.Codepoints))
	var m Metrics
	for _, r := range cvt.cfg.Codepoints {
		g, err := cvt.measureGlyph(r)
		if err != nil {
			return nil, Metrics{}, err
		}
		glyphs = append(glyphs, g)
		m.MaxWidth = max(m.MaxWidth, g.Box.Dx())
		m.MaxHeight = max(m.MaxHeight, g.Box.Dy())
		m.MaxAscent = max(m.MaxAscent, -g.Box.Min.Y)
		m.MaxDescent = max(m.MaxDescent, g.Box.Max.Y)
	}
	return glyphs, m, nil
}
