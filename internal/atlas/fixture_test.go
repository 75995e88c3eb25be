package atlas

import (
	"bytes"
	"testing"
	"time"

	"seehuhn.de/go/postscript/funit"
	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/cmap"
	"seehuhn.de/go/sfnt/glyf"
	"seehuhn.de/go/sfnt/maxp"
	"seehuhn.de/go/sfnt/os2"
)

// The box font is a synthetic TrueType font whose glyphs are plain filled
// rectangles with exactly known extents. Its ascent plus descent equals its
// units per em, so at FontHeight 128 every outline unit maps to exactly 1/8
// pixel and all glyph boxes come out as whole pixels:
//
//	GID 0  .notdef  empty
//	GID 1  'A'      480x720 units above the baseline  -> 60x90 px
//	GID 2  'g'      440 units wide, 160 below to 400 above -> 55x70 px, 20 px descent
//	GID 3  ' '      empty
const (
	boxUnitsPerEm = 1024
	boxAscent     = 768
	boxDescent    = -256
)

func boxRect(llx, lly, urx, ury funit.Int16) *glyf.Glyph {
	unpacked := &glyf.SimpleUnpacked{
		Contours: []glyf.Contour{
			{
				{X: llx, Y: lly, OnCurve: true},
				{X: llx, Y: ury, OnCurve: true},
				{X: urx, Y: ury, OnCurve: true},
				{X: urx, Y: lly, OnCurve: true},
			},
		},
	}
	return &glyf.Glyph{
		Rect16: funit.Rect16{LLx: llx, LLy: lly, URx: urx, URy: ury},
		Data:   unpacked.Pack(),
	}
}

func buildBoxFont(t *testing.T) []byte {
	t.Helper()

	stamp := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	info := &sfnt.Font{
		FamilyName: "Boxes",
		Weight:     os2.WeightNormal,
		Width:      os2.WidthNormal,
		IsRegular:  true,

		Version:          0x00010000,
		CreationTime:     stamp,
		ModificationTime: stamp,
		PermUse:          os2.PermInstall,

		UnitsPerEm: boxUnitsPerEm,
		Ascent:     boxAscent,
		Descent:    boxDescent,
		LineGap:    0,
		CapHeight:  720,
	}

	glyphs := glyf.Glyphs{
		nil,
		boxRect(0, 0, 480, 720),
		boxRect(0, -160, 440, 400),
		nil,
	}
	widths := make([]funit.Int16, len(glyphs))
	for i := range widths {
		widths[i] = 512
	}
	info.Outlines = &glyf.Outlines{
		Glyphs: glyphs,
		Widths: widths,
		Maxp: &maxp.TTFInfo{
			MaxPoints:   4,
			MaxContours: 1,
			MaxZones:    2,
		},
	}

	subtable := make(cmap.Format4)
	subtable['A'] = 1
	subtable['g'] = 2
	subtable[' '] = 3
	cmapTable := make(cmap.Table)
	cmapTable[cmap.Key{PlatformID: 3, EncodingID: 1}] = subtable.Encode(0)
	info.CMapTable = cmapTable

	var buf bytes.Buffer
	if _, err := info.Write(&buf); err != nil {
		t.Fatalf("assembling the box font failed: %v", err)
	}
	return buf.Bytes()
}

func boxConfig(codepoints []rune) Config {
	return Config{
		FontHeight:   128,
		CharsPerRow:  4,
		RowCount:     4,
		GlyphPadding: 8,
		Codepoints:   codepoints,
	}
}

func newBoxConverter(t *testing.T, codepoints []rune) *Converter {
	t.Helper()
	cvt, err := NewConverterFromBytes(buildBoxFont(t), boxConfig(codepoints))
	if err != nil {
		t.Fatalf("NewConverterFromBytes failed: %v", err)
	}
	return cvt
}
