package atlas

import (
	"fmt"
	"image"
	"image/draw"

	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/vector"

	"github.com/koron/ttf2atlas/internal/grayimg"
)

// rasterize renders a glyph's outline into an 8-bit coverage mask sized to
// its pixel box, shifting the outline so the box's minimum corner lands on
// the mask origin.
func (cvt *Converter) rasterize(g Glyph) (*image.Alpha, error) {
	segments, err := cvt.font.LoadGlyph(&cvt.buf, g.Index, cvt.ppem, nil)
	if err != nil {
		return nil, fmt.Errorf("load glyph %q: %w", g.Rune, err)
	}
	dx := float32(-g.Box.Min.X)
	dy := float32(-g.Box.Min.Y)
	z := vector.NewRasterizer(g.Box.Dx(), g.Box.Dy())
	z.DrawOp = draw.Src
	for _, seg := range segments {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			z.MoveTo(
				dx+float32(seg.Args[0].X)/64, dy+float32(seg.Args[0].Y)/64,
			)
		case sfnt.SegmentOpLineTo:
			z.LineTo(
				dx+float32(seg.Args[0].X)/64, dy+float32(seg.Args[0].Y)/64,
			)
		case sfnt.SegmentOpQuadTo:
			z.QuadTo(
				dx+float32(seg.Args[0].X)/64, dy+float32(seg.Args[0].Y)/64,
				dx+float32(seg.Args[1].X)/64, dy+float32(seg.Args[1].Y)/64,
			)
		case sfnt.SegmentOpCubeTo:
			z.CubeTo(
				dx+float32(seg.Args[0].X)/64, dy+float32(seg.Args[0].Y)/64,
				dx+float32(seg.Args[1].X)/64, dy+float32(seg.Args[1].Y)/64,
				dx+float32(seg.Args[2].X)/64, dy+float32(seg.Args[2].Y)/64,
			)
		}
	}
	mask := image.NewAlpha(image.Rect(0, 0, g.Box.Dx(), g.Box.Dy()))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return mask, nil
}

// Render rasterizes the measured glyphs into a fresh canvas laid out
// according to lay. Each glyph is centered horizontally in its cell and
// placed vertically on the shared baseline. Blank glyphs leave their cell
// untouched, and so do the cells past the end of the codepoint list.
func (cvt *Converter) Render(glyphs []Glyph, lay Layout) (*grayimg.Image, error) {
	canvas := grayimg.New(image.Rect(0, 0, lay.Width, lay.Height))
	for i, g := range glyphs {
		if g.Box.Empty() {
			continue
		}
		mask, err := cvt.rasterize(g)
		if err != nil {
			return nil, err
		}
		cell := lay.CellRect(i)
		at := image.Pt(
			cell.Min.X+(lay.CellWidth-g.Box.Dx())/2,
			cell.Min.Y+lay.Baseline+g.Box.Min.Y,
		)
		dst := image.Rectangle{Min: at, Max: at.Add(g.Box.Size())}
		if !dst.In(cell) {
			return nil, fmt.Errorf("glyph %q box %v overflows cell %d %v", g.Rune, dst, i, cell)
		}
		if err := canvas.DrawAlpha(at, mask); err != nil {
			return nil, fmt.Errorf("glyph %q: %w", g.Rune, err)
		}
	}
	return canvas, nil
}
