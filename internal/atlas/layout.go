package atlas

import "image"

// Layout is the cell geometry of the atlas.
type Layout struct {
	// CellWidth and CellHeight are the uniform cell dimensions in pixels.
	CellWidth  int
	CellHeight int

	// Baseline is the y offset of the glyph baseline from the top of each
	// cell.
	Baseline int

	// Columns and Rows give the cell grid, Width and Height the resulting
	// atlas dimensions in pixels.
	Columns int
	Rows    int
	Width   int
	Height  int
}

// ComputeLayout derives the cell geometry from the measured maxima: cells
// are wide enough for the widest glyph and tall enough for the tallest
// ascender above the lowest descender, with padding on every side. All
// cells share one baseline offset.
func ComputeLayout(m Metrics, cfg Config) Layout {
	cw := m.MaxWidth + 2*cfg.GlyphPadding
	ch := m.MaxAscent + m.MaxDescent + 2*cfg.GlyphPadding
	return Layout{
		CellWidth:  cw,
		CellHeight: ch,
		Baseline:   m.MaxAscent + cfg.GlyphPadding,
		Columns:    cfg.CharsPerRow,
		Rows:       cfg.RowCount,
		Width:      cw * cfg.CharsPerRow,
		Height:     ch * cfg.RowCount,
	}
}

// CellRect returns the rectangle of the i-th cell, counting left to right,
// top to bottom.
func (l Layout) CellRect(i int) image.Rectangle {
	x := (i % l.Columns) * l.CellWidth
	y := (i / l.Columns) * l.CellHeight
	return image.Rect(x, y, x+l.CellWidth, y+l.CellHeight)
}
