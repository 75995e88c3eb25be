// Package atlas renders a fixed set of codepoints from a TrueType font into
// a single grayscale image of uniform cells.
package atlas

import (
	"bufio"
	"errors"
	"fmt"
	"image/png"
	"log/slog"
	"math"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/koron/ttf2atlas/internal/grayimg"
)

// maxFontFileSize is the upper limit for font files accepted by NewConverter.
const maxFontFileSize = 1 << 20

// refPPEM is the probe size used to derive the rendering scale from the
// font's vertical metrics.
const refPPEM = 1024

// Config describes the atlas to generate.
type Config struct {
	// FontHeight is the target line height in pixels: the rendering scale is
	// chosen so that ascent plus descent of the font spans exactly this many
	// pixels.
	FontHeight float64

	// CharsPerRow and RowCount give the dimensions of the cell grid.
	CharsPerRow int
	RowCount    int

	// GlyphPadding is added on every side of each cell, in pixels.
	GlyphPadding int

	// Codepoints lists the characters to render, in cell order. Codepoint 0
	// and codepoints missing from the font map to the font's missing glyph.
	Codepoints []rune
}

func (cfg Config) validate() error {
	if cfg.FontHeight <= 0 {
		return errors.New("font height must be positive")
	}
	if cfg.CharsPerRow <= 0 || cfg.RowCount <= 0 {
		return errors.New("grid dimensions must be positive")
	}
	if cfg.GlyphPadding < 0 {
		return errors.New("glyph padding must not be negative")
	}
	if n, cells := len(cfg.Codepoints), cfg.CharsPerRow*cfg.RowCount; n > cells {
		return fmt.Errorf("%d codepoints do not fit the %dx%d grid (%d cells)",
			n, cfg.CharsPerRow, cfg.RowCount, cells)
	}
	return nil
}

type Converter struct {
	name string
	font *sfnt.Font
	buf  sfnt.Buffer
	cfg  Config
	ppem fixed.Int26_6
}

func NewConverter(name string, cfg Config) (*Converter, error) {
	// Load a font from a file, rejecting anything above the size limit.
	b, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	if len(b) > maxFontFileSize {
		return nil, fmt.Errorf("font file %s is %d bytes, above the %d byte limit",
			name, len(b), maxFontFileSize)
	}
	return NewConverterFromBytes(b, cfg)
}

func NewConverterFromBytes(b []byte, cfg Config) (*Converter, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	fnt, err := opentype.Parse(b)
	if err != nil {
		return nil, err
	}
	familyName, err := fnt.Name(nil, sfnt.NameIDFamily)
	if err != nil {
		slog.Warn("Failed to get family name, so fell back to \"Unknown\"", "err", err)
		familyName = "Unknown"
	}
	cvt := &Converter{
		name: familyName,
		font: fnt,
		cfg:  cfg,
	}
	if err := cvt.derivePPEM(); err != nil {
		return nil, err
	}
	return cvt, nil
}

// FamilyName returns the font's family name, or "Unknown" when the font does
// not carry one.
func (cvt *Converter) FamilyName() string { return cvt.name }

// derivePPEM determines the pixels-per-em size at which ascent plus descent
// spans cfg.FontHeight pixels. The vertical metrics are probed at a large
// reference size because they are only available pre-scaled.
func (cvt *Converter) derivePPEM() error {
	m, err := cvt.font.Metrics(&cvt.buf, fixed.I(refPPEM), font.HintingNone)
	if err != nil {
		return fmt.Errorf("query font metrics: %w", err)
	}
	extent := m.Ascent + m.Descent
	if extent <= 0 {
		return fmt.Errorf("font reports non-positive line extent %v", extent)
	}
	ppem := cvt.cfg.FontHeight * float64(fixed.I(refPPEM)) / float64(extent)
	cvt.ppem = fixed.Int26_6(math.Round(ppem * 64))
	if cvt.ppem <= 0 {
		return fmt.Errorf("font height %v scales to a degenerate size", cvt.cfg.FontHeight)
	}
	return nil
}

// glyphIndex resolves a codepoint to a glyph index. Codepoint 0 addresses
// the missing glyph directly, and codepoints absent from the font resolve to
// it as well.
func (cvt *Converter) glyphIndex(r rune) (sfnt.GlyphIndex, error) {
	if r == 0 {
		return 0, nil
	}
	x, err := cvt.font.GlyphIndex(&cvt.buf, r)
	if err != nil {
		return 0, fmt.Errorf("glyph index of %q: %w", r, err)
	}
	if x == 0 {
		slog.Debug("Codepoint not in font, falling back to the missing glyph", "rune", r)
	}
	return x, nil
}

// Generate runs the measurement and rendering passes and returns the
// finished atlas together with its layout.
func (cvt *Converter) Generate() (*grayimg.Image, Layout, error) {
	glyphs, m, err := cvt.Measure()
	if err != nil {
		return nil, Layout{}, err
	}
	lay := ComputeLayout(m, cvt.cfg)
	canvas, err := cvt.Render(glyphs, lay)
	if err != nil {
		return nil, Layout{}, err
	}
	return canvas, lay, nil
}

// Convert generates the atlas and writes it to the file outName as an 8-bit
// grayscale PNG.
func (cvt *Converter) Convert(outName string) error {
	canvas, lay, err := cvt.Generate()
	if err != nil {
		return err
	}
	// Open the output file with buffering
	f, err := os.Create(outName)
	if err != nil {
		return err
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	if err := png.Encode(w, canvas.Gray()); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return err
	}
	slog.Info("Atlas written", "file", outName, "family", cvt.name,
		"cellWidth", lay.CellWidth, "cellHeight", lay.CellHeight,
		"width", lay.Width, "height", lay.Height)
	return nil
}
