package main

import (
	"context"
	"log"

	"github.com/koron/ttf2atlas/internal/atlas"
)

// Input font and output image, resolved relative to the working directory.
const (
	fontPath = "Go-Mono.ttf"
	outPath  = "font.png"
)

func run(ctx context.Context) error {
	cvt, err := atlas.NewConverter(fontPath, atlas.Config{
		FontHeight:   fontHeight,
		CharsPerRow:  charsPerRow,
		RowCount:     rowCount,
		GlyphPadding: glyphPadding,
		Codepoints:   codepoints,
	})
	if err != nil {
		return err
	}
	return cvt.Convert(outPath)
}

func main() {
	err := run(context.Background())
	if err != nil {
		log.Fatal(err)
	}
}
