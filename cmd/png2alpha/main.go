// Command png2alpha rewrites the grayscale glyph atlas as a white image
// whose alpha channel carries the gray values.
package main

import (
	"bufio"
	"context"
	"image"
	"image/color"
	"image/png"
	"log"
	"log/slog"
	"os"
)

const (
	inPath  = "font.png"
	outPath = "font_white.png"
)

func run(ctx context.Context) error {
	img, err := loadImage(inPath)
	if err != nil {
		return err
	}
	out := toWhiteAlpha(img)
	if err := saveImage(out, outPath); err != nil {
		return err
	}
	slog.Info("Image written", "file", outPath, "bounds", out.Bounds())
	return nil
}

// toWhiteAlpha maps every pixel to solid white, keeping the source
// luminance as the alpha value.
func toWhiteAlpha(img image.Image) *image.NRGBA {
	b := img.Bounds()
	out := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			gray, _, _, _ := img.At(x, y).RGBA()
			out.SetNRGBA(x, y, color.NRGBA{R: 255, G: 255, B: 255, A: uint8(gray >> 8)})
		}
	}
	return out
}

func loadImage(name string) (image.Image, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return png.Decode(f)
}

func saveImage(img image.Image, name string) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	if err := png.Encode(w, img); err != nil {
		return err
	}
	return w.Flush()
}

func main() {
	err := run(context.Background())
	if err != nil {
		log.Fatal(err)
	}
}
