// Package grayimg provides an 8-bit grayscale image.
package grayimg

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
)

type Image struct {
	pix    []uint8
	stride int
	rect   image.Rectangle
}

func New(r image.Rectangle) *Image {
	w, h := r.Dx(), r.Dy()
	return &Image{
		pix:    make([]uint8, w*h),
		stride: w,
		rect:   r,
	}
}

func (img *Image) Stride() int { return img.stride }

func (img *Image) Bytes() []byte { return img.pix }

func (img *Image) Clear() {
	for i := range img.pix {
		img.pix[i] = 0
	}
}

var (
	_ image.Image = (*Image)(nil)
	_ draw.Image  = (*Image)(nil)
)

func (img *Image) ColorModel() color.Model {
	return color.GrayModel
}

func (img *Image) Bounds() image.Rectangle {
	return img.rect
}

func (img *Image) address(x, y int) int {
	return (y-img.rect.Min.Y)*img.stride + (x-img.rect.Min.X)
}

func (img *Image) At(x, y int) color.Color {
	return img.GrayAt(x, y)
}

func (img *Image) GrayAt(x, y int) color.Gray {
	if !(image.Point{x, y}.In(img.rect)) {
		return color.Gray{}
	}
	return color.Gray{Y: img.pix[img.address(x, y)]}
}

func (img *Image) Set(x, y int, c color.Color) {
	if !(image.Point{x, y}.In(img.rect)) {
		return
	}
	img.pix[img.address(x, y)] = color.GrayModel.Convert(c).(color.Gray).Y
}

// DrawAlpha copies the coverage values of mask into the image, placing the
// mask's minimum corner at the point at. The whole mask must land inside the
// image bounds, otherwise nothing is written and an error is returned.
func (img *Image) DrawAlpha(at image.Point, mask *image.Alpha) error {
	mr := mask.Bounds()
	dst := image.Rect(at.X, at.Y, at.X+mr.Dx(), at.Y+mr.Dy())
	if !dst.In(img.rect) {
		return fmt.Errorf("grayimg: draw rectangle %v outside of image bounds %v", dst, img.rect)
	}
	for y := 0; y < mr.Dy(); y++ {
		src := mask.Pix[mask.PixOffset(mr.Min.X, mr.Min.Y+y):]
		copy(img.pix[img.address(at.X, at.Y+y):][:mr.Dx()], src[:mr.Dx()])
	}
	return nil
}

// Gray returns a *image.Gray sharing the image's pixel buffer.
func (img *Image) Gray() *image.Gray {
	return &image.Gray{Pix: img.pix, Stride: img.stride, Rect: img.rect}
}
