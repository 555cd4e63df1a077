package imaging

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// inkLevel is the gray value below which a pixel counts as ink.
const inkLevel = 128

// InkBounds returns the smallest rectangle containing every ink pixel of a
// binarized image. ok is false when the image has no ink at all.
func InkBounds(bin *image.Gray) (r image.Rectangle, ok bool) {
	b := bin.Bounds()
	x1, y1 := b.Max.X, b.Max.Y
	x2, y2 := b.Min.X-1, b.Min.Y-1

	for y := b.Min.Y; y < b.Max.Y; y++ {
		off := (y - b.Min.Y) * bin.Stride
		for x := b.Min.X; x < b.Max.X; x++ {
			if bin.Pix[off+(x-b.Min.X)] >= inkLevel {
				continue
			}
			if x < x1 {
				x1 = x
			}
			if x > x2 {
				x2 = x
			}
			if y < y1 {
				y1 = y
			}
			if y > y2 {
				y2 = y
			}
		}
	}

	if x2 < x1 || y2 < y1 {
		return image.Rectangle{}, false
	}
	return image.Rect(x1, y1, x2+1, y2+1), true
}

// TrimToInk crops a binarized image to its ink and surrounds it with a white
// margin. An image without ink is only padded.
func TrimToInk(bin *image.Gray, margin int) *image.NRGBA {
	var src image.Image = bin
	if r, ok := InkBounds(bin); ok {
		src = imaging.Crop(bin, r)
	}
	return Pad(src, margin)
}

// Pad returns img centred on a white canvas margin pixels larger on every side.
func Pad(img image.Image, margin int) *image.NRGBA {
	if margin < 0 {
		margin = 0
	}
	b := img.Bounds()
	bg := imaging.New(b.Dx()+2*margin, b.Dy()+2*margin, color.White)
	return imaging.Paste(bg, img, image.Pt(margin, margin))
}
