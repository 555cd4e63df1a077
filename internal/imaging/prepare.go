package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/segment"
	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
)

// Options controls the OCR preprocessing pipeline.
type Options struct {
	// MinWidth is the width below which an image is upscaled before OCR.
	// Zero disables upscaling.
	MinWidth int

	// MaxScale caps the upscaling factor so tiny crops are not blown up
	// into blurry noise.
	MaxScale float64

	// Contrast is the percentage passed to the contrast adjustment
	// (-100 to 100). Zero leaves contrast unchanged.
	Contrast float64

	// Sharpen is the Gaussian sigma used for sharpening. Zero disables it.
	Sharpen float64

	// Binarize converts the image to pure black and white.
	Binarize bool

	// Trim crops a binarized image to the bounding box of its ink.
	// Ignored when Binarize is false.
	Trim bool

	// Margin is the white border, in pixels, added around trimmed ink.
	Margin int
}

// DefaultOptions returns the preprocessing settings used by the solve endpoint.
func DefaultOptions() Options {
	return Options{
		MinWidth: 800,
		MaxScale: 4.0,
		Contrast: 20,
		Sharpen:  1.0,
		Binarize: true,
		Trim:     true,
		Margin:   20,
	}
}

// Prepare runs the preprocessing pipeline on img and returns a new image.
//
// The output is always dark ink on a white background, which is what
// Tesseract's default models are trained on.
func Prepare(img image.Image, opts Options) image.Image {
	var out image.Image = imaging.Grayscale(Flatten(img))

	if scale := upscaleFactor(out.Bounds().Dx(), opts); scale > 1 {
		width := int(float64(out.Bounds().Dx()) * scale)
		out = imaging.Resize(out, width, 0, imaging.Lanczos)
	}

	if IsDark(out) {
		out = effect.Invert(out)
	}

	if opts.Contrast != 0 {
		out = imaging.AdjustContrast(out, opts.Contrast)
	}
	if opts.Sharpen > 0 {
		out = imaging.Sharpen(out, opts.Sharpen)
	}

	if !opts.Binarize {
		return out
	}

	bin := Binarize(out)
	if opts.Trim {
		return TrimToInk(bin, opts.Margin)
	}
	return bin
}

// Flatten composites img onto an opaque white background.
//
// Transparent pixels decode as transparent black, which would otherwise be
// read as ink.
func Flatten(img image.Image) *image.NRGBA {
	b := img.Bounds()
	bg := imaging.New(b.Dx(), b.Dy(), color.White)
	return imaging.Overlay(bg, img, image.Pt(0, 0), 1.0)
}

func upscaleFactor(width int, opts Options) float64 {
	if opts.MinWidth <= 0 || width <= 0 || width >= opts.MinWidth {
		return 1
	}
	scale := float64(opts.MinWidth) / float64(width)
	if opts.MaxScale > 0 && scale > opts.MaxScale {
		scale = opts.MaxScale
	}
	return scale
}

// darkSamples is roughly how many pixels IsDark looks at.
const darkSamples = 10_000

// IsDark reports whether the image is predominantly dark, i.e. light writing
// on a dark background.
//
// Lightness is measured as CIE L* so that saturated colours (a blue marker on a
// whiteboard) are judged the way a reader would judge them. Fully transparent
// pixels are ignored.
func IsDark(img image.Image) bool {
	b := img.Bounds()
	total := b.Dx() * b.Dy()
	if total == 0 {
		return false
	}

	step := 1
	for total/(step*step) > darkSamples {
		step++
	}

	var sum float64
	var n int
	for y := b.Min.Y; y < b.Max.Y; y += step {
		for x := b.Min.X; x < b.Max.X; x += step {
			c, ok := colorful.MakeColor(img.At(x, y))
			if !ok {
				continue
			}
			l, _, _ := c.Lab()
			sum += l
			n++
		}
	}
	if n == 0 {
		return false
	}
	return sum/float64(n) < 0.5
}

// Binarize converts img to black and white using an Otsu threshold.
func Binarize(img image.Image) *image.Gray {
	gray := toGray(effect.Grayscale(img))
	level := OtsuThreshold(gray)
	// Threshold maps values below level to black.
	if level < 255 {
		level++
	}
	return segment.Threshold(gray, level)
}

// toGray copies img into a single-channel image.
func toGray(img image.Image) *image.Gray {
	b := img.Bounds()
	gray := image.NewGray(b)
	draw.Draw(gray, b, img, b.Min, draw.Src)
	return gray
}

// OtsuThreshold returns the gray level that best separates ink from
// background: pixels <= the returned level form one class, the rest the other.
//
// For a single-valued image there is no separation and 127 is returned.
func OtsuThreshold(gray *image.Gray) uint8 {
	var hist [256]int
	b := gray.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := gray.Pix[(y-b.Min.Y)*gray.Stride : (y-b.Min.Y)*gray.Stride+b.Dx()]
		for _, v := range row {
			hist[v]++
		}
	}

	total := b.Dx() * b.Dy()
	if total == 0 {
		return 127
	}

	var sumAll float64
	for i, c := range hist {
		sumAll += float64(i * c)
	}

	var (
		sumBack    float64
		weightBack int
		best       float64
		level      = -1
	)
	for t := 0; t < 256; t++ {
		weightBack += hist[t]
		if weightBack == 0 {
			continue
		}
		weightFore := total - weightBack
		if weightFore == 0 {
			break
		}
		sumBack += float64(t * hist[t])

		meanBack := sumBack / float64(weightBack)
		meanFore := (sumAll - sumBack) / float64(weightFore)
		between := float64(weightBack) * float64(weightFore) * (meanBack - meanFore) * (meanBack - meanFore)
		if between > best {
			best = between
			level = t
		}
	}

	if level < 0 {
		return 127
	}
	return uint8(level)
}

// EncodePNG encodes img as PNG, the format handed to Tesseract.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}
