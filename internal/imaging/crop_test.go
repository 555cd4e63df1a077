package imaging

import (
	"image"
	"image/color"
	"testing"
)

func newGray(width, height int, v uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for i := range img.Pix {
		img.Pix[i] = v
	}
	return img
}

func TestInkBounds(t *testing.T) {
	img := newGray(100, 50, 255)
	for y := 10; y < 20; y++ {
		for x := 30; x < 60; x++ {
			img.SetGray(x, y, color.Gray{Y: 0})
		}
	}

	r, ok := InkBounds(img)
	if !ok {
		t.Fatal("InkBounds should find ink")
	}
	want := image.Rect(30, 10, 60, 20)
	if r != want {
		t.Errorf("bounds: got %v, want %v", r, want)
	}
}

func TestInkBounds_NoInk(t *testing.T) {
	if _, ok := InkBounds(newGray(20, 20, 255)); ok {
		t.Error("blank image should report no ink")
	}
}

func TestInkBounds_SinglePixel(t *testing.T) {
	img := newGray(20, 20, 255)
	img.SetGray(7, 3, color.Gray{Y: 0})

	r, ok := InkBounds(img)
	if !ok {
		t.Fatal("InkBounds should find the pixel")
	}
	if r != image.Rect(7, 3, 8, 4) {
		t.Errorf("bounds: got %v, want (7,3)-(8,4)", r)
	}
}

func TestTrimToInk(t *testing.T) {
	img := newGray(200, 100, 255)
	for y := 40; y < 60; y++ {
		for x := 50; x < 150; x++ {
			img.SetGray(x, y, color.Gray{Y: 0})
		}
	}

	out := TrimToInk(img, 10)
	if out.Bounds().Dx() != 120 || out.Bounds().Dy() != 40 {
		t.Fatalf("dimensions: got %dx%d, want 120x40", out.Bounds().Dx(), out.Bounds().Dy())
	}

	if g := color.GrayModel.Convert(out.At(0, 0)).(color.Gray); g.Y != 255 {
		t.Errorf("margin should be white, got %d", g.Y)
	}
	if g := color.GrayModel.Convert(out.At(60, 20)).(color.Gray); g.Y != 0 {
		t.Errorf("ink should be black, got %d", g.Y)
	}
}

func TestTrimToInk_Blank(t *testing.T) {
	out := TrimToInk(newGray(30, 10, 255), 5)
	if out.Bounds().Dx() != 40 || out.Bounds().Dy() != 20 {
		t.Errorf("blank image should only be padded: got %dx%d, want 40x20",
			out.Bounds().Dx(), out.Bounds().Dy())
	}
}

func TestPad_NegativeMargin(t *testing.T) {
	out := Pad(newGray(30, 10, 0), -5)
	if out.Bounds().Dx() != 30 || out.Bounds().Dy() != 10 {
		t.Errorf("negative margin should be treated as zero: got %dx%d",
			out.Bounds().Dx(), out.Bounds().Dy())
	}
}
