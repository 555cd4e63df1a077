package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// MaxPixels bounds the decoded size of an upload. A 10 MiB PNG can declare
// dimensions that would need gigabytes once decoded.
const MaxPixels = 40_000_000

var (
	// ErrDecode is returned when the bytes are not a supported image.
	ErrDecode = errors.New("image could not be decoded")

	// ErrTooLarge is returned when the image dimensions exceed MaxPixels.
	ErrTooLarge = errors.New("image dimensions too large")
)

// ImageInfo contains metadata about an uploaded image.
type ImageInfo struct {
	// Width is the image width in pixels, before orientation is applied.
	Width int `json:"width"`

	// Height is the image height in pixels, before orientation is applied.
	Height int `json:"height"`

	// Format is the format name reported by the registered decoder:
	// "png", "jpeg", "gif", "bmp", "tiff" or "webp".
	Format string `json:"format"`

	// SizeBytes is the length of the encoded upload.
	SizeBytes int `json:"size_bytes"`
}

// Inspect reads only the image header and reports its metadata.
//
// It is cheap compared to Decode and is used to reject oversized images before
// any pixel data is allocated.
func Inspect(data []byte) (*ImageInfo, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrDecode)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	return &ImageInfo{
		Width:     cfg.Width,
		Height:    cfg.Height,
		Format:    format,
		SizeBytes: len(data),
	}, nil
}

// Decode decodes an uploaded image and applies its EXIF orientation.
//
// Phone cameras store portrait photos sideways and record the rotation in EXIF;
// without auto-orientation the expression would reach Tesseract rotated 90°.
//
// Returns:
//   - image.Image: The decoded, upright image.
//   - *ImageInfo: Header metadata of the upload.
//   - error: Wraps ErrDecode or ErrTooLarge.
func Decode(data []byte) (image.Image, *ImageInfo, error) {
	info, err := Inspect(data)
	if err != nil {
		return nil, nil, err
	}
	if info.Width <= 0 || info.Height <= 0 {
		return nil, nil, fmt.Errorf("%w: empty image %dx%d", ErrDecode, info.Width, info.Height)
	}
	if info.Width*info.Height > MaxPixels {
		return nil, nil, fmt.Errorf("%w: %dx%d", ErrTooLarge, info.Width, info.Height)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	return img, info, nil
}
