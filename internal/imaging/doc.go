// Package imaging decodes uploaded photos and prepares them for OCR.
//
// Images arrive as raw bytes from the browser (normally a PNG produced by the
// cropper, but phone uploads may be JPEG, WebP, BMP, TIFF or GIF). Decode turns
// them into an image.Image with EXIF orientation applied, and Prepare runs the
// preprocessing pipeline that makes handwritten or photographed expressions
// easier for Tesseract to read.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with (0,0) at the top-left corner.
// For regions, (x1,y1) is inclusive and (x2,y2) is exclusive.
//
// # Pipeline
//
// Prepare applies, in order:
//  1. Flattening onto white and grayscale conversion
//  2. Upscaling of small crops (Tesseract wants glyphs around 30px tall)
//  3. Inversion when the photo is light-on-dark (chalkboards, dark mode screens)
//  4. Contrast boost and light sharpening
//  5. Binarization with an automatically chosen threshold (Otsu)
//  6. Trimming to the ink bounding box plus a white margin
//
// Every step returns a new image; inputs are never modified, so all functions
// are safe for concurrent use on shared images.
//
// # Error Handling
//
// Decode returns errors wrapping ErrDecode for unreadable input and ErrTooLarge
// when the declared dimensions exceed MaxPixels. Prepare never fails; EncodePNG
// only fails on writer errors.
package imaging
